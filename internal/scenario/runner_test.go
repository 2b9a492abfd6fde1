package scenario

import (
	"context"
	"testing"

	"github.com/jbcaron/consta-pool/internal/model"
	"github.com/jbcaron/consta-pool/internal/storage"
)

type memorySink struct {
	records []model.TradeRecord
}

func (s *memorySink) PutTradeBatch(_ context.Context, records []model.TradeRecord) error {
	s.records = append(s.records, records...)
	return nil
}

func TestRunnerJournalsSteps(t *testing.T) {
	sc := Scenario{
		Name:          "journal",
		NativeReserve: 1000,
		TokenReserve:  1000,
		Steps: []Step{
			{Op: OpBuy, Amount: 100},
			{Op: OpSimulateSell, Amount: 100},
			{Op: OpSell, Amount: 2000},
		},
	}

	sink := &memorySink{}
	runner := NewRunner(RunConfig{RunID: "test-run", BatchSize: 2}, sc, []storage.Storage{sink}, nil)

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sink.records) != 3 {
		t.Fatalf("record count: %d != 3", len(sink.records))
	}

	buy := sink.records[0]
	if buy.Op != OpBuy || buy.NativeAmount != 111 || buy.NativeReserve != 1111 || buy.TokenReserve != 900 {
		t.Fatalf("buy record mismatch: %+v", buy)
	}

	// Simulation leaves the reserves where the buy put them.
	sim := sink.records[1]
	if sim.NativeReserve != 1111 || sim.TokenReserve != 900 {
		t.Fatalf("simulate mutated reserves: %+v", sim)
	}

	// The oversized sell fails, is journaled, and does not stop the run.
	failed := sink.records[2]
	if failed.Error == "" {
		t.Fatalf("expected error on oversized sell, got %+v", failed)
	}
	if failed.NativeReserve != 1111 || failed.TokenReserve != 900 {
		t.Fatalf("failed step mutated reserves: %+v", failed)
	}

	for i, record := range sink.records {
		if record.RunID != "test-run" || record.Seq != uint64(i) {
			t.Fatalf("record identity mismatch at %d: %+v", i, record)
		}
	}
}

func TestRunnerRequiresSink(t *testing.T) {
	sc := Scenario{
		NativeReserve: 1000,
		TokenReserve:  1000,
		Steps:         []Step{{Op: OpBuy, Amount: 1}},
	}
	runner := NewRunner(RunConfig{}, sc, nil, nil)
	if err := runner.Run(context.Background()); err == nil {
		t.Fatalf("expected error without sinks")
	}
}
