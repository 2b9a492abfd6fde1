package scenario

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadScenario(t *testing.T) {
	doc := `
name: smoke
native_reserve: 1000
token_reserve: 1000
steps:
  - op: buy
    amount: 100
    max_native: 120
  - op: sell
    amount: 50
  - op: simulate_sell
    amount: 25
`
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	maxNative := uint64(120)
	want := Scenario{
		Name:          "smoke",
		NativeReserve: 1000,
		TokenReserve:  1000,
		Steps: []Step{
			{Op: "buy", Amount: 100, MaxNative: &maxNative},
			{Op: "sell", Amount: 50},
			{Op: "simulate_sell", Amount: 25},
		},
	}
	if !reflect.DeepEqual(sc, want) {
		t.Fatalf("scenario mismatch: %+v != %+v", sc, want)
	}
}

func TestValidate(t *testing.T) {
	valid := Scenario{
		NativeReserve: 1,
		TokenReserve:  1,
		Steps:         []Step{{Op: OpBuy, Amount: 1}},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	zeroReserve := valid
	zeroReserve.TokenReserve = 0
	if err := zeroReserve.Validate(); err == nil {
		t.Fatalf("expected error for zero reserve")
	}

	noSteps := valid
	noSteps.Steps = nil
	if err := noSteps.Validate(); err == nil {
		t.Fatalf("expected error for empty steps")
	}

	badOp := valid
	badOp.Steps = []Step{{Op: "swap", Amount: 1}}
	if err := badOp.Validate(); err == nil {
		t.Fatalf("expected error for unknown op")
	}
}
