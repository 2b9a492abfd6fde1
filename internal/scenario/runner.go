package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jbcaron/consta-pool/internal/model"
	"github.com/jbcaron/consta-pool/internal/pool"
	"github.com/jbcaron/consta-pool/internal/storage"
)

// RunConfig holds runtime settings for a scenario run.
type RunConfig struct {
	RunID     string
	BatchSize int
}

// Runner drives a pool through scenario steps and journals each outcome.
// The runner owns its pool exclusively; the engine itself is unsynchronized.
type Runner struct {
	cfg    RunConfig
	sc     Scenario
	sinks  []storage.Storage
	logger *zap.Logger
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, sc Scenario, sinks []storage.Storage, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}
	return &Runner{
		cfg:    cfg,
		sc:     sc,
		sinks:  sinks,
		logger: logger,
	}
}

// Run executes the scenario. Failed steps are journaled with their error and
// the run continues: engine errors are recoverable and never mutate the pool.
func (r *Runner) Run(ctx context.Context) error {
	if len(r.sinks) == 0 {
		return fmt.Errorf("at least one storage sink is required")
	}
	if err := r.sc.Validate(); err != nil {
		return err
	}

	p, err := pool.New(r.sc.NativeReserve, r.sc.TokenReserve)
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}

	r.logger.Info("scenario start",
		zap.String("run_id", r.cfg.RunID),
		zap.String("scenario", r.sc.Name),
		zap.Uint64("native_reserve", p.NativeReserve()),
		zap.Uint64("token_reserve", p.TokenReserve()),
		zap.Int("steps", len(r.sc.Steps)),
	)

	batch := make([]model.TradeRecord, 0, r.cfg.BatchSize)
	for i, step := range r.sc.Steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		tokenAmount, nativeAmount, stepErr := applyStep(p, step)
		record := model.TradeRecord{
			RunID:         r.cfg.RunID,
			Seq:           uint64(i),
			Op:            step.Op,
			TokenAmount:   tokenAmount,
			NativeAmount:  nativeAmount,
			NativeReserve: p.NativeReserve(),
			TokenReserve:  p.TokenReserve(),
			MarketPrice:   p.MarketPrice(),
			ExecutedAt:    time.Now().UTC().Format(time.RFC3339Nano),
		}
		if stepErr != nil {
			record.Error = stepErr.Error()
			r.logger.Warn("step failed",
				zap.Int("seq", i),
				zap.String("op", step.Op),
				zap.Uint64("amount", step.Amount),
				zap.Error(stepErr),
			)
		} else {
			r.logger.Info("step complete",
				zap.Int("seq", i),
				zap.String("op", step.Op),
				zap.Uint64("token_amount", tokenAmount),
				zap.Uint64("native_amount", nativeAmount),
				zap.Uint64("native_reserve", p.NativeReserve()),
				zap.Uint64("token_reserve", p.TokenReserve()),
			)
		}

		batch = append(batch, record)
		if len(batch) >= r.cfg.BatchSize {
			if err := r.flush(ctx, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	if err := r.flush(ctx, batch); err != nil {
		return err
	}

	r.logger.Info("scenario complete",
		zap.String("run_id", r.cfg.RunID),
		zap.Uint64("native_reserve", p.NativeReserve()),
		zap.Uint64("token_reserve", p.TokenReserve()),
		zap.Float64("market_price", p.MarketPrice()),
	)
	return nil
}

func (r *Runner) flush(ctx context.Context, records []model.TradeRecord) error {
	if len(records) == 0 {
		return nil
	}
	for _, sink := range r.sinks {
		if err := sink.PutTradeBatch(ctx, records); err != nil {
			return fmt.Errorf("store trades: %w", err)
		}
	}
	return nil
}

// applyStep executes one step against the pool and reports the token and
// native legs of the trade.
func applyStep(p *pool.Pool, step Step) (tokenAmount, nativeAmount uint64, err error) {
	switch step.Op {
	case OpBuy:
		native, err := p.Buy(step.Amount, step.MaxNative)
		return step.Amount, native, err
	case OpSell:
		native, err := p.Sell(step.Amount, step.MinNative)
		return step.Amount, native, err
	case OpBuyWithNative:
		tokens, err := p.BuyWithNative(step.Amount)
		return tokens, step.Amount, err
	case OpSimulateBuy:
		native, err := p.SimulateBuy(step.Amount, step.MinNative)
		return step.Amount, native, err
	case OpSimulateSell:
		native, err := p.SimulateSell(step.Amount, step.MaxNative)
		return step.Amount, native, err
	default:
		return 0, 0, fmt.Errorf("unknown op %q", step.Op)
	}
}
