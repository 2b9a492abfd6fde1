package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jbcaron/consta-pool/internal/model"
)

// Store provides Postgres persistence for the trade journal.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PutTradeBatch inserts trade records, keyed by (run_id, seq). Re-running a
// scenario under the same run id is a no-op for already journaled steps.
func (s *Store) PutTradeBatch(ctx context.Context, records []model.TradeRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, record := range records {
		batch.Queue(`
			INSERT INTO trade_records (
				run_id, seq, op, token_amount, native_amount,
				native_reserve, token_reserve, market_price, error, executed_at, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now())
			ON CONFLICT (run_id, seq) DO NOTHING
		`,
			record.RunID,
			int64(record.Seq),
			record.Op,
			int64(record.TokenAmount),
			int64(record.NativeAmount),
			int64(record.NativeReserve),
			int64(record.TokenReserve),
			record.MarketPrice,
			record.Error,
			record.ExecutedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
