package storage

import (
	"context"

	"github.com/jbcaron/consta-pool/internal/model"
)

// Storage defines a sink for trade records.
type Storage interface {
	PutTradeBatch(ctx context.Context, records []model.TradeRecord) error
}
