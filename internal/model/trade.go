package model

// TradeRecord is the journaled outcome of one scenario step. Failed steps
// are recorded too, with the engine error and the untouched reserves.
type TradeRecord struct {
	RunID         string  `json:"run_id"`
	Seq           uint64  `json:"seq"`
	Op            string  `json:"op"`
	TokenAmount   uint64  `json:"token_amount"`
	NativeAmount  uint64  `json:"native_amount"`
	NativeReserve uint64  `json:"native_reserve"`
	TokenReserve  uint64  `json:"token_reserve"`
	MarketPrice   float64 `json:"market_price"`
	Error         string  `json:"error,omitempty"`
	ExecutedAt    string  `json:"executed_at"`
}
