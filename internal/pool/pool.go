package pool

import (
	"math"
	"math/big"
)

// Pool is a two-asset constant-product market maker: a native settlement
// reserve priced against a token reserve. All trades are priced by floor
// division against the constant product fixed at construction, so the live
// product native*token only ever drifts slightly below it, never above.
//
// A Pool is a plain value with no internal synchronization. Callers that
// share one pool across goroutines must serialize access themselves.
type Pool struct {
	initialTokenReserve uint64
	nativeReserve       uint64
	tokenReserve        uint64
	constantProduct     *big.Int
}

// New builds a pool from two initial reserves. Both must be positive.
// The constant product is computed once here and never recomputed.
func New(nativeReserve, tokenReserve uint64) (*Pool, error) {
	if nativeReserve == 0 || tokenReserve == 0 {
		return nil, ErrInvalidAmount
	}
	k := new(big.Int).Mul(
		new(big.Int).SetUint64(nativeReserve),
		new(big.Int).SetUint64(tokenReserve),
	)
	return &Pool{
		initialTokenReserve: tokenReserve,
		nativeReserve:       nativeReserve,
		tokenReserve:        tokenReserve,
		constantProduct:     k,
	}, nil
}

// NativeReserve returns the current native reserve.
func (p *Pool) NativeReserve() uint64 { return p.nativeReserve }

// TokenReserve returns the current token reserve.
func (p *Pool) TokenReserve() uint64 { return p.tokenReserve }

// ConstantProduct returns a copy of the pool's invariant target.
func (p *Pool) ConstantProduct() *big.Int {
	return new(big.Int).Set(p.constantProduct)
}

// Clone returns a fully independent copy of the pool. The copy shares no
// mutable state with the original, so it can be traded against and discarded.
func (p *Pool) Clone() *Pool {
	return &Pool{
		initialTokenReserve: p.initialTokenReserve,
		nativeReserve:       p.nativeReserve,
		tokenReserve:        p.tokenReserve,
		constantProduct:     new(big.Int).Set(p.constantProduct),
	}
}

// MarketPrice returns the reference price of the token in native units,
// anchored to the token reserve at construction time rather than the live
// spot price.
func (p *Pool) MarketPrice() float64 {
	return float64(p.nativeReserve) / float64(p.initialTokenReserve)
}

// PriceImpact returns the fractional change between MarketPrice and the spot
// price after hypothetically removing tokenAmount tokens. The input is not
// validated: tokenAmount must be smaller than the token reserve or the
// result is undefined.
func (p *Pool) PriceImpact(tokenAmount uint64) float64 {
	initialPrice := p.MarketPrice()
	newTokenReserve := p.tokenReserve - tokenAmount
	newNativeReserve := new(big.Int).Div(
		p.constantProduct,
		new(big.Int).SetUint64(newTokenReserve),
	)
	native, _ := new(big.Float).SetInt(newNativeReserve).Float64()
	newPrice := native / float64(newTokenReserve)
	return (newPrice - initialPrice) / initialPrice
}

// SimulateBuy computes the native cost of buying tokenAmount tokens without
// touching the pool. If minNative is non-nil and the cost falls below it,
// ErrSlippageExceeded is returned.
func (p *Pool) SimulateBuy(tokenAmount uint64, minNative *uint64) (uint64, error) {
	_, _, nativeCost, err := p.buyOutcome(tokenAmount)
	if err != nil {
		return 0, err
	}
	if minNative != nil && nativeCost < *minNative {
		return 0, ErrSlippageExceeded
	}
	return nativeCost, nil
}

// SimulateSell computes the native payout of selling tokenAmount tokens
// without touching the pool. If maxNative is non-nil and the payout exceeds
// it, ErrSlippageExceeded is returned.
func (p *Pool) SimulateSell(tokenAmount uint64, maxNative *uint64) (uint64, error) {
	_, _, nativePayout, err := p.sellOutcome(tokenAmount)
	if err != nil {
		return 0, err
	}
	if maxNative != nil && nativePayout > *maxNative {
		return 0, ErrSlippageExceeded
	}
	return nativePayout, nil
}

// TokensForNative computes how many tokens a given native amount buys at the
// current reserves, without touching the pool.
func (p *Pool) TokensForNative(nativeAmount uint64) (uint64, error) {
	if nativeAmount == 0 {
		return 0, ErrInvalidAmount
	}
	if nativeAmount > math.MaxUint64-p.nativeReserve {
		return 0, ErrOverflow
	}
	newNativeReserve := p.nativeReserve + nativeAmount
	newTokenReserve, err := p.divProduct(newNativeReserve)
	if err != nil {
		return 0, err
	}
	return p.tokenReserve - newTokenReserve, nil
}

// Buy removes tokenAmount tokens from the pool and returns the native amount
// spent. If maxNative is non-nil it caps the spend: a computed cost above it
// fails with ErrSlippageExceeded and leaves the pool untouched.
func (p *Pool) Buy(tokenAmount uint64, maxNative *uint64) (uint64, error) {
	newNativeReserve, newTokenReserve, nativeSpent, err := p.buyOutcome(tokenAmount)
	if err != nil {
		return 0, err
	}
	if maxNative != nil && nativeSpent > *maxNative {
		return 0, ErrSlippageExceeded
	}
	p.nativeReserve = newNativeReserve
	p.tokenReserve = newTokenReserve
	return nativeSpent, nil
}

// Sell adds tokenAmount tokens to the pool and returns the native amount
// received. If minNative is non-nil it is the minimum acceptable payout: a
// computed payout below it fails with ErrSlippageExceeded and leaves the
// pool untouched.
func (p *Pool) Sell(tokenAmount uint64, minNative *uint64) (uint64, error) {
	newNativeReserve, newTokenReserve, nativeReceived, err := p.sellOutcome(tokenAmount)
	if err != nil {
		return 0, err
	}
	if minNative != nil && nativeReceived < *minNative {
		return 0, ErrSlippageExceeded
	}
	p.nativeReserve = newNativeReserve
	p.tokenReserve = newTokenReserve
	return nativeReceived, nil
}

// BuyWithNative spends nativeAmount native units and returns the token
// amount purchased. It composes TokensForNative and Buy with no bound.
func (p *Pool) BuyWithNative(nativeAmount uint64) (uint64, error) {
	if nativeAmount == 0 {
		return 0, ErrInvalidAmount
	}
	tokenAmount, err := p.TokensForNative(nativeAmount)
	if err != nil {
		return 0, err
	}
	if _, err := p.Buy(tokenAmount, nil); err != nil {
		return 0, err
	}
	return tokenAmount, nil
}

// buyOutcome prices the removal of tokenAmount tokens. Removing the whole
// reserve is rejected before any division so a zero divisor never occurs.
func (p *Pool) buyOutcome(tokenAmount uint64) (newNative, newToken, nativeCost uint64, err error) {
	if tokenAmount == 0 {
		return 0, 0, 0, ErrInvalidAmount
	}
	if tokenAmount >= p.tokenReserve {
		return 0, 0, 0, ErrInsufficientPoolFunds
	}
	newToken = p.tokenReserve - tokenAmount
	newNative, err = p.divProduct(newToken)
	if err != nil {
		return 0, 0, 0, err
	}
	return newNative, newToken, newNative - p.nativeReserve, nil
}

// sellOutcome prices the addition of tokenAmount tokens.
func (p *Pool) sellOutcome(tokenAmount uint64) (newNative, newToken, nativePayout uint64, err error) {
	if tokenAmount == 0 {
		return 0, 0, 0, ErrInvalidAmount
	}
	if tokenAmount > p.tokenReserve {
		return 0, 0, 0, ErrInsufficientPoolFunds
	}
	if tokenAmount > math.MaxUint64-p.tokenReserve {
		return 0, 0, 0, ErrOverflow
	}
	newToken = p.tokenReserve + tokenAmount
	newNative, err = p.divProduct(newToken)
	if err != nil {
		return 0, 0, 0, err
	}
	// A payout equal to the whole native reserve would drain it to zero.
	if newNative == 0 {
		return 0, 0, 0, ErrInsufficientPoolFunds
	}
	return newNative, newToken, p.nativeReserve - newNative, nil
}

// divProduct returns floor(constantProduct / divisor) as a uint64.
func (p *Pool) divProduct(divisor uint64) (uint64, error) {
	if divisor == 0 {
		return 0, ErrOverflow
	}
	q := new(big.Int).Div(p.constantProduct, new(big.Int).SetUint64(divisor))
	if !q.IsUint64() {
		return 0, ErrOverflow
	}
	return q.Uint64(), nil
}
