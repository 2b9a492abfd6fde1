package pool

import "math"

// AdditionalTokensForDesiredNative finds the smallest number of tokens to buy
// first so that selling sellTokens back afterwards pays out at least
// desiredNative. Buying tokens raises the marginal price, so the payout of a
// fixed-size sale grows monotonically with the size of the preceding buy;
// that monotonicity is what makes the binary search below valid.
//
// Every probe runs against a disposable clone, so the live pool is never
// touched. When no probe hits desiredNative exactly, the smallest probed buy
// known to overshoot the target is returned; the final bracket is not
// re-searched below one unit.
func (p *Pool) AdditionalTokensForDesiredNative(sellTokens, desiredNative uint64) (uint64, error) {
	if sellTokens == 0 || desiredNative == 0 {
		return 0, ErrInvalidAmount
	}

	low := uint64(0)
	high := p.tokenReserve
	best := high

	for low <= high {
		mid := low + (high-low)/2

		trial := p.Clone()
		if _, err := trial.Buy(mid, nil); err != nil {
			return 0, err
		}
		nativeReceived, err := trial.SimulateSell(sellTokens, nil)
		if err != nil {
			return 0, err
		}

		switch {
		case nativeReceived == desiredNative:
			return mid, nil
		case nativeReceived < desiredNative:
			// Payout too small, push the price up with a bigger buy.
			if mid == math.MaxUint64 {
				return 0, ErrOverflow
			}
			low = mid + 1
		default:
			// Overshoot: valid upper bound on the minimal answer.
			best = mid
			if mid == 0 {
				return 0, ErrOverflow
			}
			high = mid - 1
		}

		if high < low || high-low <= 1 {
			break
		}
	}

	return best, nil
}
