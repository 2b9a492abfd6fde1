package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step operations.
const (
	OpBuy           = "buy"
	OpSell          = "sell"
	OpBuyWithNative = "buy_with_native"
	OpSimulateBuy   = "simulate_buy"
	OpSimulateSell  = "simulate_sell"
)

// Step is one trade in a scenario. Amount is a token amount, except for
// buy_with_native where it is a native amount. The bounds are optional:
// max_native caps the spend of a buy, min_native floors the payout of a sell
// (and the cost of a simulate_buy).
type Step struct {
	Op        string  `yaml:"op"`
	Amount    uint64  `yaml:"amount"`
	MaxNative *uint64 `yaml:"max_native,omitempty"`
	MinNative *uint64 `yaml:"min_native,omitempty"`
}

// Scenario declares a pool and an ordered list of trades to run against it.
type Scenario struct {
	Name          string `yaml:"name"`
	NativeReserve uint64 `yaml:"native_reserve"`
	TokenReserve  uint64 `yaml:"token_reserve"`
	Steps         []Step `yaml:"steps"`
}

// Load reads and validates a scenario file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Validate checks the scenario before any pool is built.
func (s Scenario) Validate() error {
	if s.NativeReserve == 0 || s.TokenReserve == 0 {
		return fmt.Errorf("reserves must be greater than zero")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("at least one step is required")
	}
	for i, step := range s.Steps {
		switch step.Op {
		case OpBuy, OpSell, OpBuyWithNative, OpSimulateBuy, OpSimulateSell:
		default:
			return fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}
	}
	return nil
}
