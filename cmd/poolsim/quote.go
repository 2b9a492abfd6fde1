package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jbcaron/consta-pool/internal/pool"
)

func runQuote(cmd *cobra.Command, _ []string) error {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logger, err := newLogger(logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	p, err := poolFromFlags(cmd)
	if err != nil {
		return err
	}

	side, _ := cmd.Flags().GetString("side")
	amount, _ := cmd.Flags().GetUint64("amount")
	if amount == 0 {
		return fmt.Errorf("amount is required")
	}

	switch side {
	case "buy":
		nativeCost, err := p.SimulateBuy(amount, optionalBound(cmd, "min-native"))
		if err != nil {
			return fmt.Errorf("simulate buy: %w", err)
		}
		logger.Info("buy quote",
			zap.Uint64("token_amount", amount),
			zap.Uint64("native_cost", nativeCost),
			zap.Float64("market_price", p.MarketPrice()),
			zap.Float64("price_impact", p.PriceImpact(amount)),
		)
	case "sell":
		nativePayout, err := p.SimulateSell(amount, optionalBound(cmd, "max-native"))
		if err != nil {
			return fmt.Errorf("simulate sell: %w", err)
		}
		logger.Info("sell quote",
			zap.Uint64("token_amount", amount),
			zap.Uint64("native_payout", nativePayout),
			zap.Float64("market_price", p.MarketPrice()),
		)
	case "tokens-for-native":
		tokens, err := p.TokensForNative(amount)
		if err != nil {
			return fmt.Errorf("tokens for native: %w", err)
		}
		logger.Info("tokens-for-native quote",
			zap.Uint64("native_amount", amount),
			zap.Uint64("token_amount", tokens),
			zap.Float64("market_price", p.MarketPrice()),
		)
	default:
		return fmt.Errorf("unknown side %q", side)
	}

	return nil
}

func runSolve(cmd *cobra.Command, _ []string) error {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logger, err := newLogger(logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	p, err := poolFromFlags(cmd)
	if err != nil {
		return err
	}

	sellTokens, _ := cmd.Flags().GetUint64("sell-tokens")
	desiredNative, _ := cmd.Flags().GetUint64("desired-native")

	tokens, err := p.AdditionalTokensForDesiredNative(sellTokens, desiredNative)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	logger.Info("solve result",
		zap.Uint64("sell_tokens", sellTokens),
		zap.Uint64("desired_native", desiredNative),
		zap.Uint64("tokens_to_buy", tokens),
	)
	return nil
}

func poolFromFlags(cmd *cobra.Command) (*pool.Pool, error) {
	nativeReserve, _ := cmd.Flags().GetUint64("native-reserve")
	tokenReserve, _ := cmd.Flags().GetUint64("token-reserve")
	p, err := pool.New(nativeReserve, tokenReserve)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	return p, nil
}

// optionalBound maps an unset flag to no bound at all.
func optionalBound(cmd *cobra.Command, name string) *uint64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetUint64(name)
	return &v
}
