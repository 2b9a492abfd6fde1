package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "poolsim",
		Short:        "Constant-product pool simulator",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote a trade against given reserves",
		RunE:  runQuote,
	}

	quoteCmd.Flags().Uint64("native-reserve", 0, "pool native reserve")
	quoteCmd.Flags().Uint64("token-reserve", 0, "pool token reserve")
	quoteCmd.Flags().String("side", "buy", "trade side (buy, sell, tokens-for-native)")
	quoteCmd.Flags().Uint64("amount", 0, "trade amount (tokens, or native for tokens-for-native)")
	quoteCmd.Flags().Uint64("max-native", 0, "maximum acceptable native payout on sell quotes")
	quoteCmd.Flags().Uint64("min-native", 0, "minimum acceptable native cost on buy quotes")
	quoteCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(quoteCmd)

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Find the minimal buy pushing a later sale to a target payout",
		RunE:  runSolve,
	}

	solveCmd.Flags().Uint64("native-reserve", 0, "pool native reserve")
	solveCmd.Flags().Uint64("token-reserve", 0, "pool token reserve")
	solveCmd.Flags().Uint64("sell-tokens", 0, "tokens to sell after the buy")
	solveCmd.Flags().Uint64("desired-native", 0, "target native payout for the sale")
	solveCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(solveCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a trade scenario and journal the results",
		RunE:  runScenario,
	}

	runCmd.Flags().String("scenario", "", "scenario YAML path")
	runCmd.Flags().String("run-id", "", "run identifier (generated when empty)")
	runCmd.Flags().String("out", "./data/trades.jsonl", "output JSONL path")
	runCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for the trade journal")
	runCmd.Flags().Int("batch-size", 100, "records per storage batch")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
