// Package main is the entry point for the forge CLI
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-progression/internal/config"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/logger"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/rng"
)

var (
	envFile string

	cfg      *config.Config
	policies config.Policies
)

var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "RPG progression forge",
	Long: `Forge levels equipment with enhancement materials, rolling and
reinforcing bonus stats along the shared XP curve.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.GetCode(err).ExitCode())
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before FORGE_ variables")

	rootCmd.AddCommand(curveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(itemCmd)
}

// setup loads configuration and logging before any command runs
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	logger.Init(cfg.Log, os.Stderr)

	policies, err = config.LoadPolicies(cfg.PoliciesFile)
	if err != nil {
		return err
	}

	cmd.SetContext(logger.WithRunID(cmd.Context(), logger.NewRunID()))
	return nil
}

// randomSource returns a seeded source when seed is set
func randomSource(seed uint64) rng.Source {
	if seed != 0 {
		return rng.NewSeeded(seed)
	}
	return rng.Default()
}
