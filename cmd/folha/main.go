package main

import (
	"fmt"
	"os"

	"github.com/farxc/folha-assistente/internal/env"
	"github.com/farxc/folha-assistente/internal/logger"
	"github.com/spf13/cobra"
)

type options struct {
	csvPath  string
	encoding string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "folha",
		Short: "Payroll assistant command line",
		Long: `folha answers payroll questions from a CSV export, validates exports
before they are deployed and prints the interaction history.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.csvPath, "csv", env.GetString("PAYROLL_CSV", "data/payroll.csv"), "Payroll CSV file")
	rootCmd.PersistentFlags().StringVar(&opts.encoding, "encoding", env.GetString("PAYROLL_CSV_ENCODING", "auto"), "CSV encoding: auto, utf-8, windows-1252")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "loglevel", env.GetString("LOG_LEVEL", "warn"), "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newValidateCmd(opts),
		newAskCmd(opts),
		newHistoryCmd(opts),
		newExamplesCmd(),
	)
	return rootCmd
}

func (o *options) logger() (*logger.Logger, error) {
	return logger.New(logger.ParseLevel(o.logLevel))
}

func main() {
	if err := env.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read .env: %v\n", err)
		os.Exit(1)
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
