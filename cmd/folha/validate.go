package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/farxc/folha-assistente/internal/payroll/files"
	"github.com/farxc/folha-assistente/internal/payroll/format"
	"github.com/farxc/folha-assistente/internal/payroll/tabular"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *options) *cobra.Command {
	var profile bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the payroll CSV and report schema errors or a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appLogger, err := opts.logger()
			if err != nil {
				return err
			}
			defer appLogger.Sync()

			enc, err := files.ParseEncoding(opts.encoding)
			if err != nil {
				return err
			}

			var monitor *MemoryMonitor
			if profile {
				monitor = NewMonitor()
				monitor.Start(100*time.Millisecond, appLogger)
			}

			start := time.Now()
			s, err := tabular.LoadFile(opts.csvPath, enc)
			elapsed := time.Since(start)

			out := cmd.OutOrStdout()
			if monitor != nil {
				stats := monitor.Stop()
				fmt.Fprintf(out, "load: %s peakGoroutines=%d peakMemoryMB=%d\n", elapsed.Round(time.Millisecond), stats.PeakGoroutines, stats.PeakMemoryMB)
			}
			if err != nil {
				var schemaErr *tabular.SchemaError
				if errors.As(err, &schemaErr) {
					fmt.Fprintf(out, "INVALID %s\n", opts.csvPath)
					if schemaErr.Row > 0 {
						fmt.Fprintf(out, "  row:    %d\n", schemaErr.Row)
					}
					fmt.Fprintf(out, "  column: %s\n", schemaErr.Column)
					if schemaErr.Value != "" {
						fmt.Fprintf(out, "  value:  %q\n", schemaErr.Value)
					}
					fmt.Fprintf(out, "  reason: %s\n", schemaErr.Reason)
				}
				return err
			}

			comps := s.Competencies()
			fmt.Fprintf(out, "OK %s\n", opts.csvPath)
			fmt.Fprintf(out, "  records:      %d\n", s.Len())
			fmt.Fprintf(out, "  employees:    %d\n", len(s.Employees()))
			if len(comps) > 0 {
				fmt.Fprintf(out, "  competencies: %s a %s (%d)\n",
					format.Competency(comps[0]), format.Competency(comps[len(comps)-1]), len(comps))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&profile, "profile", false, "Report peak goroutines and memory while loading")
	return cmd
}
