package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/farxc/folha-assistente/internal/db"
	"github.com/farxc/folha-assistente/internal/env"
	"github.com/farxc/folha-assistente/internal/store"
	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int
	var dbAddr string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the latest answered questions from the interaction history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			const component = "History"

			if dbAddr == "" {
				return fmt.Errorf("DB_ADDR is not set")
			}
			appLogger, err := opts.logger()
			if err != nil {
				return err
			}
			defer appLogger.Sync()

			conn, err := db.New(dbAddr, 2, 2, "1m")
			if err != nil {
				return err
			}
			defer conn.Close()
			appLogger.Debug(component, "Database connection established")

			rows, err := store.NewStorage(conn).Interactions.GetLatest(context.Background(), limit)
			if err != nil {
				return err
			}
			return printInteractions(cmd, rows)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of rows to print")
	cmd.Flags().StringVar(&dbAddr, "db", env.GetString("DB_ADDR", ""), "Postgres connection string")
	return cmd
}

func printInteractions(cmd *cobra.Command, rows []store.Interaction) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tTOOL\tREASON\tQUESTION\tEVIDENCE")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			row.ID,
			row.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			row.ToolUsed,
			row.Reason,
			row.Question,
			strings.Join(row.Evidence(), " "),
		)
	}
	return tw.Flush()
}
