package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/farxc/folha-assistente/internal/chat"
	"github.com/farxc/folha-assistente/internal/env"
	"github.com/farxc/folha-assistente/internal/intent"
	"github.com/farxc/folha-assistente/internal/payroll/files"
	"github.com/farxc/folha-assistente/internal/payroll/format"
	"github.com/farxc/folha-assistente/internal/payroll/tabular"
	"github.com/spf13/cobra"
)

func newAskCmd(opts *options) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer one question and print the answer, tool, reason and evidence",
		Args:  cobra.MinimumNArgs(1),
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

			cfg := chat.RouterConfig{
				DependencyTimeout: env.GetDuration("DEPENDENCY_TIMEOUT", intent.DefaultTimeout),
				VocabularyFile:    env.GetString("INTENT_VOCABULARY_FILE", ""),
			}
			if !offline {
				cfg.OpenAIKey = env.GetString("OPENAI_API_KEY", "")
				cfg.OpenAIModel = env.GetString("OPENAI_MODEL", "gpt-4o-mini")
				cfg.LLMRequestsPerMinute = env.GetInt("LLM_REQUESTS_PER_MINUTE", 60)
				cfg.GoogleAPIKey = env.GetString("GOOGLE_API_KEY", "")
				cfg.GoogleEngineID = env.GetString("GOOGLE_SEARCH_ENGINE_ID", "")
			}

			holder := tabular.NewHolder()
			if _, err := holder.Load(func() (*tabular.Store, error) {
				return tabular.LoadFile(opts.csvPath, enc)
			}); err != nil {
				return err
			}

			router, err := chat.NewRouter(holder, cfg, appLogger)
			if err != nil {
				return err
			}

			ans, err := router.Answer(context.Background(), intent.Request{Text: strings.Join(args, " ")})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ans.Text)
			fmt.Fprintf(out, "\ntool_used: %s\nreason:    %s\n", ans.ToolUsed, ans.Reason)
			if ans.Evidence == nil {
				return nil
			}
			for _, it := range ans.Evidence.Records {
				fmt.Fprintf(out, "evidence:  %s %s %s pago em %s\n",
					it.EmployeeID, it.Name, format.Competency(it.Competency), format.Date(it.PaymentDate))
			}
			for _, src := range ans.Evidence.Sources {
				fmt.Fprintf(out, "fonte:     %s <%s>\n", src.Title, src.URL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Use curated sources and offline replies even when API keys are set")
	return cmd
}
