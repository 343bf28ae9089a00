package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

var scanQuery usecase.LeadQuery

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Source one batch of leads and print them as JSON",
	Long: `scan asks the AI gateway for prospective buyers matching a niche and
prints them to stdout. An empty array means the gateway failed or returned
nothing usable; details go to the log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		gateway, err := newGateway(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		if scanQuery.Count <= 0 {
			scanQuery.Count = cfg.Dashboard.LeadBatchSize
		}
		sourcer := usecase.NewLeadSourcingService(gateway, cfg.Gemini.TextModel, log.Named("leads"))
		leads := sourcer.FindPotentialLeads(cmd.Context(), scanQuery)
		if leads == nil {
			leads = []entity.Lead{}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(leads)
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanQuery.Niche, "niche", "", "Target niche (required)")
	scanCmd.Flags().StringVar(&scanQuery.Keywords, "keywords", "", "Comma separated keywords")
	scanCmd.Flags().StringVar(&scanQuery.NegativeKeywords, "exclude", "", "Comma separated negative keywords")
	scanCmd.Flags().IntVar(&scanQuery.Count, "count", 0, "Leads to request (defaults to the dashboard batch size)")
	_ = scanCmd.MarkFlagRequired("niche")
}
