// Package cmd - normalize command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"cloudcost/clouds"
	"cloudcost/core/mapper"
	"cloudcost/core/normalize"
	"cloudcost/db"
	"cloudcost/internal/config"
)

var (
	normProject      string
	normDataset      string
	normStartDate    string
	normEndDate      string
	normProvider     string
	normPipelineID   string
	normCredentialID string
	normRunID        string
	normFormat       string
	normDryRun       bool
)

// normalizeCmd represents the normalize command
var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize a raw billing window into canonical cost records",
	Long: `Read raw billing rows for a date window, map them to canonical cost
records, attribute them to the organizational hierarchy, stamp lineage, and
atomically replace the matching canonical window.

Re-running the same window is safe: existing rows for the window and provider
are deleted and rewritten in one transaction.

Examples:
  cloudcost normalize --project billing-prod --dataset acme_prod --start-date 2026-01-01 --provider gcp
  cloudcost normalize --project billing-prod --dataset acme_prod --start-date 2026-01-01 --end-date 2026-01-31
  cloudcost normalize --project billing-prod --dataset acme_prod --start-date 2026-01-01 --dry-run`,
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVar(&normProject, "project", "", "billing project the dataset lives in")
	normalizeCmd.Flags().StringVar(&normDataset, "dataset", "", "per-organization dataset, e.g. acme_prod")
	normalizeCmd.Flags().StringVar(&normStartDate, "start-date", "", "window start date (YYYY-MM-DD)")
	normalizeCmd.Flags().StringVar(&normEndDate, "end-date", "", "window end date, inclusive (defaults to start date)")
	normalizeCmd.Flags().StringVarP(&normProvider, "provider", "p", normalize.ProviderAll, "provider to normalize (gcp, aws, azure, oci, all)")
	normalizeCmd.Flags().StringVar(&normPipelineID, "pipeline-id", "", "pipeline identifier for lineage")
	normalizeCmd.Flags().StringVar(&normCredentialID, "credential-id", "", "credential identifier for lineage")
	normalizeCmd.Flags().StringVar(&normRunID, "run-id", "", "run identifier for lineage (generated when empty)")
	normalizeCmd.Flags().StringVarP(&normFormat, "format", "f", "text", "output format (text, json)")
	normalizeCmd.Flags().BoolVar(&normDryRun, "dry-run", false, "map and validate but roll back instead of committing")

	normalizeCmd.MarkFlagRequired("project")
	normalizeCmd.MarkFlagRequired("dataset")
	normalizeCmd.MarkFlagRequired("start-date")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Get()

	overrides, err := mapper.LoadOverrides(cfg.Rules.OverridesFile)
	if err != nil {
		return err
	}
	registry, err := clouds.NewRegistry(overrides)
	if err != nil {
		return err
	}

	store, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if normRunID == "" {
		normRunID = uuid.NewString()
	}
	if normPipelineID == "" {
		normPipelineID = "cloudcost-cli"
	}
	if normCredentialID == "" {
		normCredentialID = "local"
	}

	engine := normalize.NewEngine(store, registry)
	summary, err := engine.Run(ctx, normalize.Params{
		Project:      normProject,
		Dataset:      normDataset,
		StartDate:    normStartDate,
		EndDate:      normEndDate,
		Provider:     normProvider,
		PipelineID:   normPipelineID,
		CredentialID: normCredentialID,
		RunID:        normRunID,
		DryRun:       normDryRun,
	})
	if err != nil {
		return err
	}

	return printSummary(cmd, summary)
}

func printSummary(cmd *cobra.Command, summary *normalize.Summary) error {
	if normFormat == "json" {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Project:       %s\n", summary.Project)
	fmt.Fprintf(out, "Organization:  %s\n", summary.Organization)
	fmt.Fprintf(out, "Provider:      %s\n", summary.Provider)
	fmt.Fprintf(out, "Window:        %s .. %s\n", summary.StartDate, summary.EndDate)
	fmt.Fprintf(out, "Rows read:     %d\n", summary.RowsRead)
	fmt.Fprintf(out, "Rows deleted:  %d\n", summary.RowsDeleted)
	fmt.Fprintf(out, "Rows inserted: %d\n", summary.RowsInserted)
	fmt.Fprintf(out, "Target table:  %s\n", summary.TargetTable)
	if summary.DryRun {
		fmt.Fprintln(out, "Dry run: no changes were committed")
	}
	return nil
}
