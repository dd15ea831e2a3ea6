package commands

import (
	"context"
	"fmt"
	"scoutIO/business/scrape"
	"scoutIO/business/selector"
	"scoutIO/domain"
	"scoutIO/internal/repository/scraper"
	"scoutIO/pkg/config"
	"scoutIO/pkg/logger"
	"time"

	"github.com/spf13/cobra"
)

func newScrapeCmd() *cobra.Command {
	var (
		mode   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "scrape <product-url> [-m <mode>] [--json]",
		Short: "Runs a scrape job against the provider and prints the normalized candidates.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadScraper()
			if err != nil {
				return err
			}

			client := scraper.NewClient(scraper.Config{
				BaseURL:   cfg.BaseURL,
				APIToken:  cfg.APIToken,
				Username:  cfg.Username,
				Password:  cfg.Password,
				DatasetID: cfg.DatasetID,
				Timeout:   cfg.Timeout,
			})

			candidates, err := runScrape(cmd.Context(), client, cfg, args[0])
			if err != nil {
				return err
			}

			title := "Candidates"
			if mode != "" {
				parsed := domain.ParseMode(mode)
				candidates = selector.SelectAlternatives(candidates, parsed)
				title = parsed.Label()
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), candidates)
			}
			renderCandidates(cmd.OutOrStdout(), title, candidates)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Run the selector over the results with this mode.")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the candidates as JSON.")

	return cmd
}

func runScrape(ctx context.Context, client scrape.Client, cfg config.ScraperConfig, url string) ([]domain.Candidate, error) {
	started := time.Now()

	externalID, err := client.SubmitJob(ctx, scrape.JobSpec{URL: url, DatasetID: cfg.DatasetID})
	if err != nil {
		return nil, fmt.Errorf("failed to submit scrape job: %w", err)
	}
	logger.Info("Scrape job submitted", "external_id", externalID, "url", url)

	outcome := scrape.Await(ctx, client, externalID, scrape.AwaitOptions{
		PollInterval: cfg.PollInterval,
		Deadline:     started.Add(cfg.JobDeadline),
	})
	if outcome.Err != nil {
		return nil, fmt.Errorf("scrape job %s %s: %w", externalID, outcome.Status, outcome.Err)
	}

	candidates := scrape.Normalize(outcome.Items)
	logger.Info("Scrape job finished",
		"external_id", externalID,
		"items", len(outcome.Items),
		"candidates", len(candidates),
		"elapsed", time.Since(started),
	)
	return candidates, nil
}
