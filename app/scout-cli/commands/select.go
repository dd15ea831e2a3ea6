package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"scoutIO/business/selector"
	"scoutIO/domain"
	"scoutIO/pkg/logger"

	"github.com/spf13/cobra"
)

func newSelectCmd() *cobra.Command {
	var (
		file   string
		mode   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "select [-f <candidates.json>] [-m <mode>] [--json]",
		Short: "Selects alternatives from a JSON array of candidates.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates, err := readCandidates(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			parsed := domain.ParseMode(mode)
			if !parsed.IsKnown() {
				logger.Warn("Unknown mode, returning candidates unranked", "mode", mode)
			}

			selected := selector.SelectAlternatives(candidates, parsed)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), selected)
			}

			renderCandidates(cmd.OutOrStdout(), parsed.Label(), selected)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Candidates file, - reads stdin.")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(domain.ModeBalanced), "Selection mode: lowest_price, best_reviews, fast_shipping or balanced.")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the selection as JSON.")

	return cmd
}

func readCandidates(stdin io.Reader, path string) ([]domain.Candidate, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}

	var candidates []domain.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("failed to decode candidates: %w", err)
	}
	return candidates, nil
}
