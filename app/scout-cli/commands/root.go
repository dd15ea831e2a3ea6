package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds a fresh command tree, so flag state never leaks
// between invocations.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scout-cli",
		Short:         "scout-cli runs the alternative selector and the scraping provider from a terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSelectCmd())
	root.AddCommand(newScrapeCmd())

	return root
}

func ExecuteContext(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
