package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scoreboard",
		Short: "Live match scoreboard",
		Long: `Tracks live matches and ranks them by total score, most recently
started first on ties.

  serve  run the HTTP/WebSocket API (configured from the environment)
  demo   replay a scoreboard script and print the summaries`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		demoCmd(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
