package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"example.com/scoreboard/internal/scoreboard"
	"example.com/scoreboard/internal/script"
)

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo [script]",
		Short: "Replay a scoreboard script (stdin when no file is given)",
		Example: `  scoreboard demo <<EOF
  start Mexico | Canada
  score #1 0 5
  summary
  EOF`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return script.NewRunner(scoreboard.NewRegistry(), cmd.OutOrStdout()).Run(in)
		},
	}
}
