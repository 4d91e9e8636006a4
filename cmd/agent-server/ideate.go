// cmd/agent-server/ideate.go
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newIdeateCommand runs the ideation agent once and prints the response document.
func newIdeateCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ideate <prompt>",
		Short: "Generate a project ideation for a prompt and print it as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}
			zapLog, log := newLogger(cfg)
			defer zapLog.Sync()

			_, set := newAgents(cfg, log)
			ctx, cancel := withTimeout(cfg)
			defer cancel()

			resp := set.Ideation.Generate(ctx, strings.Join(args, " "))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(resp.Payload()); err != nil {
				return err
			}
			if !resp.Success {
				return fmt.Errorf("ideation failed, printed fallback: %s", resp.Error)
			}
			return nil
		},
	}
}
