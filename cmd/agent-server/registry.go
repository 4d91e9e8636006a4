// cmd/agent-server/registry.go
package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ai-web-platform/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func newRegistryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and export the activity registry",
	}

	var path string
	cmd.PersistentFlags().StringVarP(&path, "path", "p", defaultRegistryPath, "Path to registry file")

	cmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Write the built-in registry to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.Default()
			if err := reg.Validate(); err != nil {
				return err
			}
			if err := reg.Save(path); err != nil {
				return fmt.Errorf("error saving registry: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d activities to %s\n", len(reg.Activities), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate a registry file and compare it with the built-in registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			if err := reg.Validate(); err != nil {
				return fmt.Errorf("registry invalid: %w", err)
			}
			if drift := compareRoutes(registry.Default(), reg); len(drift) > 0 {
				return fmt.Errorf("registry out of date: %v", drift)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry is valid (%d activities)\n", len(reg.Activities))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List routes and task types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tROUTE\tTASK TYPE")
			for _, a := range registry.Default().Activities {
				taskType := a.TaskType
				if taskType == "" {
					taskType = "-"
				}
				fmt.Fprintf(w, "%s\t%s %s\t%s\n", a.ID, a.Method, a.Path, taskType)
			}
			return w.Flush()
		},
	})

	return cmd
}

// compareRoutes lists the activity IDs whose route or task type differ between two registries.
func compareRoutes(want, got *registry.ActivityRegistry) []string {
	var drift []string
	for _, a := range want.Activities {
		b, ok := got.Find(a.ID)
		if !ok {
			drift = append(drift, a.ID+": missing")
			continue
		}
		if a.Method != b.Method || a.Path != b.Path || a.TaskType != b.TaskType {
			drift = append(drift, a.ID+": changed")
		}
	}
	sort.Strings(drift)
	return drift
}
