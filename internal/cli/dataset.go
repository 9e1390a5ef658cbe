package cli

import (
	"github.com/spf13/cobra"

	"github.com/ecometer/ecometer/internal/refdata"
)

func newDatasetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Inspect and validate the reference dataset",
	}
	cmd.AddCommand(newDatasetValidateCmd(), newDatasetInfoCmd(a))
	return cmd
}

// newDatasetValidateCmd re-validates the dataset selected by --dataset.
// The persistent pre-run already loads (and thus validates) it, so reaching
// this RunE means the dataset passed; the command exists to give dataset
// authors an explicit green light before shipping a file.
func newDatasetValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a reference dataset file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("dataset")
			if path == "" {
				cmd.Println("embedded dataset: OK")
				return nil
			}
			if _, err := refdata.LoadFile(path); err != nil {
				return err
			}
			cmd.Printf("%s: OK\n", path)
			return nil
		},
	}
}

func newDatasetInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show reference dataset summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds := a.dataset
			cmd.Printf("schema version:  %s (supported: %s)\n", ds.SchemaVersion, refdata.SupportedSchema)
			cmd.Printf("materials:       %d\n", len(ds.Materials))
			cmd.Printf("categories:      %d\n", len(ds.Categories))
			cmd.Printf("origin hubs:     %d (default %q)\n", len(ds.Hubs), ds.DefaultHub)
			cmd.Printf("water-crossing:  %d origins\n", len(ds.WaterCrossingOrigins))
			cmd.Printf("grade bands:     %d\n", len(ds.Bands))
			return nil
		},
	}
}
