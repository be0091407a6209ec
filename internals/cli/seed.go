package cli

import (
	"github.com/spf13/cobra"

	database "swimclub_backend/internals/databases"
	"swimclub_backend/internals/seeds"
)

func NewSeedCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML fixture (profiles, groups, sessions, enrollments, invoices)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)
			sum, err := seeds.RunAllSeeds(db, file)
			if err != nil {
				return err
			}
			return printJSON(cmd, sum)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "internals/seeds/fixtures/demo.yaml", "fixture file")
	return cmd
}
