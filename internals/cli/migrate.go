package cli

import (
	"github.com/spf13/cobra"

	database "swimclub_backend/internals/databases"
)

func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)
			return database.Migrate(db)
		},
	}
}
