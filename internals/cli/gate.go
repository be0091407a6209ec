package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/datatypes"

	"swimclub_backend/internals/bootstrap"
	database "swimclub_backend/internals/databases"
	"swimclub_backend/internals/helpers/dbtime"
)

func NewGateCommand() *cobra.Command {
	var learner, date string
	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Show whether a learner would be blocked by unpaid invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(learner)
			if err != nil {
				return fmt.Errorf("--learner: %w", err)
			}
			var day *datatypes.Date
			if date != "" {
				d, err := dbtime.ParseDate(date)
				if err != nil {
					return fmt.Errorf("--date: %w", err)
				}
				day = &d
			}

			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx, cancel := commandContext(cmd, cfg)
			defer cancel()
			svc, err := bootstrap.Build(ctx, db, cfg)
			if err != nil {
				return err
			}
			defer svc.Close()

			d, err := svc.Gate.ForLearner(ctx, id, day)
			if err != nil {
				return err
			}
			return printJSON(cmd, d)
		},
	}
	cmd.Flags().StringVar(&learner, "learner", "", "learner profile id")
	cmd.Flags().StringVar(&date, "date", "", "evaluate as of this day (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("learner")
	return cmd
}
