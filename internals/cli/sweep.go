package cli

import (
	"github.com/spf13/cobra"

	"swimclub_backend/internals/bootstrap"
	database "swimclub_backend/internals/databases"
	"swimclub_backend/internals/helpers/dbtime"
)

func NewSweepCommand() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Mark learners absent for sessions they never checked in to",
		Long: `Writes an absent record for every active enrollment of the day's
active sessions that has no record yet. Existing records are left alone,
so the command can be re-run safely. Defaults to today in the club timezone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			day := svc.Attendance.Today()
			if date != "" {
				if day, err = dbtime.ParseDate(date); err != nil {
					return err
				}
			}
			res, err := svc.Attendance.SweepAbsences(ctx, day)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to sweep (YYYY-MM-DD)")
	return cmd
}
