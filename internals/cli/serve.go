// file: internals/cli/serve.go
package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"swimclub_backend/internals/bootstrap"
	database "swimclub_backend/internals/databases"
	"swimclub_backend/internals/features/school/attendances/scheduler"
	helper "swimclub_backend/internals/helpers"
	middlewares "swimclub_backend/internals/middlewares"
	routes "swimclub_backend/internals/route"
)

func NewServeCommand() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations before serving")
	return cmd
}

func runServe(migrate bool) error {
	cfg, db, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close(db)

	if migrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	// 🔌 pool + warm-up
	database.TunePool(db)
	database.WarmUpQueries(db)

	svc, err := bootstrap.Build(context.Background(), db, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.JsonFromError,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app, cfg)
	routes.SetupRoutes(app, db, cfg, svc)

	// ⏱ scheduler setelah DB siap
	if cfg.SweepEnabled {
		c, err := scheduler.StartAbsenceSweep(svc.Attendance, scheduler.SweepConfig{
			CronSchedule: cfg.SweepCron,
			Location:     cfg.ClubLocation,
		})
		if err != nil {
			return err
		}
		defer func() { <-c.Stop().Done() }()
	}

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on :%s", cfg.AppPort)
		errCh <- app.Listen("0.0.0.0:" + cfg.AppPort)
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Println("🛑 Shutting down...")
	return app.ShutdownWithContext(ctx)
}
