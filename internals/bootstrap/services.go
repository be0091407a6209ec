// file: internals/bootstrap/services.go
package bootstrap

import (
	"context"
	"log"

	"gorm.io/gorm"

	"swimclub_backend/internals/configs"
	database "swimclub_backend/internals/databases"
	invoiceRepo "swimclub_backend/internals/features/finance/invoices/repository"
	invoiceService "swimclub_backend/internals/features/finance/invoices/service"
	attendanceRepo "swimclub_backend/internals/features/school/attendances/repository"
	attendanceService "swimclub_backend/internals/features/school/attendances/service"
	scheduleRepo "swimclub_backend/internals/features/school/enrollments/repository"
	authService "swimclub_backend/internals/features/users/auth/service"
	profileRepo "swimclub_backend/internals/features/users/profiles/repository"
	"swimclub_backend/internals/helpers/locks"
)

// Services holds everything the HTTP layer and the CLI commands share.
type Services struct {
	Attendance *attendanceService.AttendanceService
	Gate       *invoiceService.GateService
	Reconcile  *invoiceService.ReconcileService
	Auth       *authService.AuthService

	closers []func() error
}

// Build wires repositories, the lock backend and services over db.
// Redis is used for locks when REDIS_URL is set, Postgres advisory locks otherwise.
func Build(ctx context.Context, db *gorm.DB, cfg *configs.AppConfig) (*Services, error) {
	s := &Services{}

	locker, err := buildLocker(ctx, cfg, s)
	if err != nil {
		return nil, err
	}

	profiles := profileRepo.NewProfileRepository(db)
	invoices := invoiceRepo.NewInvoiceRepository(db)

	gate := invoiceService.NewBillingGate(invoices, invoiceService.GateConfig{
		FromDay:       cfg.GateFromDay,
		StrictFromDay: cfg.StrictFromDay,
		Location:      cfg.ClubLocation,
	})

	s.Attendance = attendanceService.NewAttendanceService(attendanceService.Deps{
		Profiles: profiles,
		Schedule: scheduleRepo.NewScheduleRepository(db),
		Records:  attendanceRepo.NewAttendanceRepository(db),
		Gate:     gate,
		Locker:   locker,
	}, attendanceService.Config{
		Location:  cfg.ClubLocation,
		LateAfter: cfg.LateAfter(),
	})

	s.Gate = invoiceService.NewGateService(profiles, gate)

	var gw invoiceService.PaymentGateway
	if cfg.MidtransServerKey != "" {
		gw = invoiceService.NewMidtransGateway(cfg.MidtransServerKey, cfg.MidtransUseProd)
		log.Printf("[INFO] midtrans gateway enabled (production=%v)", cfg.MidtransUseProd)
	} else {
		log.Println("⚠️ MIDTRANS_SERVER_KEY not set, invoice sync disabled")
	}
	s.Reconcile = invoiceService.NewReconcileService(invoices, gw)

	s.Auth = authService.NewAuthService(profiles, cfg.JWTSecret, cfg.JWTTTL)
	return s, nil
}

func buildLocker(ctx context.Context, cfg *configs.AppConfig, s *Services) (attendanceService.Locker, error) {
	if cfg.RedisURL != "" {
		rl, err := locks.NewRedisFromURL(ctx, cfg.RedisURL, cfg.LockTTL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, rl.Close)
		log.Println("[INFO] attendance locks: redis")
		return rl, nil
	}
	lockDB, err := database.OpenLockDB(cfg)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, lockDB.Close)
	log.Printf("[INFO] attendance locks: postgres advisory (pool=%d)", cfg.LockPoolSize)
	return locks.NewPostgres(lockDB), nil
}

func (s *Services) Close() {
	for _, c := range s.closers {
		if err := c(); err != nil {
			log.Printf("[WARN] close: %v", err)
		}
	}
}
