// file: internals/configs/app_config.go
package configs

import (
	"errors"
	"fmt"
	"log"
	"time"
	_ "time/tzdata" // club timezone must resolve on slim images

	gormLogger "gorm.io/gorm/logger"
)

const DefaultClubTimezone = "America/Port-au-Prince"

type AppConfig struct {
	AppPort string
	AppEnv  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBLogLevel gormLogger.LogLevel

	JWTSecret string
	JWTTTL    time.Duration

	ClubTimezone string
	ClubLocation *time.Location

	// Attendance rules
	LateAfterMinutes int
	GateFromDay      int // billing gate starts on this day of month
	StrictFromDay    int // partial invoices block from this day of month
	SweepCron        string
	SweepEnabled     bool

	RequestTimeout time.Duration
	RedisURL       string
	LockTTL        time.Duration
	LockPoolSize   int

	// HTTP limits. The global bucket is per client IP and desk id.
	RateLimitMax         int
	RateLimitWindow      time.Duration
	LoginRateLimitMax    int
	LoginRateLimitWindow time.Duration

	MidtransServerKey string
	MidtransUseProd   bool
}

// Load reads AppConfig from the environment. Call LoadEnv first.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		AppPort: GetEnv("PORT", "3000"),
		AppEnv:  GetEnv("APP_ENV", "dev"),

		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBUser:     GetEnv("DB_USER", "postgres"),
		DBPassword: GetEnv("DB_PASSWORD"),
		DBName:     GetEnv("DB_NAME", "swimclub"),
		DBSSLMode:  GetEnv("DB_SSLMODE", "require"),
		DBLogLevel: ParseGormLogLevel(GetEnv("DB_LOG_LEVEL", "warn")),

		JWTSecret: GetEnv("JWT_SECRET"),
		JWTTTL:    GetEnvDuration("JWT_TTL", 12*time.Hour),

		ClubTimezone: GetEnv("CLUB_TIMEZONE", DefaultClubTimezone),

		LateAfterMinutes: GetEnvInt("ATTENDANCE_LATE_AFTER_MINUTES", 15),
		GateFromDay:      GetEnvInt("BILLING_GATE_FROM_DAY", 8),
		StrictFromDay:    GetEnvInt("BILLING_GATE_STRICT_FROM_DAY", 16),
		SweepCron:        GetEnv("ATTENDANCE_SWEEP_CRON", "30 22 * * *"),
		SweepEnabled:     GetEnvBool("ATTENDANCE_SWEEP_ENABLED", true),

		RequestTimeout: GetEnvDuration("REQUEST_TIMEOUT", 5*time.Second),
		RedisURL:       GetEnv("REDIS_URL"),
		LockTTL:        GetEnvDuration("ATTENDANCE_LOCK_TTL", 10*time.Second),
		LockPoolSize:   GetEnvInt("ATTENDANCE_LOCK_POOL_SIZE", 10),

		RateLimitMax:         GetEnvInt("RATE_LIMIT_MAX", 300),
		RateLimitWindow:      GetEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		LoginRateLimitMax:    GetEnvInt("LOGIN_RATE_LIMIT_MAX", 5),
		LoginRateLimitWindow: GetEnvDuration("LOGIN_RATE_LIMIT_WINDOW", time.Minute),

		MidtransServerKey: GetEnv("MIDTRANS_SERVER_KEY"),
		MidtransUseProd:   GetEnvBool("MIDTRANS_USE_PROD", false),
	}

	loc, err := time.LoadLocation(cfg.ClubTimezone)
	if err != nil {
		return nil, fmt.Errorf("CLUB_TIMEZONE %q: %w", cfg.ClubTimezone, err)
	}
	cfg.ClubLocation = loc

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
	log.Printf("[INFO] config: env=%s tz=%s late_after=%dm gate_from=%d strict_from=%d db_log=%s",
		cfg.AppEnv, cfg.ClubTimezone, cfg.LateAfterMinutes, cfg.GateFromDay, cfg.StrictFromDay, describeLevel(cfg.DBLogLevel))
	return cfg, nil
}

func (c *AppConfig) validate() error {
	if c.LateAfterMinutes < 0 {
		return errors.New("ATTENDANCE_LATE_AFTER_MINUTES must be >= 0")
	}
	if c.GateFromDay < 1 || c.GateFromDay > 31 {
		return errors.New("BILLING_GATE_FROM_DAY must be within 1..31")
	}
	if c.StrictFromDay < c.GateFromDay {
		return errors.New("BILLING_GATE_STRICT_FROM_DAY must be >= BILLING_GATE_FROM_DAY")
	}
	if c.LockPoolSize < 1 {
		return errors.New("ATTENDANCE_LOCK_POOL_SIZE must be >= 1")
	}
	if c.RateLimitMax < 1 || c.LoginRateLimitMax < 1 {
		return errors.New("RATE_LIMIT_MAX and LOGIN_RATE_LIMIT_MAX must be >= 1")
	}
	if c.RateLimitWindow <= 0 || c.LoginRateLimitWindow <= 0 {
		return errors.New("RATE_LIMIT_WINDOW and LOGIN_RATE_LIMIT_WINDOW must be > 0")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be > 0")
	}
	return nil
}

// DSN carries a statement_timeout aligned with the HTTP timeout guard.
func (c *AppConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=swimclub&options=-c%%20statement_timeout=%d",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
		c.RequestTimeout.Milliseconds(),
	)
}

func (c *AppConfig) LateAfter() time.Duration {
	return time.Duration(c.LateAfterMinutes) * time.Minute
}
