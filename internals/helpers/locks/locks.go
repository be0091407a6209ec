// file: internals/helpers/locks/locks.go
package locks

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned when the wait for a lock ends without owning it.
var ErrNotAcquired = errors.New("lock not acquired")

/* =========================
   Noop
========================= */

type Noop struct{}

func (Noop) Lock(context.Context, string) (func(), error) { return func() {}, nil }

/* =========================
   Redis: SET NX PX + compare-and-delete
========================= */

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

type Redis struct {
	Client *redis.Client
	TTL    time.Duration
	Poll   time.Duration
	Prefix string
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Redis{Client: client, TTL: ttl, Poll: 25 * time.Millisecond, Prefix: "swimclub:"}
}

// NewRedisFromURL parses a redis:// URL and checks the server answers.
func NewRedisFromURL(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedis(client, ttl), nil
}

// Lock blocks until key is owned or ctx ends. The TTL bounds how long a
// crashed holder can keep the key.
func (l *Redis) Lock(ctx context.Context, key string) (func(), error) {
	full := l.Prefix + key
	token, err := newToken()
	if err != nil {
		return nil, err
	}
	for {
		ok, err := l.Client.SetNX(ctx, full, token, l.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, ctx.Err())
		case <-time.After(l.Poll):
		}
	}
	return func() {
		rctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.Client, []string{full}, token).Err(); err != nil {
			log.Printf("[WARN] redis unlock %s: %v", key, err)
		}
	}, nil
}

func (l *Redis) Close() error { return l.Client.Close() }

func newToken() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}

/* =========================
   Postgres transaction advisory lock
========================= */

// Postgres holds pg_advisory_xact_lock inside an open transaction, so the
// lock dies with the transaction even behind PgBouncer transaction pooling.
// DB should be a pool of its own (see databases.OpenLockDB): a holder keeps
// its connection until release and must not compete with the queries it
// is guarding.
type Postgres struct {
	DB *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{DB: db} }

func (l *Postgres) Lock(ctx context.Context, key string) (func(), error) {
	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, err)
	}
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, err)
	}
	return func() {
		// ending the transaction releases the lock
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("[WARN] advisory unlock %s: %v", key, err)
		}
	}, nil
}
