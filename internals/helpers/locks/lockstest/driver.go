// Package lockstest provides an in-memory database/sql backend that
// understands pg_advisory_xact_lock, for testing code that runs under
// locks.Postgres without a server.
package lockstest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"sync"
)

// Backend hands out connections that share one advisory lock table. A key
// taken with pg_advisory_xact_lock(hashtext($1)) is held until the
// transaction that took it ends. Every other statement succeeds.
type Backend struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

func NewBackend() *Backend {
	return &Backend{held: map[string]chan struct{}{}}
}

// OpenDB returns a pool over the backend capped at maxOpen connections.
func (b *Backend) OpenDB(maxOpen int) *sql.DB {
	db := sql.OpenDB(connector{b})
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	return db
}

// Held reports whether key is currently locked.
func (b *Backend) Held(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.held[key]
	return ok
}

func (b *Backend) acquire(ctx context.Context, key string) error {
	for {
		b.mu.Lock()
		ch, busy := b.held[key]
		if !busy {
			b.held[key] = make(chan struct{})
			b.mu.Unlock()
			return nil
		}
		b.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (b *Backend) release(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.held[key]; ok {
		close(ch)
		delete(b.held, key)
	}
}

type connector struct{ b *Backend }

func (c connector) Connect(context.Context) (driver.Conn, error) { return &conn{b: c.b}, nil }
func (c connector) Driver() driver.Driver                        { return drv{c.b} }

type drv struct{ b *Backend }

func (d drv) Open(string) (driver.Conn, error) { return &conn{b: d.b}, nil }

type conn struct {
	b    *Backend
	keys []string
}

func (c *conn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("lockstest: prepared statements are not supported")
}

func (c *conn) Close() error {
	c.releaseAll()
	return nil
}

func (c *conn) Begin() (driver.Tx, error) { return tx{c}, nil }

func (c *conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if strings.Contains(query, "pg_advisory_xact_lock") {
		if len(args) != 1 {
			return nil, errors.New("lockstest: advisory lock needs one key argument")
		}
		key, _ := args[0].Value.(string)
		if err := c.b.acquire(ctx, key); err != nil {
			return nil, err
		}
		c.keys = append(c.keys, key)
	}
	return driver.RowsAffected(0), nil
}

func (c *conn) releaseAll() {
	for _, k := range c.keys {
		c.b.release(k)
	}
	c.keys = nil
}

type tx struct{ c *conn }

func (t tx) Commit() error   { t.c.releaseAll(); return nil }
func (t tx) Rollback() error { t.c.releaseAll(); return nil }
