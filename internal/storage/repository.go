// Package storage contains the backend-agnostic contract used by the load
// stage: a single open connection that performs conflict-tolerant inserts,
// one transaction per table.
//
// Backends (postgres, sqlite, mysql, mssql) register a Factory from their
// init functions; importing internal/storage/all wires all of them. The
// loader and CLI only ever see Conn and TableSpec.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrConnect marks a failure to reach the database. Callers use errors.Is to
// tell it apart from failures that happen once a connection exists.
var ErrConnect = errors.New("storage: connect")

// ErrClosed is returned by a Session used after Close.
var ErrClosed = errors.New("storage: connection closed")

// Config selects and configures a backend.
type Config struct {
	// Kind is a registered backend name, e.g. "postgres" or "sqlite".
	Kind string
	// DSN is passed to the backend driver unchanged.
	DSN string
}

// Result counts rows sent to InsertIgnore and rows the database actually
// inserted. The difference is rows skipped because their key already existed.
type Result struct {
	Attempted int64
	Inserted  int64
}

// Ignored returns the number of rows skipped on key conflict.
func (r Result) Ignored() int64 { return r.Attempted - r.Inserted }

// Conn is one open database connection.
type Conn interface {
	// InsertIgnore inserts rows (aligned to spec.Columns) in a single
	// transaction, silently skipping rows whose spec.ConflictKey already
	// exists. Any other error rolls the transaction back and is returned.
	InsertIgnore(ctx context.Context, spec TableSpec, rows [][]any) (Result, error)

	// Close releases the connection.
	Close(ctx context.Context) error
}

// Factory opens a Conn for cfg. Implementations wrap connection failures with
// ErrConnect.
type Factory func(ctx context.Context, cfg Config) (Conn, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a backend available under kind. Registering the same kind
// twice replaces the previous factory.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// ListKinds returns the registered backend names, sorted.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Open connects to the backend named by cfg.Kind and returns a Session that
// guarantees the connection is closed at most once.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage kind %q (registered: %v)", cfg.Kind, ListKinds())
	}

	c, err := f(ctx, cfg)
	if err != nil {
		if errors.Is(err, ErrConnect) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrConnect, cfg.Kind, err)
	}
	return NewSession(c), nil
}

// Session wraps a Conn so Close is idempotent: the first call closes the
// underlying connection, later calls do nothing. Inserts after Close fail
// with ErrClosed.
type Session struct {
	mu     sync.Mutex
	conn   Conn
	closed bool
}

// NewSession wraps c.
func NewSession(c Conn) *Session { return &Session{conn: c} }

var _ Conn = (*Session)(nil)

// InsertIgnore implements Conn.
func (s *Session) InsertIgnore(ctx context.Context, spec TableSpec, rows [][]any) (Result, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return Result{}, ErrClosed
	}
	if err := spec.Validate(); err != nil {
		return Result{}, err
	}
	return s.conn.InsertIgnore(ctx, spec, rows)
}

// Close implements Conn. It is safe to call more than once.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close(ctx)
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
