package repo

import "context"

// ConnHandler is called with an acquired connection which may be used
// until the handler returns.
type ConnHandler func(context.Context, Conn) error

// Pool represents a database connection pool, allowing a connection
// to be acquired, used by a handler function, and released again.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
	Close() error
}
