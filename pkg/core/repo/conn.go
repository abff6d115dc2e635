package repo

import "context"

// TxHandler is called with a began transaction which will be committed
// after the handler returns without error, or rolled back otherwise.
type TxHandler func(context.Context, Tx) error

// Conn represents a single database connection. Statements which are
// executed directly on a connection run in auto-committed mode, while
// the Tx method may be used to wrap a handler in one transaction.
type Conn interface {
	Queryer
	Tx(ctx context.Context, handler TxHandler) error
	IsConn()
}
