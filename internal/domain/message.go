package domain

import (
	"context"

	"github.com/Shugur-Network/podreader/internal/config"
)

// Message is one row of the messages table.
type Message struct {
	Name string
}

// MessageCursor is a lazy, finite, forward-only view over a query result.
// It cannot be rewound; a fresh query is needed to read the rows again.
type MessageCursor interface {
	// Next advances to the next row and reports whether there is one.
	Next() bool
	// Message returns the row Next moved to.
	Message() Message
	// Err returns the error that stopped iteration early, if any.
	Err() error
	Close() error
}

// MessageStore is an open connection to the messages database.
type MessageStore interface {
	// Messages runs the fixed read query.
	Messages(ctx context.Context) (MessageCursor, error)
	Close() error
}

// Dialer opens one MessageStore per invocation.
type Dialer interface {
	Dial(ctx context.Context, params config.ConnectionParams) (MessageStore, error)
}
