package storage

import (
	"database/sql"
	"fmt"

	"github.com/Shugur-Network/podreader/internal/domain"
)

// rowCursor adapts *sql.Rows to domain.MessageCursor.
type rowCursor struct {
	rows    *sql.Rows
	current domain.Message
	err     error
}

func newRowCursor(rows *sql.Rows) *rowCursor {
	return &rowCursor{rows: rows}
}

func (c *rowCursor) Next() bool {
	if c.err != nil || !c.rows.Next() {
		return false
	}
	// NULL names render as empty text.
	var name sql.NullString
	if err := c.rows.Scan(&name); err != nil {
		c.err = fmt.Errorf("scan message row: %w", err)
		return false
	}
	c.current = domain.Message{Name: name.String}
	return true
}

func (c *rowCursor) Message() domain.Message { return c.current }

func (c *rowCursor) Err() error {
	if c.err != nil {
		return c.err
	}
	if err := c.rows.Err(); err != nil {
		return fmt.Errorf("read message rows: %w", err)
	}
	return nil
}

func (c *rowCursor) Close() error { return c.rows.Close() }
