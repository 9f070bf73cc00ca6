package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	sent "github.com/revelaction/qadecl/sentence"
	"github.com/revelaction/qadecl/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type ParseStore struct {
	pool *sqlitex.Pool
}

var _ storage.ParseRepository = (*ParseStore)(nil)

func NewParseStore(pool *sqlitex.Pool) *ParseStore {
	return &ParseStore{pool: pool}
}

func (h *ParseStore) Read(text string) ([]sent.Token, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var tokens []sent.Token
	found := false
	err = sqlitex.Execute(conn, "SELECT data FROM parses WHERE text = ?", &sqlitex.ExecOptions{
		Args: []interface{}{text},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			return json.Unmarshal([]byte(stmt.ColumnText(0)), &tokens)
		},
	})
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, fmt.Errorf("%w: %q", storage.ErrNotFound, text)
	}

	return tokens, nil
}

func (h *ParseStore) List(fn func(text string, tokens []sent.Token) error) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	return sqlitex.Execute(conn, "SELECT text, data FROM parses ORDER BY text", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var tokens []sent.Token
			if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &tokens); err != nil {
				return err
			}
			return fn(stmt.ColumnText(0), tokens)
		},
	})
}

func (h *ParseStore) Count() (int, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return 0, err
	}
	defer h.pool.Put(conn)

	n := 0
	err = sqlitex.Execute(conn, "SELECT count(*) FROM parses", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			n = stmt.ColumnInt(0)
			return nil
		},
	})
	return n, err
}

func (h *ParseStore) Write(text string, tokens []sent.Token) (err error) {
	data, err := json.Marshal(tokens)
	if err != nil {
		return err
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "INSERT OR REPLACE INTO parses (text, data) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{text, string(data)},
	})
	if err != nil {
		return fmt.Errorf("failed to insert parse: %w", err)
	}

	return nil
}
