package zombiezen

import (
	"context"
	"embed"
	"fmt"
	"path"

	"zombiezen.com/go/sqlite/sqlitex"
)

// ParsesSchema is the script creating the parse cache table.
const ParsesSchema = "parses.sql"

// sqlFiles embeds all SQL scripts from the sql/ subdirectory.
//
//go:embed sql/*.sql
var sqlFiles embed.FS

// CreateSchemas executes an embedded SQL script (e.g. ParsesSchema) using
// the provided connection pool.
func CreateSchemas(pool *sqlitex.Pool, schemaName string) error {
	scriptPath := path.Join("sql", schemaName)

	script, err := sqlFiles.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read embedded sql file %s: %w", scriptPath, err)
	}

	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	// ExecuteScript handles multi-statement strings.
	if err := sqlitex.ExecuteScript(conn, string(script), nil); err != nil {
		return fmt.Errorf("failed to execute script %s: %w", schemaName, err)
	}

	return nil
}
