package zombiezen

import (
	"fmt"
	"runtime"

	"zombiezen.com/go/sqlite/sqlitex"
)

// NewPool creates a new Zombiezen SQLite connection pool with reasonable defaults
// (e.g., WAL mode enabled). The pool is sized for one connection per
// converter worker.
func NewPool(dbPath string, poolSize int) (*sqlitex.Pool, error) {
	if poolSize < 1 {
		poolSize = runtime.NumCPU()
	}
	initString := fmt.Sprintf("file:%s", dbPath)

	// zombiezen/sqlitex.NewPool with default options uses flags:
	// sqlite.OpenReadWrite | sqlite.OpenCreate | sqlite.OpenWAL | sqlite.OpenURI
	pool, err := sqlitex.NewPool(initString, sqlitex.PoolOptions{
		PoolSize: poolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create zombiezen pool at %s: %w", dbPath, err)
	}
	return pool, nil
}
