//go:build !cgo_sqlite

package journal

import (
	_ "modernc.org/sqlite" // default: pure Go SQLite driver
)

const driverName = "sqlite"
