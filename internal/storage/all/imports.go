// Package all wires every built-in storage backend into the storage factory.
// It exists only for its side effects: importing it runs the init functions
// that call storage.Register for
//
//   - "postgres" (pgx v5)
//   - "sqlite"   (modernc.org/sqlite)
//   - "mysql"    (go-sql-driver/mysql)
//   - "mssql"    (go-mssqldb)
//
// A binary that only needs a subset can import those backends directly
// instead.
package all

import (
	_ "github.com/jvportella/dataset-financial-transactions/internal/storage/mssql"
	_ "github.com/jvportella/dataset-financial-transactions/internal/storage/mysql"
	_ "github.com/jvportella/dataset-financial-transactions/internal/storage/postgres"
	_ "github.com/jvportella/dataset-financial-transactions/internal/storage/sqlite"
)
