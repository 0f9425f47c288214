package db

import "database/sql"

// DBProvider is an interface for database clients that expose a sql.DB
// handle, so the archiver can run against plain Postgres or Supabase.
type DBProvider interface {
	DB() *sql.DB
}
