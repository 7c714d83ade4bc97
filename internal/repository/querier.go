package repository

import "database/sql"

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx. Write
// paths that must be atomic (recording a trip together with its monthly
// bucket) pass a transaction; everything else passes the handle directly.
type Querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}
