// Package postgres implements the persistence ports over PostgreSQL using
// pgx. The Store hands out transactions for the mutation pipeline; every
// repository resolves the transaction from the context, so a repository call
// inside a unit of work automatically joins that unit's physical transaction
// and a call outside one runs directly on the pool.
package postgres
