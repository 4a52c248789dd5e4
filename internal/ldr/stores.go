//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ldr

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"github.com/Masterminds/squirrel"
	"github.com/e-gun/MultiGlossServer/internal/str"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
	"strings"
)

//
// DOCUMENT STORES: a table of (name, body) rows where body is the JSON blob
//

const (
	colname = "name"
	colbody = "body"
)

// SQLiteSchema - what LoadSQLite expects to find
const SQLiteSchema = `CREATE TABLE IF NOT EXISTS ` + vv.DOCTABLE + ` (
	name text PRIMARY KEY,
	body text NOT NULL
)`

// docquery - every document, or only the named ones
func docquery(sb squirrel.StatementBuilderType, names []string) squirrel.SelectBuilder {
	q := sb.Select(colname, colbody).From(vv.DOCTABLE).OrderBy(colname)
	if len(names) > 0 {
		q = q.Where(squirrel.Eq{colname: names})
	}
	return q
}

func decodebody(name string, body string) (*str.Document, error) {
	doc, err := LoadJSON(bytes.NewReader([]byte(body)), name)
	if err != nil {
		return nil, fmt.Errorf("%s '%s': %w", vv.DOCTABLE, name, err)
	}
	return doc, nil
}

//
// SQLITE
//

// OpenSQLite - the pure-Go driver; one connection, so that ":memory:" is a single database
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// LoadSQLite - read documents out of a SQLite store
func LoadSQLite(ctx context.Context, db *sql.DB, names ...string) ([]*str.Document, error) {
	q, args, err := docquery(squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question), names).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*str.Document
	for rows.Next() {
		var n, b string
		if err = rows.Scan(&n, &b); err != nil {
			return nil, err
		}
		d, err := decodebody(n, b)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// StoreSQLite - insert or replace documents in a SQLite store
func StoreSQLite(ctx context.Context, db *sql.DB, docs ...*str.Document) error {
	if _, err := db.ExecContext(ctx, SQLiteSchema); err != nil {
		return err
	}
	for _, d := range docs {
		body, err := DocumentJSON(d)
		if err != nil {
			return err
		}
		_, err = squirrel.Insert(vv.DOCTABLE).
			Options("OR REPLACE").
			Columns(colname, colbody).
			Values(d.Name, string(body)).
			RunWith(db).
			ExecContext(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

//
// POSTGRESQL
//

// Querier - what LoadPG needs from a pool (and what a mock pool can supply)
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// OpenPG - a pool for the document store
func OpenPG(ctx context.Context, pl str.PostgresLogin) (*pgxpool.Pool, error) {
	const (
		UTPL    = "postgres://%s:%s@%s:%d/%s?pool_min_conns=1&pool_max_conns=4"
		FAIL1   = "configuration error: could not parse the connection url for %s@%s:%d/%s"
		ERRRUN  = `dial error`
		FAILRUN = `the PostgreSQL server cannot be found; check that it is running and serving on port %d`
		ERRSRV  = `server error`
		FAILSRV = `there is a configuration problem; PostgreSQL responded: %s`
	)

	url := fmt.Sprintf(UTPL, pl.User, pl.Pass, pl.Host, pl.Port, pl.DBName)
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, pl.User, pl.Host, pl.Port, pl.DBName)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		switch {
		case strings.Contains(err.Error(), ERRRUN):
			err = fmt.Errorf(FAILRUN+": %w", pl.Port, err)
		case strings.Contains(err.Error(), ERRSRV):
			err = fmt.Errorf(FAILSRV, strings.TrimSpace(strings.SplitN(err.Error(), ERRSRV, 2)[1]))
		}
		return nil, err
	}
	return pool, nil
}

// LoadPG - read documents out of the PostgreSQL store
func LoadPG(ctx context.Context, q Querier, names ...string) ([]*str.Document, error) {
	sq, args, err := docquery(squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar), names).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, sq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*str.Document
	for rows.Next() {
		var n, b string
		if err = rows.Scan(&n, &b); err != nil {
			return nil, err
		}
		d, err := decodebody(n, b)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
