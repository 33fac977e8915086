package soldb

import (
	"fmt"
	"os"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/korzhev/idmdgp/enum"
)

const schema = `
CREATE TABLE solutions (
	id           INTEGER PRIMARY KEY,
	fingerprint  TEXT NOT NULL,
	violations   INTEGER NOT NULL,
	err          REAL NOT NULL,
	rmsd_prev    REAL NOT NULL
);
CREATE TABLE positions (
	solution_id  INTEGER NOT NULL REFERENCES solutions(id),
	atom         INTEGER NOT NULL,
	x            REAL NOT NULL,
	y            REAL NOT NULL,
	z            REAL NOT NULL,
	PRIMARY KEY (solution_id, atom)
);
CREATE TABLE counters (
	kind         TEXT PRIMARY KEY,
	tests        INTEGER NOT NULL,
	prunes       INTEGER NOT NULL
);
`

// Write stores the solutions and counters of one enumeration run at path,
// replacing any existing file.
func Write(path string, sols []enum.Solution, stats enum.Stats) error {
	_ = os.Remove(path) // ignore if doesn't exist

	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate, sqlite.OpenReadWrite, sqlite.OpenWAL)
	if err != nil {
		return fmt.Errorf("soldb: open: %w", err)
	}
	defer func() { _ = conn.Close() }()

	for _, pragma := range []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA journal_mode = WAL",
	} {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("soldb: %s: %w", pragma, err)
		}
	}

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("soldb: schema: %w", err)
	}

	endFn, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("soldb: begin tx: %w", err)
	}

	err = insertAll(conn, sols, stats)
	endFn(&err)
	if err != nil {
		return fmt.Errorf("soldb: insert: %w", err)
	}

	return nil
}

func insertAll(conn *sqlite.Conn, sols []enum.Solution, stats enum.Stats) error {
	for i := range sols {
		s := &sols[i]
		err := sqlitex.Execute(conn,
			`INSERT INTO solutions (id, fingerprint, violations, err, rmsd_prev)
			 VALUES (?, ?, ?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []interface{}{
				i + 1, s.Fingerprint(), s.Violations, s.Err, s.RMSDPrev,
			}})
		if err != nil {
			return err
		}
		for atom, p := range s.Positions {
			err := sqlitex.Execute(conn,
				`INSERT INTO positions (solution_id, atom, x, y, z)
				 VALUES (?, ?, ?, ?, ?)`,
				&sqlitex.ExecOptions{Args: []interface{}{
					i + 1, atom, p.X, p.Y, p.Z,
				}})
			if err != nil {
				return err
			}
		}
	}

	counters := []struct {
		kind string
		s    enum.PruneStats
	}{
		{"torsion", stats.Torsion},
		{"improper", stats.Improper},
		{"distance", stats.Distance},
		{"interval", stats.Interval},
	}
	for _, c := range counters {
		err := sqlitex.Execute(conn,
			`INSERT INTO counters (kind, tests, prunes) VALUES (?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []interface{}{
				c.kind, int64(c.s.Tests), int64(c.s.Prunes),
			}})
		if err != nil {
			return err
		}
	}

	return nil
}

// Count returns the number of stored solutions; a convenience for
// consumers and tests.
func Count(path string) (int, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	if err != nil {
		return 0, fmt.Errorf("soldb: open: %w", err)
	}
	defer func() { _ = conn.Close() }()

	var n int
	err = sqlitex.Execute(conn, `SELECT COUNT(*) FROM solutions`, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			n = stmt.ColumnInt(0)

			return nil
		},
	})
	if err != nil {
		return 0, fmt.Errorf("soldb: count: %w", err)
	}

	return n, nil
}
