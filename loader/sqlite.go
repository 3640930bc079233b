package loader

import (
	"context"
	"database/sql"

	"github.com/advdv/labhttp/catalog"
	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS equipment (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	kind TEXT NOT NULL,
	manufacturer TEXT NOT NULL DEFAULT '',
	power_draw_watts REAL NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT '',
	attributes TEXT NOT NULL DEFAULT '{}'
);`

type sqliteSource struct {
	path string
}

func (s *sqliteSource) String() string { return "sqlite://" + s.path }

func (s *sqliteSource) Load(ctx context.Context) ([]*catalog.Equipment, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, &LoadError{Source: s.String(), Message: "open database", Cause: err}
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, name, kind, manufacturer, power_draw_watts, description, attributes
		FROM equipment ORDER BY position, rowid`)
	if err != nil {
		return nil, &LoadError{Source: s.String(), Message: "query equipment", Cause: err}
	}
	defer rows.Close()

	var items []*catalog.Equipment
	for rows.Next() {
		var (
			rec   record
			attrs string
		)

		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Kind, &rec.Manufacturer, &rec.PowerDrawWatts,
			&rec.Description, &attrs); err != nil {
			return nil, &LoadError{Source: s.String(), Message: "scan equipment row", Cause: err}
		}

		if !gjson.Valid(attrs) {
			return nil, &LoadError{Source: s.String(), Message: "invalid attributes of " + rec.ID}
		}

		rec.Attributes = gjson.Parse(attrs)

		e, err := newEquipment(rec)
		if err != nil {
			return nil, &LoadError{Source: s.String(), Message: "invalid row", Cause: err}
		}

		items = append(items, e)
	}

	if err := rows.Err(); err != nil {
		return nil, &LoadError{Source: s.String(), Message: "iterate equipment rows", Cause: err}
	}

	return items, nil
}

// WriteSQLite creates the equipment table in the database at path, if needed, and stores
// items with their slice index as position.
func WriteSQLite(ctx context.Context, path string, items []*catalog.Equipment) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return errors.Wrap(err, "create schema")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback() //nolint:errcheck

	for i, e := range items {
		attrs, err := AttributesJSON(e)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO equipment
			(id, position, name, kind, manufacturer, power_draw_watts, description, attributes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, i, e.Name, string(e.Kind()), e.Manufacturer, e.PowerDrawWatts, e.Description, attrs,
		); err != nil {
			return errors.Wrapf(err, "insert %s", e.ID)
		}
	}

	return errors.Wrap(tx.Commit(), "commit")
}
