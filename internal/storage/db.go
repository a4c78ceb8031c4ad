package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"relatorios/internal"
)

// DB owns the process-lifetime sqlite handle. Callers construct it with
// Open and inject it where needed; there is no implicit global connection.
type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS seasonality (
  externalCode TEXT PRIMARY KEY,
  internalCode TEXT NOT NULL,
  clientSpec TEXT NOT NULL,
  unit TEXT,
  jan TEXT, feb TEXT, mar TEXT, apr TEXT, may TEXT, jun TEXT,
  jul TEXT, aug TEXT, sep TEXT, oct TEXT, nov TEXT, dec TEXT,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_seasonality_internalCode ON seasonality(internalCode);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  period TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  warningsJson TEXT NOT NULL,
  timingsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) UpsertSeasonality(rows []internal.SeasonalityRow) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO seasonality (
  externalCode, internalCode, clientSpec, unit,
  jan, feb, mar, apr, may, jun, jul, aug, sep, oct, nov, dec, updatedAt
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(externalCode) DO UPDATE SET
  internalCode=excluded.internalCode,
  clientSpec=excluded.clientSpec,
  unit=excluded.unit,
  jan=excluded.jan, feb=excluded.feb, mar=excluded.mar, apr=excluded.apr,
  may=excluded.may, jun=excluded.jun, jul=excluded.jul, aug=excluded.aug,
  sep=excluded.sep, oct=excluded.oct, nov=excluded.nov, dec=excluded.dec,
  updatedAt=CURRENT_TIMESTAMP
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		args := []any{r.ExternalCode, r.InternalCode, r.ClientSpec, r.Unit}
		for _, m := range r.Months {
			args = append(args, m)
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListSeasonality() ([]internal.SeasonalityRow, error) {
	rows, err := d.conn.Query(`
SELECT externalCode, internalCode, clientSpec, unit,
       jan, feb, mar, apr, may, jun, jul, aug, sep, oct, nov, dec
FROM seasonality ORDER BY internalCode ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.SeasonalityRow
	for rows.Next() {
		var r internal.SeasonalityRow
		dest := []any{&r.ExternalCode, &r.InternalCode, &r.ClientSpec, &r.Unit}
		for i := range r.Months {
			dest = append(dest, &r.Months[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) GetSeasonalityByInternalCode(code string) (*internal.SeasonalityRow, error) {
	var r internal.SeasonalityRow
	dest := []any{&r.ExternalCode, &r.InternalCode, &r.ClientSpec, &r.Unit}
	for i := range r.Months {
		dest = append(dest, &r.Months[i])
	}
	err := d.conn.QueryRow(`
SELECT externalCode, internalCode, clientSpec, unit,
       jan, feb, mar, apr, may, jun, jul, aug, sep, oct, nov, dec
FROM seasonality WHERE internalCode = ?`, code).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (d *DB) InsertRun(traceID, period string, counts map[string]int, warnings []string, timings map[string]float64) error {
	countsJSON, _ := json.Marshal(counts)
	warningsJSON, _ := json.Marshal(warnings)
	timingsJSON, _ := json.Marshal(timings)
	_, err := d.conn.Exec(`INSERT INTO runs (traceId, period, countsJson, warningsJson, timingsJson) VALUES (?, ?, ?, ?, ?)`,
		traceID, period, string(countsJSON), string(warningsJSON), string(timingsJSON))
	return err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
