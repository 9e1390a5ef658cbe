package geocode

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // sqlite driver registration
)

// SQLiteGazetteer reads postcode coordinates from a local sqlite database,
// typically built from a national open postcode file (ONSPD or similar).
// Expected schema:
//
//	CREATE TABLE postcodes (code TEXT PRIMARY KEY, lat REAL, lon REAL);
//
// Codes are stored normalized (see Normalize). Lookups fall back from the
// full code to the outward code, matching StaticGazetteer behavior.
type SQLiteGazetteer struct {
	db *sql.DB
}

// OpenSQLite opens a gazetteer database in read-only mode and verifies the
// postcodes table is queryable.
func OpenSQLite(path string) (*SQLiteGazetteer, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open gazetteer %s: %w", path, err)
	}
	if _, err := db.Exec(`SELECT 1 FROM postcodes LIMIT 1`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("gazetteer %s: postcodes table not readable: %w", path, err)
	}
	return &SQLiteGazetteer{db: db}, nil
}

// Close releases the underlying database handle.
func (g *SQLiteGazetteer) Close() error { return g.db.Close() }

// Geocode implements Geocoder.
func (g *SQLiteGazetteer) Geocode(postcode string) (Coord, bool, error) {
	norm := Normalize(postcode)
	if norm == "" {
		return Coord{}, false, nil
	}

	coord, found, err := g.lookup(norm)
	if err != nil || found {
		return coord, found, err
	}
	if outward := OutwardCode(norm); outward != norm {
		return g.lookup(outward)
	}
	return Coord{}, false, nil
}

func (g *SQLiteGazetteer) lookup(code string) (Coord, bool, error) {
	var c Coord
	err := g.db.QueryRow(`SELECT lat, lon FROM postcodes WHERE code = ?`, code).Scan(&c.Lat, &c.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return Coord{}, false, nil
	}
	if err != nil {
		return Coord{}, false, fmt.Errorf("gazetteer lookup %s: %w", code, err)
	}
	return c, true, nil
}
