package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/sadopc/sprout/internal/events"
)

// Document keys.
const (
	KeyUser             = "user"
	KeyGarden           = "userGarden"
	KeyHistory          = "analysisHistory"
	KeyDashboardWeather = "dashboardWeather"
	KeySpaceAnalysis    = "spaceAnalysisHistory"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrVersionConflict = errors.New("document version changed")
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

// Load returns the raw JSON stored under key. found is false when the key
// is absent.
func (s *Store) Load(key string) (json.RawMessage, bool, error) {
	return load(s.db, key)
}

func load(q querier, key string) (json.RawMessage, bool, error) {
	var value string
	err := q.QueryRow(`SELECT value FROM documents WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %q: %w", key, err)
	}
	return json.RawMessage(value), true, nil
}

// Save stores v as JSON under key, replacing any previous value.
func (s *Store) Save(key string, v any) error {
	return save(s.db, key, v)
}

func save(q querier, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}
	_, err = q.Exec(
		`INSERT INTO documents (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			version = documents.version + 1,
			updated_at = strftime('%Y-%m-%dT%H:%M:%SZ','now')`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

// Version returns the write counter of key, or 0 when absent.
func (s *Store) Version(key string) (int64, error) {
	var v int64
	err := s.db.QueryRow(`SELECT version FROM documents WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("version %q: %w", key, err)
	}
	return v, nil
}

// SaveIfVersion stores v only when key is still at version expected (0 for
// absent). It returns ErrVersionConflict otherwise.
func (s *Store) SaveIfVersion(key string, v any, expected int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var current int64
	err = tx.QueryRow(`SELECT version FROM documents WHERE key = ?`, key).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("version %q: %w", key, err)
	}
	if current != expected {
		return fmt.Errorf("save %q at version %d, found %d: %w", key, expected, current, ErrVersionConflict)
	}
	if err := save(tx, key, v); err != nil {
		return err
	}
	return tx.Commit()
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Store) Remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM documents WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// ClearAll removes every document in one transaction. Settings are kept.
func (s *Store) ClearAll() error {
	keys, err := s.keys()
	if err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM documents`); err != nil {
		return fmt.Errorf("clear documents: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	s.logger.Debug("documents cleared", "keys", keys)

	s.publish(events.HistoryChanged, nil)
	s.publish(events.GardenChanged, nil)
	return nil
}

// keys lists the stored document keys in order.
func (s *Store) keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM documents ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// LoadInto decodes key into dst. A missing key returns false with dst
// untouched. Undecodable JSON is logged, dst is reset to its zero value and
// false is returned without an error.
func (s *Store) LoadInto(key string, dst any) (bool, error) {
	return s.loadInto(s.db, key, dst)
}

func (s *Store) loadInto(q querier, key string, dst any) (bool, error) {
	raw, found, err := load(q, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Warn("discarding corrupt document",
			"key", key,
			"error", err,
		)
		v := reflect.ValueOf(dst).Elem()
		v.Set(reflect.Zero(v.Type()))
		return false, nil
	}
	return true, nil
}

// update runs a read-modify-write of key inside a transaction. fn receives
// whether a decodable value was loaded into dst and returns the value to
// save.
func (s *Store) update(key string, dst any, fn func(found bool) (any, error)) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	found, err := s.loadInto(tx, key, dst)
	if err != nil {
		return err
	}
	v, err := fn(found)
	if err != nil {
		return err
	}
	if err := save(tx, key, v); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %q: %w", key, err)
	}
	return nil
}
