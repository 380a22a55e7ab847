// Package cache memoizes rows.Load results in a SQLite database, keyed by
// a fingerprint of the three source files' paths, sizes and modification
// times, so repeated plan calls against an unchanged term's sheet skip
// re-parsing CSV. Grounded on the teacher's evaluation.go, which is the
// only place in the pack that opens a database/sql handle against
// github.com/mattn/go-sqlite3; concurrent rebuild coalescing uses
// golang.org/x/sync/singleflight, the same module family the teacher's
// row loader already pulls in for errgroup.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/sync/singleflight"

	"github.com/nomadstar/classplanner/internal/rows"
)

// Store is a SQLite-backed cache of rows.Documents, keyed by a fingerprint
// of the backing files. A zero-value Store with Enabled false always
// delegates straight to rows.Load.
type Store struct {
	Enabled bool

	mu    sync.Mutex
	db    *sql.DB
	group singleflight.Group
}

// Open opens (creating if absent) the SQLite database at path and ensures
// the cache table exists. Pass enabled=false to build a Store that never
// touches disk, for the cache-disable feature flag.
func Open(path string, enabled bool) (*Store, error) {
	if !enabled {
		return &Store{Enabled: false}, nil
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db %s: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS documents_cache (
		fingerprint TEXT PRIMARY KEY,
		payload     BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache table: %w", err)
	}
	return &Store{Enabled: true, db: db}, nil
}

// Close releases the underlying database handle, if one was opened.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the cached Documents for files if present and the
// fingerprint still matches, otherwise loads via rows.Load, stores the
// result and returns it. Concurrent calls for the same fingerprint are
// coalesced into a single rows.Load call.
func (s *Store) Load(ctx context.Context, files rows.SheetFiles) (rows.Documents, error) {
	if !s.Enabled {
		return rows.Load(ctx, files)
	}

	fp, err := fingerprint(files)
	if err != nil {
		return rows.Load(ctx, files)
	}

	if docs, ok := s.get(fp); ok {
		return docs, nil
	}

	v, err, _ := s.group.Do(fp, func() (interface{}, error) {
		docs, err := rows.Load(ctx, files)
		if err != nil {
			return rows.Documents{}, err
		}
		s.put(fp, docs)
		return docs, nil
	})
	if err != nil {
		return rows.Documents{}, err
	}
	return v.(rows.Documents), nil
}

func (s *Store) get(fp string) (rows.Documents, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM documents_cache WHERE fingerprint = ?`, fp).Scan(&payload)
	if err != nil {
		return rows.Documents{}, false
	}
	var docs rows.Documents
	if err := json.Unmarshal(payload, &docs); err != nil {
		return rows.Documents{}, false
	}
	return docs, true
}

func (s *Store) put(fp string, docs rows.Documents) {
	payload, err := json.Marshal(docs)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.db.Exec(`INSERT OR REPLACE INTO documents_cache (fingerprint, payload) VALUES (?, ?)`, fp, payload)
}

// fingerprint hashes each file's path, size and modification time, so any
// edit to any of the three source files invalidates the cached entry.
func fingerprint(files rows.SheetFiles) (string, error) {
	h := sha256.New()
	for _, p := range []string{files.CurriculumPath, files.OfferingPath, files.DifficultyPath} {
		info, err := os.Stat(p)
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", p, err)
		}
		fmt.Fprintf(h, "%s|%d|%d\n", p, info.Size(), info.ModTime().UnixNano())
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
