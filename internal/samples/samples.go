package samples

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Store gives read-only access to example datasets kept in SQLite files
type Store struct {
	databases map[string]*sql.DB
	index     map[string]string // sample name -> database name
	mu        sync.RWMutex
}

// Sample is one example paste shipped with the application
type Sample struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Data        string `json:"data,omitempty"`
}

// NewStore scans the given directories for .sqlite files holding a samples table
func NewStore(dirs ...string) (*Store, error) {
	store := &Store{
		databases: make(map[string]*sql.DB),
		index:     make(map[string]string),
	}

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Printf("Warning: failed to read directory %s: %v", dir, err)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sqlite") {
				continue
			}

			name := strings.TrimSuffix(entry.Name(), ".sqlite")
			if _, exists := store.databases[name]; exists {
				continue
			}

			dbPath := filepath.Join(dir, entry.Name())

			db, err := sql.Open("sqlite3", dbPath+"?mode=ro")
			if err != nil {
				log.Printf("Warning: Failed to open samples %s: %v", name, err)
				continue
			}

			var count int
			err = db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type IN ('table','view') AND name='samples'").Scan(&count)
			if err != nil || count == 0 {
				log.Printf("Warning: %s is not a valid samples file", name)
				db.Close()
				continue
			}

			if err := store.indexDatabase(name, db); err != nil {
				log.Printf("Warning: Failed to index samples %s: %v", name, err)
				db.Close()
				continue
			}

			store.databases[name] = db
			log.Printf("Loaded samples: %s (%s)", name, dbPath)
		}
	}

	if len(store.databases) == 0 {
		return store, fmt.Errorf("no valid .sqlite sample files found")
	}

	return store, nil
}

// indexDatabase records which database serves each sample; first one wins
func (s *Store) indexDatabase(dbName string, db *sql.DB) error {
	rows, err := db.Query("SELECT name FROM samples")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		if _, exists := s.index[name]; !exists {
			s.index[name] = dbName
		}
	}
	return rows.Err()
}

// List returns every sample without its data, sorted by name
func (s *Store) List() []Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Sample, 0, len(s.index))
	for name, dbName := range s.index {
		var description string
		err := s.databases[dbName].QueryRow(
			"SELECT coalesce(description, '') FROM samples WHERE name = ?", name,
		).Scan(&description)
		if err != nil {
			log.Printf("Warning: failed to read sample %s: %v", name, err)
			continue
		}
		list = append(list, Sample{Name: name, Description: description, Source: dbName})
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

// Get retrieves a single sample including its tab-separated data
func (s *Store) Get(name string) (*Sample, error) {
	s.mu.RLock()
	dbName, ok := s.index[name]
	var db *sql.DB
	if ok {
		db = s.databases[dbName]
	}
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown sample: %s", name)
	}

	sample := &Sample{Name: name, Source: dbName}
	err := db.QueryRow(
		"SELECT coalesce(description, ''), data FROM samples WHERE name = ?", name,
	).Scan(&sample.Description, &sample.Data)
	if err != nil {
		return nil, fmt.Errorf("sample not found: %s: %w", name, err)
	}

	return sample, nil
}

// Count returns the number of distinct samples
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.index)
}

// Close closes all open database connections
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, db := range s.databases {
		if err := db.Close(); err != nil {
			log.Printf("Error closing samples %s: %v", name, err)
		}
	}
}
