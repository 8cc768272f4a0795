package garden

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

const storeFile = "garden.json"

// Store owns the durable mapping of user id to garden. All mutation flows
// through mutate, which holds the store lock across "change in memory, then
// persist", so a care action and the decay sweep never interleave.
type Store struct {
	mu      sync.RWMutex
	path    string
	log     zerolog.Logger
	gardens map[string]*UserGarden
}

// Open loads the store from dataDir, creating the directory if needed.
// A corrupt store file is logged and replaced with an empty store rather
// than failing startup.
func Open(dataDir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	s := &Store{
		path:    filepath.Join(dataDir, storeFile),
		log:     log,
		gardens: map[string]*UserGarden{},
	}
	s.load()
	return s, nil
}

func (s *Store) load() {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error().Err(err).Str("path", s.path).Msg("failed to read garden store")
		}
		return
	}

	loaded := map[string]*UserGarden{}
	if err := json.Unmarshal(b, &loaded); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("garden store is corrupt, starting empty")
		return
	}
	for id, g := range loaded {
		if g == nil {
			delete(loaded, id)
			continue
		}
		normalizeGarden(g)
	}
	s.gardens = loaded
	s.log.Info().Int("users", len(loaded)).Msg("garden store loaded")
}

// persistLocked rewrites the whole store through a temp file and rename, so
// a crash mid-write cannot corrupt the previous snapshot. Write failures are
// logged, not propagated: in-memory state runs ahead of disk until the next
// successful save.
func (s *Store) persistLocked() {
	b, err := json.MarshalIndent(s.gardens, "", "  ")
	if err != nil {
		s.log.Error().Err(err).Msg("failed to encode garden store")
		return
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		s.log.Error().Err(err).Str("path", tmp).Msg("failed to write garden store")
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("failed to replace garden store")
	}
}

func (s *Store) gardenLocked(userID string) *UserGarden {
	g, ok := s.gardens[userID]
	if !ok {
		g = newUserGarden()
		s.gardens[userID] = g
		s.persistLocked()
	}
	return g
}

// EnsureUser creates the default garden on first contact. Idempotent; it
// persists only when a garden is actually created.
func (s *Store) EnsureUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gardenLocked(userID)
}

// Garden returns a deep copy of the user's garden, creating the default
// garden first if this is the user's first interaction.
func (s *Store) Garden(userID string) *UserGarden {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneGarden(s.gardenLocked(userID))
}

// mutate runs fn against the live garden under the store lock and persists
// when fn succeeds. fn must not touch the garden on its error paths.
func (s *Store) mutate(userID string, fn func(g *UserGarden) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.gardenLocked(userID)
	if err := fn(g); err != nil {
		return err
	}
	s.persistLocked()
	return nil
}

// sweep runs fn over every garden and persists once afterwards.
func (s *Store) sweep(fn func(userID string, g *UserGarden)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, g := range s.gardens {
		fn(id, g)
	}
	s.persistLocked()
}

// Snapshot returns a deep copy of every garden keyed by user id.
func (s *Store) Snapshot() map[string]*UserGarden {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*UserGarden, len(s.gardens))
	for id, g := range s.gardens {
		out[id] = cloneGarden(g)
	}
	return out
}
