package profilestore

import (
	"sync"

	"github.com/gamepadhid/core/internal/gamepadhiderr"
	"github.com/gamepadhid/core/pkg/models"
)

// MemoryStore holds Profiles in a mutex-guarded map, seeded with the
// built-in Default profile. Used for tests and for command-surface calls
// before a file-backed Store is wired up.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]models.Profile
	active   string
}

// NewMemoryStore returns a MemoryStore seeded with models.DefaultProfile.
func NewMemoryStore() *MemoryStore {
	def := models.DefaultProfile()
	return &MemoryStore{
		profiles: map[string]models.Profile{def.Name: def},
		active:   def.Name,
	}
}

func (s *MemoryStore) List() ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (s *MemoryStore) Get(name string) (models.Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[name]
	return p, ok, nil
}

func (s *MemoryStore) Save(p models.Profile) error {
	p.ClampTunables()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[p.Name] = p
	return nil
}

func (s *MemoryStore) Delete(name string) error {
	if name == models.DefaultProfileName {
		return gamepadhiderr.New(gamepadhiderr.KindProtectedProfile, "cannot delete the Default profile")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[name]; !ok {
		return gamepadhiderr.New(gamepadhiderr.KindProfileNotFound, "profile not found: "+name)
	}
	delete(s.profiles, name)
	if s.active == name {
		s.active = models.DefaultProfileName
	}
	return nil
}

func (s *MemoryStore) ActiveName() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, nil
}

func (s *MemoryStore) SetActiveName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[name]; !ok {
		return gamepadhiderr.New(gamepadhiderr.KindProfileNotFound, "profile not found: "+name)
	}
	s.active = name
	return nil
}

var _ Store = (*MemoryStore)(nil)
