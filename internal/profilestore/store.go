// Package profilestore persists Profiles, the named tunable/remap sets the
// command surface lists, saves, and activates.
package profilestore

import "github.com/gamepadhid/core/pkg/models"

// Store is the persistence contract the Manager drives for get_profiles,
// save_profile, delete_profile, and set_active_profile.
type Store interface {
	List() ([]models.Profile, error)
	Get(name string) (models.Profile, bool, error)
	Save(p models.Profile) error
	Delete(name string) error
	ActiveName() (string, error)
	SetActiveName(name string) error
}
