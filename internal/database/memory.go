package database

import (
	"sync"

	"github.com/varejo-labs/vendas-dashboard/internal/models"
)

// PermissionStore is the storage contract the API layer depends on.
// Backed by Postgres when DATABASE_URL is set, by memory otherwise.
type PermissionStore interface {
	GetRLSConfig() (*models.RLSConfig, error)
	ReplaceRLSConfig(config *models.RLSConfig) error
	GetUserPermissions(userID int) (*models.UserPermissions, error)
}

// MemoryStore holds permissions in process memory. Used when no database
// is configured; data does not survive a restart. The mutex exists only
// because HTTP handlers share the store.
type MemoryStore struct {
	mu     sync.RWMutex
	config models.RLSConfig
}

// NewMemoryStore creates an empty in-memory permission store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		config: models.RLSConfig{
			TabPermissions:   []models.TabPermission{},
			StorePermissions: []models.StorePermission{},
		},
	}
}

// GetRLSConfig returns a copy of the stored configuration.
func (s *MemoryStore) GetRLSConfig() (*models.RLSConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	config := models.RLSConfig{
		TabPermissions:   append([]models.TabPermission{}, s.config.TabPermissions...),
		StorePermissions: append([]models.StorePermission{}, s.config.StorePermissions...),
	}
	return &config, nil
}

// ReplaceRLSConfig swaps the whole configuration.
func (s *MemoryStore) ReplaceRLSConfig(config *models.RLSConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config = models.RLSConfig{
		TabPermissions:   append([]models.TabPermission{}, config.TabPermissions...),
		StorePermissions: append([]models.StorePermission{}, config.StorePermissions...),
	}
	return nil
}

// GetUserPermissions resolves one user's permissions with defaults.
func (s *MemoryStore) GetUserPermissions(userID int) (*models.UserPermissions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perms := defaultUserPermissions(userID)
	for _, p := range s.config.TabPermissions {
		if p.UserID == userID {
			perms.Tabs = append([]string{}, p.AllowedTabs...)
			break
		}
	}
	for _, p := range s.config.StorePermissions {
		if p.UserID == userID {
			perms.Stores = models.StoreFilter{
				FilterType:   p.FilterType,
				FilterValues: append([]string{}, p.FilterValues...),
			}
			break
		}
	}
	return perms, nil
}
