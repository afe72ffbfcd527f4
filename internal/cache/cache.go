package cache

import (
	"time"

	"github.com/patrickmn/go-cache"

	"portfolio/internal/models"
)

const collectionPrefix = "collection:"

// Manager keeps loaded article collections resident for the session lifetime
type Manager struct {
	cache *cache.Cache
}

func NewManager(sessionTTL time.Duration) *Manager {
	return &Manager{
		cache: cache.New(sessionTTL, 10*time.Minute),
	}
}

// Collection returns the resident collection loaded from source
func (m *Manager) Collection(source string) (*models.Collection, bool) {
	cached, found := m.cache.Get(collectionPrefix + source)
	if !found {
		return nil, false
	}
	collection, ok := cached.(*models.Collection)
	return collection, ok
}

// SetCollection stores collection with the default session TTL
func (m *Manager) SetCollection(source string, collection *models.Collection) {
	m.cache.SetDefault(collectionPrefix+source, collection)
}

// Expires returns when the collection for source leaves the cache
func (m *Manager) Expires(source string) (time.Time, bool) {
	_, expiration, found := m.cache.GetWithExpiration(collectionPrefix + source)
	return expiration, found
}
