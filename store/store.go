package store

import (
	"fmt"
	"time"

	"github.com/classtrack/classtrack/internal/profile"
	"github.com/classtrack/classtrack/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// Cache settings
	cacheConfig cache.Config

	// Caches. Teachers and subjects are read on every guarded schedule
	// mutation, so both are kept hot.
	userCache    *cache.Cache
	teacherCache *cache.Cache
	subjectCache *cache.Cache
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	cacheConfig := cache.Config{
		DefaultTTL:      10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        1000,
	}

	return &Store{
		driver:       driver,
		profile:      profile,
		cacheConfig:  cacheConfig,
		userCache:    cache.New(cacheConfig),
		teacherCache: cache.New(cacheConfig),
		subjectCache: cache.New(cacheConfig),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	s.userCache.Close()
	s.teacherCache.Close()
	s.subjectCache.Close()

	return s.driver.Close()
}

func userCacheKey(id int32) string {
	return fmt.Sprintf("user:%d", id)
}

func teacherCacheKey(id int32) string {
	return fmt.Sprintf("teacher:%d", id)
}

func subjectCacheKey(id int32) string {
	return fmt.Sprintf("subject:%d", id)
}
