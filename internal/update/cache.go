package update

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
)

const cacheDuration = 10 * time.Minute

// CacheEntry stores the last update-check result for one component, so
// status output can surface a pending update without refetching the feed.
type CacheEntry struct {
	CheckedAt       time.Time `json:"checked_at"`
	Component       string    `json:"component"`
	RemoteVersion   string    `json:"remote_version"`
	UpdateAvailable bool      `json:"update_available"`
}

// CachePath derives a stable per-feed file name inside stateDir.
func CachePath(stateDir, releaseURL string) string {
	return filepath.Join(stateDir, fmt.Sprintf("check-%x.json", xxhash.Sum64String(releaseURL)))
}

// LoadCache loads the cached check result for a feed.
func LoadCache(stateDir, releaseURL string) (*CacheEntry, error) {
	data, err := os.ReadFile(CachePath(stateDir, releaseURL))
	if err != nil {
		return nil, err
	}
	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// SaveCache persists the check result, creating stateDir if needed.
func SaveCache(stateDir, releaseURL string, entry *CacheEntry) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(CachePath(stateDir, releaseURL), data, 0o644)
}

// IsCacheValid returns true if the entry is fresh.
func IsCacheValid(entry *CacheEntry) bool {
	return time.Since(entry.CheckedAt) < cacheDuration
}
