package location

import (
	"sync"
	"time"
)

var (
	mu       sync.RWMutex
	location = time.UTC
)

// Load sets the process-wide display time zone. An empty name keeps UTC.
func Load(name string) (*time.Location, error) {
	if name == "" {
		return Location(), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	mu.Lock()
	location = loc
	mu.Unlock()
	return loc, nil
}

// Location returns the display time zone used for emails and calendar exports.
func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return location
}
