package store

import (
	"sync"

	"github.com/desertthunder/moviebox/internal/models"
)

// Detail holds at most one movie under inspection. It is never persisted.
type Detail struct {
	mu       sync.RWMutex
	selected *models.Movie
}

// NewDetail creates a closed detail view
func NewDetail() *Detail {
	return &Detail{}
}

// Show selects movie, replacing any previous selection
func (d *Detail) Show(movie models.Movie) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = &movie
}

// Close clears the selection
func (d *Detail) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = nil
}

// Selected returns the inspected movie, if any
func (d *Detail) Selected() (models.Movie, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.selected == nil {
		return models.Movie{}, false
	}
	return *d.selected, true
}
