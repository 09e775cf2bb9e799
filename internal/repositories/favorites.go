package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/moviebox/internal/models"
	"github.com/desertthunder/moviebox/internal/shared"
)

// FavoritesKey is the storage key holding the serialized favorites list.
const FavoritesKey = "favorites"

// FavoritesRepository persists the favorites list as a single JSON document.
//
// Reads and writes are whole-list: [FavoritesRepository.Save] replaces whatever was stored.
type FavoritesRepository struct {
	kv  *KVRepository
	key string
}

// NewFavoritesRepository creates a FavoritesRepository stored under [FavoritesKey]
func NewFavoritesRepository(kv *KVRepository) *FavoritesRepository {
	return &FavoritesRepository{kv: kv, key: FavoritesKey}
}

// Load returns the stored favorites in insertion order.
//
// A key that was never written yields an empty list. A value that is not a JSON array of movies
// yields [shared.ErrCorruptData].
func (r *FavoritesRepository) Load(ctx context.Context) ([]models.Movie, error) {
	raw, ok, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var movies []models.Movie
	if err := json.Unmarshal([]byte(raw), &movies); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", shared.ErrCorruptData, r.key, err)
	}
	return movies, nil
}

// Save replaces the stored favorites with movies
func (r *FavoritesRepository) Save(ctx context.Context, movies []models.Movie) error {
	if movies == nil {
		movies = []models.Movie{}
	}

	data, err := shared.MarshalJSON(movies, false)
	if err != nil {
		return fmt.Errorf("%w: failed to encode favorites: %w", shared.ErrStorageWrite, err)
	}
	return r.kv.Set(ctx, r.key, string(data))
}
