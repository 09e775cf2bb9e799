// Package repositories implements SQLite persistence on top of the kv table.
//
// Storage is a plain key-value facility: each key holds one serialized document that is read whole and replaced whole.
//
// Key Implementations:
//   - [KVRepository] : Get/Set/Delete/Keys over string values
//   - [FavoritesRepository] : The favorites list as a JSON array under [FavoritesKey]
//
// Missing keys are not errors. Values that fail to decode surface as [shared.ErrCorruptData] so callers can
// decide to start empty instead of failing.
package repositories
