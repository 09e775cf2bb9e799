// Package store holds the application state shared by the terminal and web views.
//
// # Catalog
//
// [Catalog] is the list of movies on display and the query that produced it. It is replaced wholesale on every
// successful fetch, in the order the Movie API returned it. Failed fetches are logged and leave it untouched.
//
// Every fetch takes a generation number when it starts. When it completes, its result is applied only if no
// newer fetch has started in the meantime; otherwise it is dropped with [ErrStaleResponse]. The most recently
// issued request therefore always determines what is shown, regardless of arrival order.
//
// # Favorites
//
// [Favorites] is the user's saved list, loaded once at startup through a [FavoritesRepository] and written back
// in full after every change. Adding a movie that is already present appends a second entry; removing by id
// drops all of them.
//
// # Detail
//
// [Detail] is the single movie shown in the details modal.
package store
