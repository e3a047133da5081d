// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"fmt"

	"github.com/tomtom215/reelmatch/internal/models"
)

// GenreTable maps catalog genre ids to names. A table is never modified after
// it is built; a refresh replaces it, so concurrent lookups need no locking.
type GenreTable map[int]string

// GenreLister fetches the catalog's genre list.
type GenreLister interface {
	GenreList(ctx context.Context) ([]Genre, error)
}

// LoadGenreTable fetches the genre list once. Callers treat an error as fatal.
func LoadGenreTable(ctx context.Context, lister GenreLister) (GenreTable, error) {
	genres, err := lister.GenreList(ctx)
	if err != nil {
		return nil, fmt.Errorf("load genre table: %w", err)
	}
	if len(genres) == 0 {
		return nil, models.NewParseError(ServiceName, "genre list is empty", nil)
	}

	table := make(GenreTable, len(genres))
	for _, g := range genres {
		table[g.ID] = g.Name
	}
	return table, nil
}

// MapGenres returns the names for ids in input order. Unknown ids are omitted.
func MapGenres(ids []int, table GenreTable) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := table[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// ApplyGenres replaces rec's genre ids with names and clears the ids.
func ApplyGenres(rec *models.MovieRecord, table GenreTable) {
	rec.Genres = MapGenres(rec.GenreIDs, table)
	rec.GenreIDs = nil
}
