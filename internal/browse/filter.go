package browse

import "strings"

// FilterMovies возвращает фильмы, в названии которых есть query
// без учёта регистра. Пустой query возвращает movies как есть.
func FilterMovies(movies []Movie, query string) []Movie {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return movies
	}

	var out []Movie
	for _, m := range movies {
		if strings.Contains(strings.ToLower(m.Title), query) {
			out = append(out, m)
		}
	}
	return out
}

// FilterFavorites — то же для избранного.
func FilterFavorites(favorites []Favorite, query string) []Favorite {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return favorites
	}

	var out []Favorite
	for _, f := range favorites {
		if strings.Contains(strings.ToLower(f.Title), query) {
			out = append(out, f)
		}
	}
	return out
}
