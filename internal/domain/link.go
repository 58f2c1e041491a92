package domain

// MovieCategory — join-запись, связывающая фильм и категорию.
type MovieCategory struct {
	ID         ID `json:"id"`
	MovieID    ID `json:"movie_id"`
	CategoryID ID `json:"category_id"`

	SoftDelete
}

// MovieGenre — join-запись, связывающая фильм и жанр.
type MovieGenre struct {
	ID      ID `json:"id"`
	MovieID ID `json:"movie_id"`
	GenreID ID `json:"genre_id"`

	SoftDelete
}

// MovieCategoryLink — MovieCategory с подставленными записями.
//
// Связь считается висячей, если одна из сторон отсутствует или удалена;
// такие связи не попадают в выдачу.
type MovieCategoryLink struct {
	ID       ID
	Movie    *Movie
	Category *Category
}

// MovieGenreLink — MovieGenre с подставленными записями.
type MovieGenreLink struct {
	ID    ID
	Movie *Movie
	Genre *Genre
}

// PopulateCategoryLinks подставляет фильмы и категории в join-записи.
// Висячие связи пропускаются. Порядок links сохраняется.
func PopulateCategoryLinks(links []MovieCategory, movies map[ID]*Movie, categories map[ID]*Category) []MovieCategoryLink {
	result := make([]MovieCategoryLink, 0, len(links))
	for _, l := range links {
		m, ok := movies[l.MovieID]
		if !ok || m.IsDeleted() {
			continue
		}
		c, ok := categories[l.CategoryID]
		if !ok || c.IsDeleted() {
			continue
		}
		result = append(result, MovieCategoryLink{ID: l.ID, Movie: m, Category: c})
	}
	return result
}

// PopulateGenreLinks подставляет фильмы и жанры в join-записи.
// Висячие связи пропускаются. Порядок links сохраняется.
func PopulateGenreLinks(links []MovieGenre, movies map[ID]*Movie, genres map[ID]*Genre) []MovieGenreLink {
	result := make([]MovieGenreLink, 0, len(links))
	for _, l := range links {
		m, ok := movies[l.MovieID]
		if !ok || m.IsDeleted() {
			continue
		}
		g, ok := genres[l.GenreID]
		if !ok || g.IsDeleted() {
			continue
		}
		result = append(result, MovieGenreLink{ID: l.ID, Movie: m, Genre: g})
	}
	return result
}

// AttachTaxonomy собирает MovieDetails: имена категорий и жанров каждого фильма.
// Висячие связи игнорируются. Для фильма без тегов возвращаются пустые
// (не nil) срезы, чтобы JSON содержал [] вместо null.
func AttachTaxonomy(movies []Movie, catLinks []MovieCategory, categories map[ID]*Category, genreLinks []MovieGenre, genres map[ID]*Genre) []MovieDetails {
	catNames := make(map[ID][]string, len(movies))
	for _, l := range catLinks {
		if c, ok := categories[l.CategoryID]; ok && !c.IsDeleted() {
			catNames[l.MovieID] = append(catNames[l.MovieID], c.Name)
		}
	}

	genreNames := make(map[ID][]string, len(movies))
	for _, l := range genreLinks {
		if g, ok := genres[l.GenreID]; ok && !g.IsDeleted() {
			genreNames[l.MovieID] = append(genreNames[l.MovieID], g.Name)
		}
	}

	result := make([]MovieDetails, len(movies))
	for i, m := range movies {
		cats := catNames[m.ID]
		if cats == nil {
			cats = []string{}
		}
		gens := genreNames[m.ID]
		if gens == nil {
			gens = []string{}
		}
		result[i] = MovieDetails{Movie: m, Categories: cats, Genres: gens}
	}
	return result
}

// IndexMovies строит индекс фильмов по ID.
func IndexMovies(movies []Movie) map[ID]*Movie {
	idx := make(map[ID]*Movie, len(movies))
	for i := range movies {
		idx[movies[i].ID] = &movies[i]
	}
	return idx
}

// IndexCategories строит индекс категорий по ID.
func IndexCategories(categories []Category) map[ID]*Category {
	idx := make(map[ID]*Category, len(categories))
	for i := range categories {
		idx[categories[i].ID] = &categories[i]
	}
	return idx
}

// IndexGenres строит индекс жанров по ID.
func IndexGenres(genres []Genre) map[ID]*Genre {
	idx := make(map[ID]*Genre, len(genres))
	for i := range genres {
		idx[genres[i].ID] = &genres[i]
	}
	return idx
}

// CategoryLinkIDs возвращает уникальные ID фильмов и категорий из join-записей.
func CategoryLinkIDs(links []MovieCategory) (movieIDs, categoryIDs []ID) {
	movieIDs = uniqueIDs(links, func(l MovieCategory) ID { return l.MovieID })
	categoryIDs = uniqueIDs(links, func(l MovieCategory) ID { return l.CategoryID })
	return movieIDs, categoryIDs
}

// GenreLinkIDs возвращает уникальные ID фильмов и жанров из join-записей.
func GenreLinkIDs(links []MovieGenre) (movieIDs, genreIDs []ID) {
	movieIDs = uniqueIDs(links, func(l MovieGenre) ID { return l.MovieID })
	genreIDs = uniqueIDs(links, func(l MovieGenre) ID { return l.GenreID })
	return movieIDs, genreIDs
}

// UniqueIDs убирает повторы, сохраняя порядок.
func UniqueIDs(ids []ID) []ID {
	return uniqueIDs(ids, func(id ID) ID { return id })
}

// uniqueIDs собирает уникальные ID в порядке появления.
func uniqueIDs[T any](items []T, key func(T) ID) []ID {
	seen := make(map[ID]struct{}, len(items))
	ids := make([]ID, 0, len(items))
	for _, it := range items {
		id := key(it)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
