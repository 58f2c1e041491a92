package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

// --- ID Tests ---

func TestNewID_IsParsable(t *testing.T) {
	id := NewID()

	parsed, err := ParseID(id.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != id {
		t.Errorf("expected %s, got %s", id, parsed)
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{"lowercase", "66964cc3790305aee8aa45bb", "66964cc3790305aee8aa45bb", false},
		{"uppercase normalized", "66964CC3790305AEE8AA45BB", "66964cc3790305aee8aa45bb", false},
		{"too short", "66964cc3", "", true},
		{"not hex", "zzzzzzzzzzzzzzzzzzzzzzzz", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidID) {
					t.Errorf("expected ErrInvalidID, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseIDs_StopsOnInvalid(t *testing.T) {
	_, err := ParseIDs([]string{NewID().String(), "bad"})
	if !errors.Is(err, ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}

	ids, err := ParseIDs([]string{NewID().String(), NewID().String()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 ids, got %d", len(ids))
	}
}

func TestID_ObjectIDRoundTrip(t *testing.T) {
	id := NewID()
	if IDFromObjectID(id.ObjectID()) != id {
		t.Error("ObjectID conversion should round-trip")
	}
	if !ID("bad").ObjectID().IsZero() {
		t.Error("invalid ID should map to zero ObjectID")
	}
}

// --- SoftDelete Tests ---

func TestSoftDelete_MarkAndRestore(t *testing.T) {
	var m Movie
	if m.IsDeleted() {
		t.Fatal("new movie should not be deleted")
	}

	now := time.Now()
	m.MarkDeleted(now)
	if !m.IsDeleted() {
		t.Error("movie should be deleted")
	}
	if m.DeletedAt == nil || !m.DeletedAt.Equal(now) {
		t.Error("DeletedAt should be set")
	}

	m.Restore()
	if m.IsDeleted() || m.DeletedAt != nil {
		t.Error("movie should be restored")
	}
}

// --- Patch Tests ---

func TestMovie_JSONTimestampsAreCamelCase(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	m := Movie{ID: NewID(), Title: "Alien", CreatedAt: now, UpdatedAt: now}
	m.MarkDeleted(now)

	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{`"createdAt"`, `"updatedAt"`, `"deletedAt"`} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("expected key %s in %s", key, raw)
		}
	}
	if strings.Contains(string(raw), "_at") {
		t.Errorf("unexpected snake_case timestamp in %s", raw)
	}
}

func TestMoviePatch_Apply(t *testing.T) {
	m := Movie{Title: "Old", Overview: "keep", VoteAverage: 5}
	title := "New"
	vote := 8.5

	patch := MoviePatch{Title: &title, VoteAverage: &vote}
	if patch.IsEmpty() {
		t.Fatal("patch should not be empty")
	}
	patch.Apply(&m)

	if m.Title != "New" {
		t.Errorf("expected title New, got %s", m.Title)
	}
	if m.Overview != "keep" {
		t.Errorf("overview should be unchanged, got %s", m.Overview)
	}
	if m.VoteAverage != 8.5 {
		t.Errorf("expected vote 8.5, got %v", m.VoteAverage)
	}

	if !(MoviePatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
}

func TestCategoryPatch_Apply(t *testing.T) {
	c := Category{Name: "Trending", Type: "list"}
	name := "Hot"
	CategoryPatch{Name: &name}.Apply(&c)

	if c.Name != "Hot" || c.Type != "list" {
		t.Errorf("unexpected category after patch: %+v", c)
	}
}

// --- Populate Tests ---

func fixture() ([]Movie, []Category, []Genre) {
	movies := []Movie{
		{ID: NewID(), Title: "Alien"},
		{ID: NewID(), Title: "Heat"},
		{ID: NewID(), Title: "Gone", SoftDelete: SoftDelete{Deleted: true}},
	}
	categories := []Category{
		{ID: NewID(), Name: "Trending"},
		{ID: NewID(), Name: "Hidden", SoftDelete: SoftDelete{Deleted: true}},
	}
	genres := []Genre{
		{ID: NewID(), Name: "Horror"},
		{ID: NewID(), Name: "Crime"},
	}
	return movies, categories, genres
}

func TestPopulateCategoryLinks_SkipsDangling(t *testing.T) {
	movies, categories, _ := fixture()
	links := []MovieCategory{
		{ID: NewID(), MovieID: movies[0].ID, CategoryID: categories[0].ID},
		{ID: NewID(), MovieID: movies[2].ID, CategoryID: categories[0].ID}, // удалённый фильм
		{ID: NewID(), MovieID: movies[1].ID, CategoryID: categories[1].ID}, // удалённая категория
		{ID: NewID(), MovieID: NewID(), CategoryID: categories[0].ID},      // фильма нет
		{ID: NewID(), MovieID: movies[1].ID, CategoryID: categories[0].ID},
	}

	got := PopulateCategoryLinks(links, IndexMovies(movies), IndexCategories(categories))

	if len(got) != 2 {
		t.Fatalf("expected 2 links, got %d", len(got))
	}
	if got[0].Movie.Title != "Alien" || got[1].Movie.Title != "Heat" {
		t.Errorf("unexpected order: %s, %s", got[0].Movie.Title, got[1].Movie.Title)
	}
	if got[0].Category.Name != "Trending" {
		t.Errorf("expected Trending, got %s", got[0].Category.Name)
	}
}

func TestPopulateGenreLinks_SkipsDangling(t *testing.T) {
	movies, _, genres := fixture()
	links := []MovieGenre{
		{ID: NewID(), MovieID: movies[0].ID, GenreID: genres[0].ID},
		{ID: NewID(), MovieID: movies[0].ID, GenreID: NewID()},
	}

	got := PopulateGenreLinks(links, IndexMovies(movies), IndexGenres(genres))
	if len(got) != 1 {
		t.Fatalf("expected 1 link, got %d", len(got))
	}
	if got[0].Genre.Name != "Horror" {
		t.Errorf("expected Horror, got %s", got[0].Genre.Name)
	}
}

func TestAttachTaxonomy(t *testing.T) {
	movies, categories, genres := fixture()
	live := movies[:2]

	catLinks := []MovieCategory{
		{MovieID: live[0].ID, CategoryID: categories[0].ID},
		{MovieID: live[0].ID, CategoryID: categories[1].ID}, // удалённая категория
	}
	genreLinks := []MovieGenre{
		{MovieID: live[0].ID, GenreID: genres[0].ID},
		{MovieID: live[0].ID, GenreID: genres[1].ID},
	}

	got := AttachTaxonomy(live, catLinks, IndexCategories(categories), genreLinks, IndexGenres(genres))

	if len(got) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(got))
	}
	if strings.Join(got[0].Categories, ",") != "Trending" {
		t.Errorf("unexpected categories: %v", got[0].Categories)
	}
	if strings.Join(got[0].Genres, ",") != "Horror,Crime" {
		t.Errorf("unexpected genres: %v", got[0].Genres)
	}
	if got[1].Categories == nil || got[1].Genres == nil {
		t.Error("movie without tags should have empty, non-nil slices")
	}
}

func TestCategoryLinkIDs_Unique(t *testing.T) {
	m1, m2, c1 := NewID(), NewID(), NewID()
	links := []MovieCategory{
		{MovieID: m1, CategoryID: c1},
		{MovieID: m2, CategoryID: c1},
		{MovieID: m1, CategoryID: c1},
	}

	movieIDs, categoryIDs := CategoryLinkIDs(links)
	if len(movieIDs) != 2 || movieIDs[0] != m1 || movieIDs[1] != m2 {
		t.Errorf("unexpected movie ids: %v", movieIDs)
	}
	if len(categoryIDs) != 1 || categoryIDs[0] != c1 {
		t.Errorf("unexpected category ids: %v", categoryIDs)
	}
}

func TestUniqueIDs(t *testing.T) {
	a, b := NewID(), NewID()
	got := UniqueIDs([]ID{a, b, a, b, a})
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("unexpected ids: %v", got)
	}
}
