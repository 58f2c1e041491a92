package mongorepo

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/shaiso/glimpse/internal/domain"
)

// Документы хранятся в формате исходного приложения:
// camelCase поля связей, createdAt/updatedAt, флаг deleted и время deletedAt.

type movieDoc struct {
	ID               bson.ObjectID `bson:"_id"`
	Title            string        `bson:"title"`
	Overview         string        `bson:"overview"`
	PosterPath       string        `bson:"poster_path"`
	OriginalLanguage string        `bson:"original_language"`
	VoteAverage      float64       `bson:"vote_average"`
	CreatedAt        time.Time     `bson:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt"`
	Deleted          bool          `bson:"deleted"`
	DeletedAt        *time.Time    `bson:"deletedAt,omitempty"`
}

func movieToDoc(m *domain.Movie) movieDoc {
	return movieDoc{
		ID:               m.ID.ObjectID(),
		Title:            m.Title,
		Overview:         m.Overview,
		PosterPath:       m.PosterPath,
		OriginalLanguage: m.OriginalLanguage,
		VoteAverage:      m.VoteAverage,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func (d movieDoc) toDomain() domain.Movie {
	return domain.Movie{
		ID:               domain.IDFromObjectID(d.ID),
		Title:            d.Title,
		Overview:         d.Overview,
		PosterPath:       d.PosterPath,
		OriginalLanguage: d.OriginalLanguage,
		VoteAverage:      d.VoteAverage,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
		SoftDelete:       domain.SoftDelete{Deleted: d.Deleted, DeletedAt: d.DeletedAt},
	}
}

type categoryDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	Name      string        `bson:"name"`
	Type      string        `bson:"type,omitempty"`
	Deleted   bool          `bson:"deleted"`
	DeletedAt *time.Time    `bson:"deletedAt,omitempty"`
}

func (d categoryDoc) toDomain() domain.Category {
	return domain.Category{
		ID:         domain.IDFromObjectID(d.ID),
		Name:       d.Name,
		Type:       d.Type,
		SoftDelete: domain.SoftDelete{Deleted: d.Deleted, DeletedAt: d.DeletedAt},
	}
}

type genreDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	Name      string        `bson:"name"`
	Deleted   bool          `bson:"deleted"`
	DeletedAt *time.Time    `bson:"deletedAt,omitempty"`
}

func (d genreDoc) toDomain() domain.Genre {
	return domain.Genre{
		ID:         domain.IDFromObjectID(d.ID),
		Name:       d.Name,
		SoftDelete: domain.SoftDelete{Deleted: d.Deleted, DeletedAt: d.DeletedAt},
	}
}

type movieCategoryDoc struct {
	ID         bson.ObjectID `bson:"_id"`
	MovieID    bson.ObjectID `bson:"movieId"`
	CategoryID bson.ObjectID `bson:"categoryId"`
	Deleted    bool          `bson:"deleted"`
	DeletedAt  *time.Time    `bson:"deletedAt,omitempty"`
}

func (d movieCategoryDoc) toDomain() domain.MovieCategory {
	return domain.MovieCategory{
		ID:         domain.IDFromObjectID(d.ID),
		MovieID:    domain.IDFromObjectID(d.MovieID),
		CategoryID: domain.IDFromObjectID(d.CategoryID),
		SoftDelete: domain.SoftDelete{Deleted: d.Deleted, DeletedAt: d.DeletedAt},
	}
}

type movieGenreDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	MovieID   bson.ObjectID `bson:"movieId"`
	GenreID   bson.ObjectID `bson:"genreId"`
	Deleted   bool          `bson:"deleted"`
	DeletedAt *time.Time    `bson:"deletedAt,omitempty"`
}

func (d movieGenreDoc) toDomain() domain.MovieGenre {
	return domain.MovieGenre{
		ID:         domain.IDFromObjectID(d.ID),
		MovieID:    domain.IDFromObjectID(d.MovieID),
		GenreID:    domain.IDFromObjectID(d.GenreID),
		SoftDelete: domain.SoftDelete{Deleted: d.Deleted, DeletedAt: d.DeletedAt},
	}
}

func objectIDs(ids []domain.ID) []bson.ObjectID {
	out := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.ObjectID())
	}
	return out
}
