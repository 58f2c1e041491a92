//go:build integration

package mongorepo

import (
	"context"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/shaiso/glimpse/internal/config"
	"github.com/shaiso/glimpse/internal/repo"
	"github.com/shaiso/glimpse/internal/repo/repotest"
	"github.com/shaiso/glimpse/internal/testinfra"
)

func TestStore_Integration(t *testing.T) {
	testinfra.SkipIfNoDocker(t)
	uri := testinfra.StartMongo(t)
	ctx := context.Background()

	n := 0
	repotest.Run(t, func(t *testing.T) repo.Repos {
		n++
		store, err := Connect(ctx, config.StoreConfig{
			MongoURI:      uri,
			MongoDatabase: fmt.Sprintf("glimpse_test_%d", n),
			MaxConns:      5,
		})
		if err != nil {
			t.Fatalf("Connect: %v", err)
		}
		t.Cleanup(func() { _ = store.Close(context.Background()) })

		if err := store.EnsureIndexes(ctx); err != nil {
			t.Fatalf("EnsureIndexes: %v", err)
		}
		return store.Repos()
	})
}

func TestStore_ReadsLegacyDocuments(t *testing.T) {
	testinfra.SkipIfNoDocker(t)
	ctx := context.Background()

	store, err := Connect(ctx, config.StoreConfig{MongoURI: testinfra.StartMongo(t), MongoDatabase: "legacy"})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer store.Close(ctx)

	// документ без полей deleted/deletedAt считается живым
	movieID := bson.NewObjectID()
	_, err = store.db.Collection(collMovies).InsertOne(ctx, bson.D{
		{Key: "_id", Value: movieID},
		{Key: "title", Value: "Legacy"},
		{Key: "vote_average", Value: 6.1},
	})
	if err != nil {
		t.Fatalf("InsertOne: %v", err)
	}

	movies, err := store.Repos().Movies.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "Legacy" {
		t.Fatalf("unexpected movies: %+v", movies)
	}
	if movies[0].ID.String() != movieID.Hex() {
		t.Errorf("expected id %s, got %s", movieID.Hex(), movies[0].ID)
	}
}
