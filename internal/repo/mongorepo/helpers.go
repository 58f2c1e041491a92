package mongorepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/shaiso/glimpse/internal/domain"
	"github.com/shaiso/glimpse/internal/repo"
)

// notDeleted — условие для живых записей. Документы без поля deleted
// считаются живыми.
var notDeleted = bson.E{Key: "deleted", Value: bson.D{{Key: "$ne", Value: true}}}

// live возвращает фильтр живых записей с дополнительными условиями.
func live(conds ...bson.E) bson.D {
	return append(bson.D{notDeleted}, conds...)
}

// byID — фильтр по _id.
func byID(id domain.ID) bson.E {
	return bson.E{Key: "_id", Value: id.ObjectID()}
}

// inIDs — условие field ∈ ids.
func inIDs(field string, ids []domain.ID) bson.E {
	return bson.E{Key: field, Value: bson.D{{Key: "$in", Value: objectIDs(ids)}}}
}

// sortByID — порядок вставки: ObjectID монотонно растёт.
func sortByID() *options.FindOptionsBuilder {
	return options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
}

// findAll выполняет Find и декодирует все документы.
func findAll[D any](ctx context.Context, coll *mongo.Collection, filter bson.D) ([]D, error) {
	cursor, err := coll.Find(ctx, filter, sortByID())
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	var docs []D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return docs, nil
}

// findOne находит один документ; отсутствие — ErrNotFound.
func findOne[D any](ctx context.Context, coll *mongo.Collection, filter bson.D) (*D, error) {
	var doc D
	err := coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find one %s: %w", coll.Name(), err)
	}
	return &doc, nil
}

// updateOne обновляет документ по фильтру и возвращает новую версию.
func updateOne[D any](ctx context.Context, coll *mongo.Collection, filter bson.D, update bson.D) (*D, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc D
	err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", coll.Name(), err)
	}
	return &doc, nil
}

// softDelete помечает живую запись удалённой.
func softDelete(ctx context.Context, coll *mongo.Collection, id domain.ID) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "deleted", Value: true},
		{Key: "deletedAt", Value: time.Now().UTC()},
	}}}
	result, err := coll.UpdateOne(ctx, live(byID(id)), update)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", coll.Name(), err)
	}
	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// restoreUpdate снимает пометку удаления.
func restoreUpdate(extra ...bson.E) bson.D {
	set := append(bson.D{{Key: "deleted", Value: false}}, extra...)
	return bson.D{
		{Key: "$set", Value: set},
		{Key: "$unset", Value: bson.D{{Key: "deletedAt", Value: ""}}},
	}
}

// deletedFilter — удалённая запись с данным ID.
func deletedFilter(id domain.ID) bson.D {
	return bson.D{byID(id), {Key: "deleted", Value: true}}
}

// purge физически удаляет записи, помеченные удалёнными раньше before.
func purge(ctx context.Context, coll *mongo.Collection, before time.Time) ([]domain.ID, error) {
	filter := bson.D{
		{Key: "deleted", Value: true},
		{Key: "deletedAt", Value: bson.D{{Key: "$lt", Value: before}}},
	}

	ids, err := distinctIDs(ctx, coll, filter)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	if _, err := coll.DeleteMany(ctx, bson.D{inIDs("_id", ids)}); err != nil {
		return nil, fmt.Errorf("purge %s: %w", coll.Name(), err)
	}
	return ids, nil
}

// distinctIDs возвращает _id документов, подходящих под фильтр.
func distinctIDs(ctx context.Context, coll *mongo.Collection, filter bson.D) ([]domain.ID, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "_id", Value: 1}}).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find ids in %s: %w", coll.Name(), err)
	}

	var docs []struct {
		ID bson.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode ids from %s: %w", coll.Name(), err)
	}

	ids := make([]domain.ID, len(docs))
	for i, d := range docs {
		ids[i] = domain.IDFromObjectID(d.ID)
	}
	return ids, nil
}
