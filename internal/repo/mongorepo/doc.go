// Package mongorepo реализует хранилище каталога на MongoDB.
//
// Формат коллекций совместим с исходным приложением: те же имена коллекций,
// поля movieId/categoryId/genreId и мягкое удаление через deleted/deletedAt.
// Порядок выдачи определяется _id (ObjectID растёт со временем вставки).
package mongorepo
