// Package browse — терминальный браузер каталога.
//
// Состояние меняется только через чистую функцию Reduce. Loader загружает
// все фильмы и четыре списка категорий (Discover, Trending, Top Rated,
// Upcoming) параллельно и возвращает действия, которые модель применяет
// целиком или не применяет вовсе. Избранное и имя пользователя хранятся
// в JSON-файле (FavoritesStore) и записываются после каждого изменения.
//
//	loader := browse.NewLoader(client, browse.CategoryIDs{})
//	store, _ := browse.NewFavoritesStore("")
//	err := browse.Run(ctx, loader, store)
package browse
