// Package repo описывает контракты хранилища каталога.
//
// Структура:
//   - repo.go     — интерфейсы репозиториев (фильмы, категории, жанры, связи)
//   - errors.go   — общие ошибки (ErrNotFound, ErrInvalidID)
//   - mongorepo/  — основной backend на документном хранилище (MongoDB)
//   - pgrepo/     — альтернативный backend на PostgreSQL
//   - memrepo/    — хранилище в памяти для тестов и локального запуска
//   - repotest/   — общий набор проверок для всех backend-ов
//
// Все выборки по умолчанию исключают записи, помеченные удалёнными.
// Delete — мягкое удаление, Purge — физическое.
package repo
