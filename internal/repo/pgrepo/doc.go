// Package pgrepo реализует хранилище каталога на PostgreSQL (pgx).
//
// Схема создаётся при старте из встроенного schema.sql (EnsureSchema).
// Идентификаторы хранятся как TEXT в том же формате, что и в mongorepo,
// поэтому данные переносимы между backend-ами.
package pgrepo
