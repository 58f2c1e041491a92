// Package api реализует HTTP API каталога фильмов.
//
// Endpoints:
//   - /movies              — фильмы с именами категорий и жанров
//   - /categories          — категории (фильтр ?type=) и их фильмы
//   - /genres              — жанры и их фильмы
//   - /movieCategories     — связи фильм ↔ категория
//   - /movieGenres         — связи фильм ↔ жанр
//   - /healthz, /metrics   — служебные
//
// Удаление мягкое: DELETE помечает запись, POST .../restore возвращает её.
// Ответы заворачиваются в {"data": ...}, ошибки в {"error": {"code", "message"}}.
package api
