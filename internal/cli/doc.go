// Package cli реализует команды утилиты glimpse.
//
// CLI работает с каталогом только через HTTP API (пакет apiclient).
// Группы команд:
//   - movie: list, show, create, update, delete, restore
//   - category: list, show, create, update, delete, restore, movies, link
//   - genre: list, show, create, rename, delete, restore, movies, link
//   - link: categories, genres
//   - browse: интерактивный браузер (пакет browse)
//
// Каждая группа создаётся фабрикой (NewMovieCmd и т.д.), принимающей
// clientFn и outputFn: клиент и Output создаются лениво, после разбора
// глобальных флагов --api-url и --json.
//
// Данные выводятся в stdout таблицей (text/tabwriter) или JSON,
// сообщения об успехе в stderr:
//
//	glimpse movie list --json | jq '.[].title'
package cli
