// Package mq публикует и потребляет события каталога через RabbitMQ.
//
// Структура:
//   - connection.go — соединение с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go   — объявление exchanges, queues, bindings
//   - publisher.go  — конверт сообщения и публикация событий каталога
//   - consumer.go   — потребление сообщений из очередей
//
// Типы сообщений имеют вид "<entity>.<action>" и совпадают с routing key:
//   - movie.created, category.updated, genre.deleted, ...
//   - <entity>.linked — к категории или жанру привязаны фильмы
//
// Exchanges:
//   - glimpse.catalog — события каталога (topic)
//   - glimpse.dlq     — dead letter queue
package mq
