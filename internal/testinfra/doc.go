// Package testinfra запускает внешние зависимости для интеграционных тестов
// через testcontainers-go.
//
// Тесты, использующие пакет, помечаются тегом сборки integration:
//
//	go test -tags integration ./...
package testinfra
