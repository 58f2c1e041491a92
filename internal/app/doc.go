// Package app содержит общую инициализацию бинарников glimpse:
// выбор и открытие хранилища, подключение к RabbitMQ.
package app
