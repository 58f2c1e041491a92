// Package apiclient — типизированный HTTP-клиент Glimpse API.
// Используется CLI и TUI-браузером.
package apiclient
