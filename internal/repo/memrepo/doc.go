// Package memrepo — хранилище каталога в памяти.
//
// Используется в тестах и для локального запуска без БД (STORE_DRIVER=memory).
// Данные не переживают перезапуск процесса.
package memrepo
