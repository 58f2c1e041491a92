package config

import (
	"strconv"
	"time"
)

// Config — конфигурация всех бинарников glimpse.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Store   StoreConfig   `koanf:"store"`
	AMQP    AMQPConfig    `koanf:"amqp"`
	Log     LogConfig     `koanf:"log"`
	Sweeper SweeperConfig `koanf:"sweeper"`
	Client  ClientConfig  `koanf:"client"`
}

// ServerConfig — параметры HTTP API.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// Драйверы хранилища.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// StoreConfig — параметры хранилища.
type StoreConfig struct {
	// Driver — "mongo" (по умолчанию), "postgres" или "memory".
	Driver string `koanf:"driver"`

	MongoURI      string `koanf:"mongo_uri"`
	MongoDatabase string `koanf:"mongo_database"`

	PostgresURL string `koanf:"postgres_url"`

	// MaxConns — размер пула соединений для обоих драйверов.
	MaxConns int `koanf:"max_conns"`
}

// AMQPConfig — параметры RabbitMQ. Пустой URL отключает события.
type AMQPConfig struct {
	URL string `koanf:"url"`
}

// LogConfig — параметры логирования.
type LogConfig struct {
	// Level — debug, info, warn, error.
	Level string `koanf:"level"`

	// Format — json, text или pretty.
	Format string `koanf:"format"`
}

// SweeperConfig — параметры фоновой очистки связей.
type SweeperConfig struct {
	// Port — порт для /healthz и /metrics.
	Port int `koanf:"port"`

	// Schedule — cron-выражение для сверки и очистки.
	Schedule string `koanf:"schedule"`

	// Retention — сколько хранить удалённые записи. 0 — не удалять физически.
	Retention time.Duration `koanf:"retention"`

	// Concurrency — число параллельных обработчиков событий.
	Concurrency int `koanf:"concurrency"`
}

// ClientConfig — параметры CLI и браузера каталога.
type ClientConfig struct {
	APIURL  string        `koanf:"api_url"`
	Timeout time.Duration `koanf:"timeout"`

	// FavoritesPath — файл избранного. Пусто — в каталоге конфигурации пользователя.
	FavoritesPath string `koanf:"favorites_path"`

	// ID категорий для вкладок. Пусто — поиск категории по имени.
	DiscoverCategory string `koanf:"discover_category"`
	TrendingCategory string `koanf:"trending_category"`
	TopRatedCategory string `koanf:"top_rated_category"`
	UpcomingCategory string `koanf:"upcoming_category"`
}

// Addr возвращает адрес для http.Server.
func (c ServerConfig) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Addr возвращает адрес служебного HTTP-сервера sweeper.
func (c SweeperConfig) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
