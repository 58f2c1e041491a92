package testinfra

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Образы для интеграционных тестов.
const (
	MongoImage    = "mongo:7"
	PostgresImage = "postgres:16-alpine"
	RabbitMQImage = "rabbitmq:3.13-alpine"
)

// SkipIfNoDocker пропускает тест, если Docker недоступен.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	if !IsDockerAvailable() {
		t.Skip("Skipping test: Docker not available")
	}
}

// IsDockerAvailable проверяет, что docker daemon отвечает.
func IsDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

// StartMongo запускает MongoDB и возвращает URI подключения.
// Контейнер останавливается в t.Cleanup.
func StartMongo(t *testing.T) string {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        MongoImage,
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
	}
	return "mongodb://" + start(t, req)
}

// StartPostgres запускает PostgreSQL и возвращает DSN.
func StartPostgres(t *testing.T) string {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        PostgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "glimpse",
			"POSTGRES_PASSWORD": "glimpse",
			"POSTGRES_DB":       "glimpse",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	return fmt.Sprintf("postgresql://glimpse:glimpse@%s/glimpse?sslmode=disable", start(t, req))
}

// StartRabbitMQ запускает RabbitMQ и возвращает AMQP URL.
func StartRabbitMQ(t *testing.T) string {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        RabbitMQImage,
		ExposedPorts: []string{"5672/tcp"},
		WaitingFor:   wait.ForLog("Server startup complete").WithStartupTimeout(90 * time.Second),
	}
	return "amqp://guest:guest@" + start(t, req) + "/"
}

// start запускает контейнер и возвращает host:port первого открытого порта.
func start(t *testing.T, req testcontainers.ContainerRequest) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start %s: %v", req.Image, err)
	}
	t.Cleanup(func() { CleanupContainer(t, context.Background(), container) })

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("container endpoint: %v", err)
	}
	return endpoint
}

// CleanupContainer останавливает контейнер, логируя ошибку.
func CleanupContainer(t *testing.T, ctx context.Context, container testcontainers.Container) {
	t.Helper()

	if container != nil {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	}
}
