package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaiso/glimpse/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenStore_Memory(t *testing.T) {
	repos, closeFn, err := OpenStore(context.Background(), config.StoreConfig{Driver: config.DriverMemory}, discardLogger())
	require.NoError(t, err)
	defer closeFn()

	assert.NotNil(t, repos.Movies)
	assert.NotNil(t, repos.MovieGenres)
	assert.NoError(t, repos.Pinger.Ping(context.Background()))
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, _, err := OpenStore(context.Background(), config.StoreConfig{Driver: "sqlite"}, discardLogger())
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestConnectAMQP_Disabled(t *testing.T) {
	conn, err := ConnectAMQP(context.Background(), config.AMQPConfig{}, "test", discardLogger())
	assert.NoError(t, err)
	assert.Nil(t, conn)
}
