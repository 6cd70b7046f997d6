package redis

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectOptional_EmptyAddrDisablesCache(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rdb, cleanup := ConnectOptional(context.Background(), " ", "", 0, logger)
	require.Nil(t, rdb)
	cleanup()
}

func TestConnectOptional_UnreachableDisablesCache(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rdb, cleanup := ConnectOptional(context.Background(), "127.0.0.1:1", "", 0, logger)
	require.Nil(t, rdb)
	cleanup()
}
