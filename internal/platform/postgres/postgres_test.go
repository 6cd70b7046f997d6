package postgres

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnect_EmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), "   ")
	require.Error(t, err)
}

func TestConnectOptional_EmptyDSNFallsBack(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, cleanup := ConnectOptional(context.Background(), "", logger)
	require.Nil(t, db)
	require.NotNil(t, cleanup)
	cleanup()
}
