package logger_test

import (
	"context"
	"testing"

	"domainguard/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGet_FallsBackToDefault(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment)

	require.NotNil(t, logger.Get(context.Background()))
}

func TestWithLogger_RoundTrip(t *testing.T) {
	core, _ := observer.New(zap.InfoLevel)
	l := zap.New(core)

	ctx := logger.WithLogger(context.Background(), l)
	require.Same(t, l, logger.Get(ctx))
}

func TestWithFields_AttachesFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	ctx = logger.WithFields(ctx, zap.String("scanID", "s-1"))
	logger.Info(ctx, "probe finished")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "probe finished", entries[0].Message)
	require.Equal(t, "s-1", entries[0].ContextMap()["scanID"])
}
