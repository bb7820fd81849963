package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"athletrack/backend/internal/config"
	"athletrack/backend/internal/domain"
)

func TestOpenBackend_Memory(t *testing.T) {
	ctx := context.Background()

	b, err := openBackend(ctx, config.DatabaseConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	defer b.close()

	assert.Nil(t, b.migrate)

	added, err := b.exercises.SeedShared(ctx, domain.SystemExercises)
	require.NoError(t, err)
	assert.Equal(t, len(domain.SystemExercises), added)

	list, err := b.exercises.ListVisible(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, len(domain.SystemExercises))
}

func TestOpenBackend_UnknownDriver(t *testing.T) {
	_, err := openBackend(context.Background(), config.DatabaseConfig{Driver: "sqlite"})
	assert.ErrorContains(t, err, `unknown database driver "sqlite"`)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.NoError(t, rootCmd.Execute())
}
