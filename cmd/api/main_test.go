package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-basic-tasks/backend/internal/config"
)

func TestSetupLogger_Level(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			setupLogger(&config.Config{LogLevel: tt.in, LogFormat: "json"})
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestCommandTree(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"migrate", "status"})
	require.NoError(t, err)
	assert.Equal(t, "status", cmd.Name())

	cmd, _, err = rootCmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, cmd.Flags().Lookup("migrate"))
	assert.NotNil(t, cmd.Flags().Lookup("addr"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("env-file"))
}
