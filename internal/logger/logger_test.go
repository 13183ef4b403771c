package logger

import (
	"bytes"
	"testing"

	"notes-app/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		cfg  *config.ConfigLogger
		want zerolog.Level
	}{
		{cfg: nil, want: zerolog.InfoLevel},
		{cfg: &config.ConfigLogger{Level: ""}, want: zerolog.InfoLevel},
		{cfg: &config.ConfigLogger{Level: "debug"}, want: zerolog.DebugLevel},
		{cfg: &config.ConfigLogger{Level: "warn"}, want: zerolog.WarnLevel},
		{cfg: &config.ConfigLogger{Level: "nonsense"}, want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		log := NewWithWriter(&bytes.Buffer{}, tt.cfg)
		assert.Equal(t, tt.want, log.GetLevel())
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, &config.ConfigLogger{Level: "info"})

	log.Debug().Msg("hidden")
	log.Info().Str("note_id", "1").Msg("note created")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"note_id":"1"`)
	assert.Contains(t, out, `"message":"note created"`)
}
