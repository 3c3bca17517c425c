package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestSetup_Level(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	setup(&buf, "warn")
	require.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	log.Info().Msg("hidden")
	require.Empty(t, buf.String())

	log.Warn().Str("email", "alice@acid.net").Msg("shown")
	require.Contains(t, buf.String(), `"email":"alice@acid.net"`)
	require.Contains(t, buf.String(), `"message":"shown"`)
}

func TestSetup_UnknownLevelFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	setup(&buf, "loud")
	require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
