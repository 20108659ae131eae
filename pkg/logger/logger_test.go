package logx

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"github.com/tillpoint/checkout/internal/core"
)

func TestInit_ProductionWritesJSONAtInfo(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	Init(LoggerOpts{Environment: core.Production, Out: &buf})

	Debug().Msg("hidden")
	Info().Str("customer", "ahmed").Msg("checkout committed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"customer":"ahmed"`)
	assert.Contains(t, out, `"message":"checkout committed"`)
}

func TestInit_DevelopmentLogsDebug(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	Init(LoggerOpts{Environment: core.Development, Out: &buf})

	Debug().Msg("node started")
	assert.Contains(t, buf.String(), "node started")
}
