package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Options{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestProviderExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	tp, err := newProvider(Options{Stdout: true, Writer: &buf, Version: "test"})
	require.NoError(t, err)

	_, span := tp.Tracer("telemetry-test").Start(context.Background(), "ListUsers")
	span.End()
	require.NoError(t, tp.Shutdown(context.Background()))

	assert.Contains(t, buf.String(), `"Name":"ListUsers"`)
	assert.Contains(t, buf.String(), ServiceName)
}
