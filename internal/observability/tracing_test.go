package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "microblog-test", Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.NotNil(t, Tracer)
}

func TestInitTracing_Stdout(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{
		ServiceName:  "microblog-test",
		Environment:  "test",
		Enabled:      true,
		Exporter:     "stdout",
		SamplerRatio: 1,
	})
	require.NoError(t, err)

	_, span := StartSpan(context.Background(), "TweetService.Create", attribute.Int("media.count", 2))
	assert.NotEmpty(t, span.TraceID())
	span.End(errors.New("boom"))

	assert.NoError(t, shutdown(context.Background()))
}

func TestInitMetrics_Idempotent(t *testing.T) {
	first := InitMetrics("microblog-test")
	second := InitMetrics("microblog-test")
	assert.Same(t, first, second)
}
