package shared

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var traceIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))

	ctx := SetTraceID(context.Background())
	first := GetTraceID(ctx)
	assert.Regexp(t, traceIDPattern, first)

	second := GetTraceID(SetTraceID(context.Background()))
	assert.NotEqual(t, first, second)
}

func TestDeviceID(t *testing.T) {
	_, ok := GetDeviceID(context.Background())
	assert.False(t, ok)

	_, ok = GetDeviceID(WithDeviceID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := GetDeviceID(WithDeviceID(context.Background(), "device-1"))
	assert.True(t, ok)
	assert.Equal(t, "device-1", id)
}
