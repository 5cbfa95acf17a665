package share

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/atotto/clipboard"
	"github.com/stretchr/testify/assert"
)

func TestClipboardSharer_Share(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("no clipboard on this host")
	}

	var got string
	s := &ClipboardSharer{write: func(text string) error { got = text; return nil }}

	assert.NoError(t, s.Share(context.Background(), "hello"))
	assert.Equal(t, "hello", got)
}

func TestClipboardSharer_WriteError(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("no clipboard on this host")
	}

	writeErr := errors.New("xclip missing")
	s := &ClipboardSharer{write: func(string) error { return writeErr }}

	assert.ErrorIs(t, s.Share(context.Background(), "hello"), writeErr)
}

func TestFallback(t *testing.T) {
	var buf bytes.Buffer
	failing := &ClipboardSharer{write: func(string) error { return errors.New("no display") }}
	f := Fallback{Primary: failing, Secondary: WriterSharer{W: &buf}}

	assert.NoError(t, f.Share(context.Background(), "Join MinSpirit: Countdown of Time!"))
	assert.Equal(t, "Join MinSpirit: Countdown of Time!\n", buf.String())
}

func TestFallback_CancelledContext(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := Fallback{Primary: NewClipboardSharer(), Secondary: WriterSharer{W: &buf}}
	assert.ErrorIs(t, f.Share(ctx, "text"), context.Canceled)
	assert.Empty(t, buf.String())
}
