// Package share hands share texts to the host system.
package share

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when the host has no usable clipboard.
var ErrUnsupported = errors.New("clipboard is not supported on this system")

// Sharer hands text to the user for sharing.
type Sharer interface {
	Share(ctx context.Context, text string) error
}

// ClipboardSharer copies share texts to the system clipboard.
type ClipboardSharer struct {
	write func(string) error
}

// NewClipboardSharer creates a sharer backed by the system clipboard.
func NewClipboardSharer() *ClipboardSharer {
	return &ClipboardSharer{write: clipboard.WriteAll}
}

// Share implements Sharer.
func (s *ClipboardSharer) Share(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := s.write(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// WriterSharer prints share texts, for terminals without a clipboard.
type WriterSharer struct {
	W io.Writer
}

// Share implements Sharer.
func (s WriterSharer) Share(_ context.Context, text string) error {
	_, err := fmt.Fprintln(s.W, text)
	return err
}

// Fallback tries Primary and falls back to Secondary when it fails.
type Fallback struct {
	Primary   Sharer
	Secondary Sharer
}

// Share implements Sharer.
func (f Fallback) Share(ctx context.Context, text string) error {
	err := f.Primary.Share(ctx, text)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if secErr := f.Secondary.Share(ctx, text); secErr != nil {
		return errors.Join(err, secErr)
	}
	return nil
}
