package card

import (
	"github.com/atotto/clipboard"

	"github.com/wronai/repodash/pkg/errors"
)

// ClipboardWriter writes text to a clipboard.
type ClipboardWriter interface {
	WriteAll(text string) error
}

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

// WriteAll copies text. Failures, including a missing clipboard utility,
// are reported as CLIPBOARD_DENIED.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New(errors.ErrCodeClipboardDenied, "no clipboard utility available")
	}
	if err := clipboardWriteAll(text); err != nil {
		return errors.Wrap(errors.ErrCodeClipboardDenied, err, "clipboard write failed")
	}
	return nil
}

// ClipboardFunc adapts a function to [ClipboardWriter].
type ClipboardFunc func(text string) error

func (f ClipboardFunc) WriteAll(text string) error { return f(text) }
