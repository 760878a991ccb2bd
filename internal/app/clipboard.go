package app

import (
	"os"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

var clipboardWriteAll = clipboard.WriteAll

// copyTextToClipboard tries the system clipboard first and falls back to
// an OSC52 escape sequence for terminals reached over SSH.
func copyTextToClipboard(text string) error {
	if err := clipboardWriteAll(text); err == nil {
		return nil
	}
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer tty.Close()
	_, err = osc52.New(text).WriteTo(tty)
	return err
}
