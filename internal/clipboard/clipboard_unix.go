//go:build darwin && !test

package clipboard

import (
	xclipboard "golang.design/x/clipboard"
)

// Init initializes the clipboard
func Init() error {
	return xclipboard.Init()
}

func writeText(text string) error {
	xclipboard.Write(xclipboard.FmtText, []byte(text))
	return nil
}
