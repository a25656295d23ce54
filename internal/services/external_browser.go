package services

import (
	"fmt"
	"os/exec"
	"runtime"
)

// SystemBrowser opens URLs with the platform's default browser
type SystemBrowser struct{}

// OpenURL launches the default browser without waiting for it
func (SystemBrowser) OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
