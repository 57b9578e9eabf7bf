package web

import (
	"fmt"
	"os/exec"
	"runtime"
)

// BrowserCommand returns the command that opens url on goos.
func BrowserCommand(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// OpenBrowser opens url in the user's default browser without waiting.
func OpenBrowser(url string) error {
	cmd, err := BrowserCommand(runtime.GOOS, url)
	if err != nil {
		return err
	}
	return cmd.Start()
}
