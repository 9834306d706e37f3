package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open launches path in the platform's default viewer. Best effort: the
// command is started, not waited on, and any error is reported to the caller
// who decides whether it matters.
func Open(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s in viewer: %w", path, err)
	}
	return nil
}
