package util

import (
	"fmt"
	"os/exec"
	"runtime"
)

// browserCommands 各平台依序尝试的打开方式
var browserCommands = map[string][][]string{
	"windows": {
		{"rundll32", "url.dll,FileProtocolHandler"},
		{"explorer"},
	},
	"darwin": {
		{"open"},
	},
	"linux": {
		{"xdg-open"},
		{"sensible-browser"},
		{"google-chrome"},
		{"firefox"},
	},
}

// OpenBrowserWithFallback 用系统浏览器打开戰情室地址，第一种方式失败时依序尝试其余方式
func OpenBrowserWithFallback(url string) error {
	cmds, ok := browserCommands[runtime.GOOS]
	if !ok {
		cmds = browserCommands["linux"]
	}

	var lastErr error
	for _, c := range cmds {
		args := append(append([]string{}, c[1:]...), url)
		if lastErr = exec.Command(c[0], args...).Start(); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("无法打开浏览器 %s: %w", url, lastErr)
}
