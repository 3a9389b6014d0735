// Package osutil holds platform specific values and helpers
package osutil

import (
	"os/exec"
	"runtime"
)

const (
	Windows = "windows"
	Darwin  = "darwin"
)

type exitCode int

const (
	ExitOK    exitCode = 0
	ExitError exitCode = 1
)

const FilePermission = 0o644

// HostsFile returns the location of the system hosts file.
func HostsFile() string {
	if runtime.GOOS == Windows {
		return `C:\Windows\System32\drivers\etc\hosts`
	}

	return "/etc/hosts"
}

// DefaultEditor is used when neither VISUAL nor EDITOR is set.
func DefaultEditor() string {
	if runtime.GOOS == Windows {
		return "C:\\Windows\\system32\\notepad.exe"
	}

	return "nano"
}

// OpenURL opens the url in the default browser.
func OpenURL(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case Windows:
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case Darwin:
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	return cmd.Start()
}
