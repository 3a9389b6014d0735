package osutil

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

var errNoEditor = errors.New("no editor configured")

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// Editor picks the editor command: the configured value wins over $VISUAL
// and $EDITOR.
func Editor(configured string) string {
	return firstNonEmptyString(
		configured,
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		DefaultEditor(),
	)
}

// EditorCommand builds the command that opens path in editor. The editor
// may carry its own arguments (e.g. "code --wait").
func EditorCommand(editor, path string) (*exec.Cmd, error) {
	args, err := shellquote.Split(editor)
	if err != nil {
		return nil, fmt.Errorf("unable to parse editor %q: %w", editor, err)
	}

	if len(args) == 0 {
		return nil, errNoEditor
	}

	args = append(args, path)

	return exec.Command(args[0], args[1:]...), nil
}
