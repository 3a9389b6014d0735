package osutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "vim")

	assert.Equal(t, "vim", Editor(""))
	assert.Equal(t, "code --wait", Editor("code --wait"))

	t.Setenv("EDITOR", "")
	assert.Equal(t, DefaultEditor(), Editor(""))
}

func TestEditorCommand(t *testing.T) {
	cmd, err := EditorCommand(`code --wait "--profile=my detox"`, "/tmp/config.yml")
	require.NoError(t, err)

	assert.Equal(
		t,
		[]string{"code", "--wait", "--profile=my detox", "/tmp/config.yml"},
		cmd.Args,
	)

	_, err = EditorCommand("", "/tmp/config.yml")
	require.Error(t, err)

	_, err = EditorCommand(`vim "unterminated`, "/tmp/config.yml")
	require.Error(t, err)
}
