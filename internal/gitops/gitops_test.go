package gitops

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func TestInitAndCommitAll(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()

	assert.False(t, IsRepo(dir))
	require.NoError(t, Init(dir))
	assert.True(t, IsRepo(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tally.yaml"), []byte("accounts: []\n"), 0o644))
	hash, err := CommitAll(dir, "add config")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}

func TestCommitAll_NotARepo(t *testing.T) {
	requireGit(t)
	_, err := CommitAll(t.TempDir(), "nothing here")
	require.Error(t, err)
}
