package worker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepRemovesOnlyOldFiles(t *testing.T) {
	dir := t.TempDir()

	oldFile := filepath.Join(dir, "old.mp4")
	require.NoError(t, os.WriteFile(oldFile, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(oldFile, time.Now().Add(-2*time.Hour), time.Now().Add(-2*time.Hour)))

	newFile := filepath.Join(dir, "new.mp4")
	require.NoError(t, os.WriteFile(newFile, []byte("x"), 0o644))

	logger := zerolog.Nop()
	j := NewJanitor(dir, time.Hour, time.Minute, &logger)
	j.sweep()

	_, err := os.Stat(oldFile)
	assert.True(t, os.IsNotExist(err), "old file should be removed")

	_, err = os.Stat(newFile)
	assert.NoError(t, err, "recent file should survive")
}

func TestSweepMissingDirIsHarmless(t *testing.T) {
	logger := zerolog.Nop()
	j := NewJanitor(filepath.Join(t.TempDir(), "gone"), time.Hour, time.Minute, &logger)

	j.sweep()
}
