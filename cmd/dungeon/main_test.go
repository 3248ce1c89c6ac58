package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig returns a config file for an in-memory, seeded run that logs
// to a file in the test's temp dir, and the path of that log.
func writeConfig(t *testing.T) (cfgPath, logPath string) {
	t.Helper()
	dir := t.TempDir()
	logPath = filepath.Join(dir, "dungeon.log")
	cfgPath = filepath.Join(dir, "dungeon.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
storage:
  backend: memory
logging:
  level: info
  format: json
  output: `+logPath+`
game:
  seed: 7
  bcrypt_cost: 4
`), 0o644))
	return cfgPath, logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_PlaysQuest(t *testing.T) {
	cfg, logPath := writeConfig(t)
	assert.Equal(t, 0, run([]string{"-config", cfg, "-monsters", "test_monster"}))
	assert.Contains(t, readLog(t, logPath), "dungeon ready")
}

func TestRun_FailuresReturnExitCode(t *testing.T) {
	cfg, logPath := writeConfig(t)

	assert.Equal(t, 1, run([]string{"-config", cfg, "-monsters", "test_monster", "-max-turns", "0"}))
	assert.Contains(t, readLog(t, logPath), "turn limit reached", "the logger is flushed before returning")

	assert.Equal(t, 1, run([]string{"-config", cfg, "-monsters", "dragon"}))
	assert.Contains(t, readLog(t, logPath), "parsing monsters")

	assert.Equal(t, 2, run([]string{"-no-such-flag"}))
}
