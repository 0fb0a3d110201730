package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/killallgit/vad-annotator/pkg/config"
)

// testEnv is an isolated config file with its own database, clip and
// export directories
type testEnv struct {
	configPath string
	dbPath     string
	clipsDir   string
	exportDir  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	config.Reset()
	t.Cleanup(config.Reset)

	dir := t.TempDir()
	env := &testEnv{
		configPath: filepath.Join(dir, "settings.yaml"),
		dbPath:     filepath.Join(dir, "data", "annotations.db"),
		clipsDir:   filepath.Join(dir, "clips"),
		exportDir:  filepath.Join(dir, "export"),
	}
	require.NoError(t, os.MkdirAll(env.clipsDir, 0755))

	yaml := fmt.Sprintf(`server:
  host: 127.0.0.1
  port: 18080
database:
  path: %q
audio:
  clips_dir: %q
export:
  dir: %q
`, env.dbPath, env.clipsDir, env.exportDir)
	require.NoError(t, os.WriteFile(env.configPath, []byte(yaml), 0644))
	return env
}

// run executes the command tree with args against the env's config file
func (e *testEnv) run(args ...string) (string, error) {
	return e.runContext(context.Background(), args...)
}

func (e *testEnv) runContext(ctx context.Context, args ...string) (string, error) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(bytes.NewReader(nil))
	cmd.SetArgs(append([]string{"--config", e.configPath, "--log-level", "error"}, args...))
	cmd.SetContext(ctx)
	err := cmd.Execute()
	return buf.String(), err
}
