package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/josephgoksu/OpsWing/internal/logger"
	"github.com/josephgoksu/OpsWing/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the CLI at an empty workbook inside a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("OPSWING_STORE_PATH", filepath.Join(dir, "workbook.json"))
	return dir
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI and returns stdout; logs go to a separate buffer.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	resetFlags(rootCmd)
	bindFlags()

	var out, logs bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&logs)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func runJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	out, err := run(t, append(args, "--format", "json")...)
	require.NoError(t, err, out)
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}

func TestRootCmd(t *testing.T) {
	isolate(t)

	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "OpsWing - task analysis")
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Available Commands:")
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "0.1.0", GetVersion())
}

func TestUnsupportedFormat(t *testing.T) {
	isolate(t)

	_, err := run(t, "task", "list", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestMissingConfigFile(t *testing.T) {
	dir := isolate(t)

	_, err := run(t, "task", "list", "--config", filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestInvalidConfig(t *testing.T) {
	isolate(t)
	t.Setenv("OPSWING_STORE_DRIVER", "mongo")

	_, err := run(t, "task", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestConfigInitAndShow(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(".opswing", ".opswing.yaml"))
	_, err = os.Stat(filepath.Join(dir, ".opswing", ".opswing.yaml"))
	require.NoError(t, err)

	_, err = run(t, "config", "init")
	assert.Error(t, err, "second init must not overwrite")

	var view configView
	runJSON(t, &view, "config", "show")
	assert.Equal(t, 5000, view.Config.Server.Port)
	assert.Equal(t, "file", view.Config.Store.Driver)
	assert.Contains(t, view.ConfigFile, ".opswing.yaml")
}

func TestConfigShowMasksSecrets(t *testing.T) {
	isolate(t)
	t.Setenv("OPSWING_TELEMETRY_APIKEY", "phc_secret")

	var view configView
	runJSON(t, &view, "config", "show")
	assert.Equal(t, "********", view.Config.Telemetry.APIKey)
}

func TestUserMessage(t *testing.T) {
	msg := userMessage(fmt.Errorf("task 9: %w", store.ErrNotFound))
	assert.Contains(t, msg, "record not found")
	assert.Equal(t, "Error: boom", userMessage(fmt.Errorf("boom")))
}

func TestCrashLogRecordsCommandInput(t *testing.T) {
	isolate(t)

	_, err := run(t, "deadline", "Write", "report", "--hours", "12")
	require.NoError(t, err)

	path, err := logger.RecordPanic("boom")
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "opswing deadline")
	assert.Contains(t, string(raw), "Write report --hours=12")
}
