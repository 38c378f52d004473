package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrmchughes/home-energy-analysis-tool/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_BindsFlags(t *testing.T) {
	t.Chdir(t.TempDir())

	a := &app{}
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("log.level", "info", "")
	require.NoError(t, cmd.ParseFlags([]string{"--log.level", "debug"}))

	require.NoError(t, a.bindFlags(cmd))
	assert.Equal(t, "debug", a.v.GetString("log.level"))

	assert.Nil(t, NewRootCommand().PersistentPreRun)
	assert.NotNil(t, NewRootCommand().PersistentPreRunE)
}

func TestList_BuiltinStories(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, out, "button--destructive")
	assert.Contains(t, out, "button--pill")
	assert.Regexp(t, `button--small\s+default\s+sm\s+Button`, out)
}

func TestList_StoriesFileOnly(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stories.yml"), []byte(
		"title: Energy\nstories:\n  - name: Analyze\n    args: {label: Analyze, variant: outline}\n",
	), 0o644))

	out, err := execute(t, "list", "--catalog.builtin=false", "--catalog.stories_file", "stories.yml")
	require.NoError(t, err)

	assert.Contains(t, out, "energy--analyze")
	assert.NotContains(t, out, "button--default")
}

func TestRender(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "render", "button--ghost")
	require.NoError(t, err)
	assert.Equal(t, `<button type="button" class="storybook-button storybook-button--ghost" data-size="default">Button</button>`+"\n", out)

	out, err = execute(t, "render", "button--ghost", "--source")
	require.NoError(t, err)
	assert.Contains(t, out, "ui.ButtonVariantGhost")

	_, err = execute(t, "render", "button--missing")
	assert.Error(t, err)
}

func TestServe(t *testing.T) {
	cfg := &config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: 1},
		Catalog: config.CatalogConfig{PathPrefix: "/stories", Builtin: true, ActionCapacity: 10, TruncateAfter: 10},
		Log:     config.LogConfig{Level: "error"},
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, listener, cfg, quietLogger())
	}()

	baseURL := "http://" + listener.Addr().String()

	resp, err := http.Get(baseURL + "/stories/story/button--link")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "storybook-button--link")

	resp, err = http.Get(baseURL + "/other")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestServe_ShutdownEndsActionStreams(t *testing.T) {
	cfg := &config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: 1},
		Catalog: config.CatalogConfig{Builtin: true, ActionCapacity: 10, TruncateAfter: 10},
		Log:     config.LogConfig{Level: "error"},
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, listener, cfg, quietLogger())
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + "/actions-sse?story=button--default")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: keepalive\n", line)

	started := time.Now()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.Less(t, time.Since(started), shutdownTimeout)
	case <-time.After(2 * shutdownTimeout):
		t.Fatal("serve did not stop")
	}

	_, err = io.ReadAll(resp.Body)
	assert.NoError(t, err, "stream should end cleanly")
}

func TestNewLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "heatstack.log")

	var stderr bytes.Buffer
	logger, closeLog, err := newLogger(config.LogConfig{Level: "info", File: logFile}, &stderr)
	require.NoError(t, err)

	logger.Debug("only in file")
	logger.Info("everywhere")
	require.NoError(t, closeLog())

	assert.NotContains(t, stderr.String(), "only in file")
	assert.Contains(t, stderr.String(), "everywhere")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"only in file"`)
	assert.Contains(t, string(data), `"msg":"everywhere"`)

	_, _, err = newLogger(config.LogConfig{Level: "loud"}, &stderr)
	assert.Error(t, err)
}
