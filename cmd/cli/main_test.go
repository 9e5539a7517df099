package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI from an empty directory so no local .env or
// secrets file leaks into the test.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return runWithEnv(t, nil, stdin, args...)
}

func runWithEnv(t *testing.T, env map[string]string, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, k := range []string{"COPILOT_PROVIDER", "COPILOT_MODEL", "OPENAI_BASE_URL", "COPILOT_SECRETS_FILE", "COPILOT_LOG_LEVEL"} {
		t.Setenv(k, env[k])
	}

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestTasksCommand(t *testing.T) {
	out, _, err := run(t, "", "tasks")
	require.NoError(t, err)
	assert.Equal(t, "Explain Code\nAdd Comments to Code\nWrite Test Cases\nGenerate Documentation\nAsk Anything\n", out)
}

func TestAskCommand_MockProvider(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	out, _, err := run(t, "", "--provider", "mock", "ask", "-q", "-t", "Explain Code", "print('hi')")
	require.NoError(t, err)
	assert.Contains(t, out, "Explain this code:\nprint('hi')")
}

func TestAskCommand_Stdin(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	out, _, err := run(t, "def f(): pass", "--provider", "mock", "ask", "-q", "--task", "Write Test Cases")
	require.NoError(t, err)
	assert.Contains(t, out, "Write test cases for this Python function:\ndef f(): pass")
}

func TestAskCommand_File(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	p := filepath.Join(t.TempDir(), "util.py")
	require.NoError(t, os.WriteFile(p, []byte("x = 1"), 0o644))

	out, _, err := run(t, "", "--provider", "mock", "ask", "-q", "-t", "Generate Documentation", "-f", p)
	require.NoError(t, err)
	assert.Contains(t, out, "Write documentation (docstring or markdown) for the following code:\nx = 1")
}

func TestAskCommand_Errors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		_, _, err := run(t, "", "--provider", "mock", "ask", "-q", "hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ConfigMissing")
	})
	t.Run("blank input", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		_, _, err := run(t, "   \n", "--provider", "mock", "ask", "-q")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EmptyInput")
	})
	t.Run("unknown task", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		_, _, err := run(t, "", "--provider", "mock", "ask", "-q", "-t", "Refactor", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown task")
	})
	t.Run("mock lists the configured model", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		_, _, err := run(t, "", "--provider", "mock", "--model", "gpt-4o", "ask", "-q", "hi")
		require.NoError(t, err, "mock provider lists the configured model")
	})
}

func TestModelsCommand(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	out, _, err := run(t, "", "--provider", "mock", "models")
	require.NoError(t, err)
	assert.Equal(t, "* gpt-3.5-turbo\n", out)
}

func TestLogLevel(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "minicopilot.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("log_level: info\n"), 0o644))

	tests := []struct {
		name      string
		env       map[string]string
		args      []string
		wantDebug bool
		wantInfo  bool
	}{
		{name: "quiet by default", args: []string{"--provider", "mock", "ask", "-q", "hi"}},
		{
			name:      "environment",
			env:       map[string]string{"COPILOT_LOG_LEVEL": "debug"},
			args:      []string{"--provider", "mock", "ask", "-q", "hi"},
			wantDebug: true,
			wantInfo:  true,
		},
		{
			name:     "config file",
			args:     []string{"--provider", "mock", "-c", cfgFile, "ask", "-q", "hi"},
			wantInfo: true,
		},
		{
			name: "flag wins over environment",
			env:  map[string]string{"COPILOT_LOG_LEVEL": "debug"},
			args: []string{"--provider", "mock", "--log-level", "error", "ask", "-q", "hi"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "sk-test")
			_, stderr, err := runWithEnv(t, tt.env, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDebug, strings.Contains(stderr, "requesting completion"), stderr)
			assert.Equal(t, tt.wantInfo, strings.Contains(stderr, "interaction completed"), stderr)
		})
	}
}
