package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	code := "def add(a, b):\n    return a + b\n"

	tests := []struct {
		name    string
		task    Task
		rawText string
		want    string
	}{
		{
			name:    "explain code",
			task:    TaskExplainCode,
			rawText: "print('hi')",
			want:    "Explain this code:\nprint('hi')",
		},
		{
			name:    "add comments",
			task:    TaskAddComments,
			rawText: code,
			want:    "Add detailed comments to this code:\n" + code,
		},
		{
			name:    "write tests",
			task:    TaskWriteTests,
			rawText: code,
			want:    "Write test cases for this Python function:\n" + code,
		},
		{
			name:    "generate documentation",
			task:    TaskGenerateDocs,
			rawText: code,
			want:    "Write documentation (docstring or markdown) for the following code:\n" + code,
		},
		{
			name:    "ask anything",
			task:    TaskAskAnything,
			rawText: "What is a closure?",
			want:    "What is a closure?",
		},
		{
			name:    "raw text kept byte for byte",
			task:    TaskExplainCode,
			rawText: "  \ttabs and trailing space \n\n",
			want:    "Explain this code:\n  \ttabs and trailing space \n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPrompt(tt.task, tt.rawText)
			if got != tt.want {
				t.Errorf("BuildPrompt() = %q, want %q", got, tt.want)
			}
			if again := BuildPrompt(tt.task, tt.rawText); again != got {
				t.Errorf("BuildPrompt() not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestBuildPromptCoversEveryTask(t *testing.T) {
	for _, task := range Tasks() {
		assert.NotPanics(t, func() { BuildPrompt(task, "x") }, task.String())
	}
}

func TestBuildPromptPanicsOnUnknownTask(t *testing.T) {
	assert.Panics(t, func() { BuildPrompt(Task(0), "x") })
	assert.Panics(t, func() { BuildPrompt(Task(42), "x") })
}

func TestPromptRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		req      PromptRequest
		wantKind ErrorKind
		wantErr  bool
	}{
		{name: "ok", req: PromptRequest{Task: TaskAskAnything, RawText: "hi"}},
		{name: "empty", req: PromptRequest{Task: TaskAskAnything, RawText: ""}, wantErr: true, wantKind: KindEmptyInput},
		{name: "spaces", req: PromptRequest{Task: TaskExplainCode, RawText: "   "}, wantErr: true, wantKind: KindEmptyInput},
		{name: "newlines and tabs", req: PromptRequest{Task: TaskWriteTests, RawText: "\n\t \r\n"}, wantErr: true, wantKind: KindEmptyInput},
		{name: "invalid task", req: PromptRequest{Task: Task(0), RawText: "hi"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err))
			if tt.wantKind == "" {
				assert.ErrorIs(t, err, ErrInvalidTask)
			}
		})
	}
}

func TestPromptRequestPrompt(t *testing.T) {
	req := PromptRequest{Task: TaskExplainCode, RawText: "x := 1"}
	assert.Equal(t, "Explain this code:\nx := 1", req.Prompt())
}

func TestCopilotErrorMatching(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewError(KindProviderError, "Error from OpenAI API", cause)

	assert.ErrorIs(t, err, ErrProviderError)
	assert.NotErrorIs(t, err, ErrEmptyInput)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")

	var ce *CopilotError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindProviderError, ce.Kind)

	assert.True(t, KindConfigMissing.Fatal())
	assert.False(t, KindProviderUnavailable.Fatal())
	assert.Equal(t, ErrorKind(""), KindOf(cause))
}
