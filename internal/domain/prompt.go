package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTask marks a request whose Task is outside the enumeration.
// Edges parse labels with ParseTask, so reaching it is a caller bug.
var ErrInvalidTask = errors.New("invalid task")

// SystemPreamble is the system message sent with every completion request.
const SystemPreamble = "You are a helpful programming assistant."

// PromptRequest is what the user submitted for one interaction.
type PromptRequest struct {
	Task    Task   `json:"task"`
	RawText string `json:"text"`
}

// Validate rejects blank input before anything touches the network.
func (r PromptRequest) Validate() error {
	if !r.Task.Valid() {
		return fmt.Errorf("%w %d", ErrInvalidTask, uint8(r.Task))
	}
	if strings.TrimSpace(r.RawText) == "" {
		return NewError(KindEmptyInput, "Please enter some code or a question.", nil)
	}
	return nil
}

// BuildPrompt applies the task template to rawText. rawText is inserted
// verbatim. Passing a Task outside the enumeration is a programming error.
func BuildPrompt(task Task, rawText string) string {
	switch task {
	case TaskExplainCode:
		return "Explain this code:\n" + rawText
	case TaskAddComments:
		return "Add detailed comments to this code:\n" + rawText
	case TaskWriteTests:
		return "Write test cases for this Python function:\n" + rawText
	case TaskGenerateDocs:
		return "Write documentation (docstring or markdown) for the following code:\n" + rawText
	case TaskAskAnything:
		return rawText
	}
	panic(fmt.Sprintf("domain: BuildPrompt called with %v", task))
}

// Prompt builds the prompt for this request.
func (r PromptRequest) Prompt() string {
	return BuildPrompt(r.Task, r.RawText)
}
