package domain

import (
	"fmt"
	"strings"
)

// Task selects the prompt template applied to the user's text.
type Task uint8

const (
	TaskExplainCode Task = iota + 1
	TaskAddComments
	TaskWriteTests
	TaskGenerateDocs
	TaskAskAnything
)

var taskLabels = map[Task]string{
	TaskExplainCode:  "Explain Code",
	TaskAddComments:  "Add Comments to Code",
	TaskWriteTests:   "Write Test Cases",
	TaskGenerateDocs: "Generate Documentation",
	TaskAskAnything:  "Ask Anything",
}

// Tasks returns every task in the order the selector shows them.
func Tasks() []Task {
	return []Task{
		TaskExplainCode,
		TaskAddComments,
		TaskWriteTests,
		TaskGenerateDocs,
		TaskAskAnything,
	}
}

func (t Task) String() string {
	if label, ok := taskLabels[t]; ok {
		return label
	}
	return fmt.Sprintf("Task(%d)", uint8(t))
}

func (t Task) Valid() bool {
	_, ok := taskLabels[t]
	return ok
}

// ParseTask maps a selector label back to its Task. Matching ignores
// surrounding whitespace and letter case.
func ParseTask(label string) (Task, error) {
	label = strings.TrimSpace(label)
	for _, t := range Tasks() {
		if strings.EqualFold(taskLabels[t], label) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown task %q", label)
}

// MarshalText lets tasks travel as their labels in JSON and YAML.
func (t Task) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown task %d", uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *Task) UnmarshalText(text []byte) error {
	parsed, err := ParseTask(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
