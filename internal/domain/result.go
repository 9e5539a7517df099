package domain

import "time"

// Stage is a step of the per-interaction pipeline.
type Stage string

const (
	StageIdle               Stage = "Idle"
	StageValidating         Stage = "Validating"
	StageCheckingModel      Stage = "CheckingModel"
	StageBuildingPrompt     Stage = "BuildingPrompt"
	StageAwaitingCompletion Stage = "AwaitingCompletion"
	StageDisplaying         Stage = "Displaying"
	StageDisplayingError    Stage = "DisplayingError"
)

// CompletionResult is produced once per interaction and then discarded.
type CompletionResult struct {
	ID       string        `json:"id"`
	Task     Task          `json:"task"`
	Model    string        `json:"model"`
	Text     string        `json:"text"`
	Stage    Stage         `json:"stage"`
	Duration time.Duration `json:"duration_ns"`
}

// Status is what the page shows before anything is submitted.
type Status struct {
	KeyLoaded      bool   `json:"key_loaded"`
	Model          string `json:"model"`
	ModelAvailable bool   `json:"model_available"`
	Error          string `json:"error,omitempty"`
	ErrorKind      string `json:"error_kind,omitempty"`
}
