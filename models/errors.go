package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for every failure class in the pipeline. Callers match
// with errors.Is; auth errors need a configuration fix, *Unavailable errors
// may succeed on re-submission.
var (
	ErrSearchUnavailable  = errors.New("search provider unavailable")
	ErrSearchAuth         = errors.New("search provider rejected credentials")
	ErrLLMUnavailable     = errors.New("language model unavailable")
	ErrLLMAuth            = errors.New("language model rejected credentials")
	ErrLLMEmptyResponse   = errors.New("language model returned an empty completion")
	ErrScriptParse        = errors.New("no speaker lines could be parsed from the script")
	ErrVoiceNotConfigured = errors.New("no voice configured for speaker")
	ErrTTSUnavailable     = errors.New("speech synthesis unavailable")
	ErrAssembly           = errors.New("audio assembly failed")
)

// StageError tags a failure with the pipeline stage it happened in, so the
// user-facing message identifies which stage failed and why.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// NewStageError wraps err with its stage name. Nil errors pass through.
func NewStageError(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
