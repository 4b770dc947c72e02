package retroimg

import (
	"fmt"
)

// Pipeline stages reported by Error.
const (
	StageCrop      = "crop"
	StageDownscale = "downscale"
	StageSelect    = "select"
	StageQuantize  = "quantize"
	StageUpscale   = "upscale"
)

// Error is returned when a stage of the pipeline fails. Nothing is produced
// when any stage fails.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("retroimg: %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func stageError(stage string, err error) error {
	return &Error{Stage: stage, Err: err}
}
