package model

// State is the position of an incremental validation in its state machine
type State string

const (
	StateEmpty    State = "empty"
	StateGrowing  State = "growing"
	StateInvalid  State = "invalid"
	StateComplete State = "complete"
)

// PartialResult is the tri-state verdict of an incremental validation.
//
// The caller creates one per validation call and owns continuity across
// keystrokes; validators reset it and recompute from the full text.
type PartialResult struct {
	// StillValid reports whether the input so far can still become valid
	StillValid bool `json:"still_valid" yaml:"still_valid"`

	// Complete reports a full, checksum-correct value
	Complete bool `json:"complete" yaml:"complete"`

	// Message describes the failure; empty unless the input is invalid
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// Typed is the number of cleaned digits that were validated
	Typed int `json:"typed" yaml:"typed"`
}

// NewPartialResult creates an empty result
func NewPartialResult() *PartialResult {
	return &PartialResult{StillValid: true}
}

// Reset clears the result before a new validation pass
func (r *PartialResult) Reset() {
	r.StillValid = true
	r.Complete = false
	r.Message = ""
	r.Typed = 0
}

// Invalidate marks the input as invalid with a diagnostic message
func (r *PartialResult) Invalidate(msg string) *PartialResult {
	r.StillValid = false
	r.Complete = false
	r.Message = msg
	return r
}

// Finish marks the input as complete and valid
func (r *PartialResult) Finish() *PartialResult {
	r.StillValid = true
	r.Complete = true
	r.Message = ""
	return r
}

// State derives the state machine position from the result
func (r *PartialResult) State() State {
	switch {
	case !r.StillValid:
		return StateInvalid
	case r.Complete:
		return StateComplete
	case r.Typed == 0:
		return StateEmpty
	default:
		return StateGrowing
	}
}
