package engine

import (
	"github.com/strive-code/strive/errors"
)

// Action is the closed set of operations the engine executes. Dispatch
// switches exhaustively over these values; there is no open-ended
// handler registration.
type Action string

const (
	ActionTranspile   Action = "transpile"
	ActionOptimize    Action = "optimize"
	ActionReconstruct Action = "reconstruct"
)

// ParseAction converts a string to an Action
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionTranspile, ActionOptimize, ActionReconstruct:
		return Action(s), nil
	default:
		return "", errors.NewInvalidRequestError("unknown action %q (valid: transpile, optimize, reconstruct)", s)
	}
}

// TranspileRequest is one unit of source text and its language pair
type TranspileRequest struct {
	Code string `json:"code"`
	From string `json:"from"`
	To   string `json:"to"`
}

// TranspileResponse carries the rewritten unit
type TranspileResponse struct {
	Code   string `json:"code"`
	From   string `json:"from"`
	To     string `json:"to"`
	Status string `json:"status"`
}

// OptimizeRequest asks for a cleanup pass over source text
type OptimizeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// OptimizeResponse carries the cleaned text and what changed
type OptimizeResponse struct {
	Code         string   `json:"code"`
	Original     string   `json:"original"`
	Improvements []string `json:"improvements"`
	Savings      int      `json:"savings"`
	Language     string   `json:"language"`
}

// ReconstructRequest asks for a full repository reconstruction.
// Optimize defaults to the configured value when nil.
type ReconstructRequest struct {
	SourceLocation string   `json:"source_location"`
	TargetLanguage string   `json:"target_language"`
	Modifications  []string `json:"modifications,omitempty"`
	Optimize       *bool    `json:"optimize,omitempty"`
}

// ErrorResponse is the single-error wire shape for failed operations
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse wraps an error for JSON output
func NewErrorResponse(err error) *ErrorResponse {
	return &ErrorResponse{Error: err.Error()}
}

// Capabilities reports what the loaded ruleset can do
type Capabilities struct {
	Languages      []string `json:"languages"`
	Pairs          []string `json:"pairs"`
	RulesetVersion string   `json:"ruleset_version"`
}
