// internal/models/trace.go
package models

import "time"

// PipelineState names the stage a query last completed.
type PipelineState string

const (
	StateReceived        PipelineState = "Received"
	StateMatched         PipelineState = "Matched"
	StateParamsExtracted PipelineState = "ParamsExtracted"
	StateBackfilled      PipelineState = "BackfilledFromMemory"
	StateValidated       PipelineState = "Validated"
	StateExecuted        PipelineState = "Executed"
	StateMemoryUpdated   PipelineState = "MemoryUpdated"
	StateRejected        PipelineState = "Rejected"
)

// DecisionTrace records how a query moved through the pipeline. It is
// attached to every response, successful or not.
type DecisionTrace struct {
	QueryID            string                 `json:"queryId"`
	Query              string                 `json:"query"`
	Intent             Intent                 `json:"intent,omitempty"`
	Confidence         float64                `json:"confidence"`
	MatchedPattern     string                 `json:"matchedPattern,omitempty"`
	ParamsBeforeMemory map[string]interface{} `json:"paramsBeforeMemory,omitempty"`
	ParamsAfterMemory  map[string]interface{} `json:"paramsAfterMemory,omitempty"`
	MemoryFieldsUsed   []string               `json:"memoryFieldsUsed,omitempty"`
	FinalState         PipelineState          `json:"finalState"`
	ReceivedAt         time.Time              `json:"receivedAt"`
	DurationMs         int64                  `json:"durationMs"`
}

// Response is the full outcome of one processed query.
type Response struct {
	QueryID  string        `json:"queryId"`
	Intent   Intent        `json:"intent,omitempty"`
	Tool     string        `json:"tool,omitempty"`
	Params   ParameterSet  `json:"params"`
	Result   interface{}   `json:"result,omitempty"`
	Rendered string        `json:"rendered,omitempty"`
	Trace    DecisionTrace `json:"trace"`
}
