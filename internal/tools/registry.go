// internal/tools/registry.go
package tools

import (
	"context"
	"fmt"
	"strings"

	"vendor-analytics-agent/internal/common/errors"
	"vendor-analytics-agent/internal/common/logger"
	"vendor-analytics-agent/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// ToolFunc runs one aggregation against the store.
type ToolFunc func(ctx context.Context, params models.ParameterSet) (interface{}, error)

// Tool is one registry entry: the boundary name, the parameter schema the
// normalized set must satisfy, and the run function.
type Tool struct {
	Name   string
	Schema string
	Run    ToolFunc
}

// Registry maps each intent onto its tool. Parameters are schema-checked at
// the boundary even though the validator already normalized them; a schema
// violation here means a pipeline bug, and it surfaces as an execution
// error rather than corrupting the data layer.
type Registry struct {
	tools  map[models.Intent]Tool
	logger logger.Logger
}

const dateRangeSchema = `{
	"type": "object",
	"properties": {
		"start": {"type": "string"},
		"end": {"type": "string"}
	},
	"required": ["start", "end"]
}`

func NewRegistry(store Store, log logger.Logger) *Registry {
	vendorPattern := `"^VENDOR_[1-9][0-9]*$"`

	return &Registry{
		logger: log,
		tools: map[models.Intent]Tool{
			models.IntentVendorSummary: {
				Name: models.IntentVendorSummary.ToolName(),
				Schema: `{
					"type": "object",
					"properties": {
						"vendorId": {"type": "string", "pattern": ` + vendorPattern + `},
						"dateRange": ` + dateRangeSchema + `
					},
					"required": ["vendorId", "dateRange"]
				}`,
				Run: func(ctx context.Context, p models.ParameterSet) (interface{}, error) {
					return store.VendorSummary(ctx, p.VendorID, *p.DateRange)
				},
			},
			models.IntentCompare: {
				Name: models.IntentCompare.ToolName(),
				Schema: `{
					"type": "object",
					"properties": {
						"vendorIdA": {"type": "string", "pattern": ` + vendorPattern + `},
						"vendorIdB": {"type": "string", "pattern": ` + vendorPattern + `},
						"dateRange": ` + dateRangeSchema + `
					},
					"required": ["vendorIdA", "vendorIdB", "dateRange"]
				}`,
				Run: func(ctx context.Context, p models.ParameterSet) (interface{}, error) {
					return store.CompareVendors(ctx, p.VendorIDA, p.VendorIDB, *p.DateRange)
				},
			},
			models.IntentTrend: {
				Name: models.IntentTrend.ToolName(),
				Schema: `{
					"type": "object",
					"properties": {
						"vendorId": {"type": "string", "pattern": ` + vendorPattern + `},
						"lastNWeeks": {"type": "integer", "minimum": 1, "maximum": 52}
					},
					"required": ["vendorId", "lastNWeeks"]
				}`,
				Run: func(ctx context.Context, p models.ParameterSet) (interface{}, error) {
					return store.VendorTrend(ctx, p.VendorID, p.LastNWeeks)
				},
			},
			models.IntentTopPerformers: {
				Name: models.IntentTopPerformers.ToolName(),
				Schema: `{
					"type": "object",
					"properties": {
						"limit": {"type": "integer", "minimum": 1, "maximum": 100},
						"dateRange": ` + dateRangeSchema + `
					},
					"required": ["limit", "dateRange"]
				}`,
				Run: func(ctx context.Context, p models.ParameterSet) (interface{}, error) {
					return store.TopPerformers(ctx, p.Limit, *p.DateRange)
				},
			},
			models.IntentRejectionAnalysis: {
				Name: models.IntentRejectionAnalysis.ToolName(),
				Schema: `{
					"type": "object",
					"properties": {
						"dateRange": ` + dateRangeSchema + `
					},
					"required": ["dateRange"]
				}`,
				Run: func(ctx context.Context, p models.ParameterSet) (interface{}, error) {
					return store.RejectionAnalysis(ctx, *p.DateRange)
				},
			},
		},
	}
}

// ToolName returns the boundary name for an intent.
func (r *Registry) ToolName(intent models.Intent) string {
	return r.tools[intent].Name
}

// Execute schema-checks the normalized parameters and runs the tool. Every
// failure comes back as an EXECUTION_ERROR carrying the underlying message.
func (r *Registry) Execute(ctx context.Context, intent models.Intent, params models.ParameterSet) (interface{}, error) {
	tool, ok := r.tools[intent]
	if !ok {
		return nil, errors.NewExecutionError(string(intent), fmt.Errorf("no tool registered"))
	}

	if err := r.checkSchema(tool, params); err != nil {
		return nil, errors.NewExecutionError(tool.Name, err)
	}

	result, err := tool.Run(ctx, params)
	if err != nil {
		r.logger.Error("tool execution failed", map[string]interface{}{
			"tool":  tool.Name,
			"error": err.Error(),
		})
		return nil, errors.NewExecutionError(tool.Name, err)
	}

	r.logger.Debug("tool executed", map[string]interface{}{"tool": tool.Name})
	return result, nil
}

func (r *Registry) checkSchema(tool Tool, params models.ParameterSet) error {
	schemaLoader := gojsonschema.NewStringLoader(tool.Schema)
	docLoader := gojsonschema.NewGoLoader(params.ToMap())

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("schema check: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("parameters rejected at tool boundary: %s", strings.Join(msgs, "; "))
	}
	return nil
}
