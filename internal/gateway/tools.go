package gateway

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/hyperjump/bogoseo/internal/models"
)

// GenerateInput is the input schema for the generate_report tool.
type GenerateInput struct {
	TemplateID string `json:"template_id" jsonschema:"id of the registered template to expand"`
	Title      string `json:"title,omitempty" jsonschema:"report title (defaults to one derived from the template filename)"`
	Prompt     string `json:"prompt" jsonschema:"free-text prompt describing the report to synthesize"`
}

// GenerateOutput is the output schema for the generate_report tool. On
// failure ReportID is empty and Error carries the reason; the attempt is
// never stored.
type GenerateOutput struct {
	ReportID string `json:"report_id"`
	Status   string `json:"status"`
	Content  string `json:"content,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ListTemplatesOutput is the output schema for the list_templates tool.
type ListTemplatesOutput struct {
	Templates []TemplateSummary `json:"templates"`
	Count     int               `json:"count"`
}

// TemplateSummary describes one registered template without its full text.
type TemplateSummary struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Type      string    `json:"type"`
	Sections  int       `json:"sections"`
	CreatedAt time.Time `json:"created_at"`
}

// GetReportInput is the input schema for the get_report tool.
type GetReportInput struct {
	ReportID string `json:"report_id" jsonschema:"id of a previously generated report"`
}

// GetReportOutput is the output schema for the get_report tool.
type GetReportOutput struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Content     string     `json:"content"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (g *Gateway) registerTools() {
	mcp.AddTool(g.server, &mcp.Tool{
		Name:        "generate_report",
		Description: "Generate a structured report from a registered template and a prompt",
	}, g.handleGenerate)
	mcp.AddTool(g.server, &mcp.Tool{
		Name:        "list_templates",
		Description: "List registered document templates",
	}, g.handleListTemplates)
	mcp.AddTool(g.server, &mcp.Tool{
		Name:        "get_report",
		Description: "Fetch a previously generated report by id",
	}, g.handleGetReport)
}

// handleGenerate handles the generate_report tool invocation. Failures are
// returned as a structured failed output rather than a protocol error, so
// the caller always sees the boundary's {report_id, status, error} shape.
func (g *Gateway) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, GenerateOutput, error) {
	req := models.GenerateRequest{
		TemplateID: input.TemplateID,
		Title:      input.Title,
		Prompt:     input.Prompt,
	}
	if err := req.Validate(); err != nil {
		return nil, failedOutput(err.Error()), nil
	}
	template, err := g.store.Templates().Get(ctx, req.TemplateID)
	if err != nil {
		return nil, failedOutput(err.Error()), nil
	}
	report, err := g.synthesizer.Generate(template, req.Title, req.Prompt, nil)
	if err != nil {
		if g.logger != nil {
			g.logger.Error("gateway synthesis failed", zap.Error(err))
		}
		return nil, failedOutput(err.Error()), nil
	}
	id, err := g.store.Reports().Put(ctx, report)
	if err != nil {
		if g.logger != nil {
			g.logger.Error("gateway report commit failed", zap.Error(err))
		}
		return nil, failedOutput(err.Error()), nil
	}
	return nil, GenerateOutput{
		ReportID: id,
		Status:   string(models.CollapseStatus(report.Status)),
		Content:  report.Content,
	}, nil
}

func failedOutput(reason string) GenerateOutput {
	return GenerateOutput{Status: string(models.GatewayFailed), Error: reason}
}

// handleListTemplates handles the list_templates tool invocation.
func (g *Gateway) handleListTemplates(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListTemplatesOutput, error) {
	templates, err := g.store.Templates().List(ctx)
	if err != nil {
		return nil, ListTemplatesOutput{}, err
	}
	out := ListTemplatesOutput{
		Templates: make([]TemplateSummary, len(templates)),
		Count:     len(templates),
	}
	for i, t := range templates {
		out.Templates[i] = TemplateSummary{
			ID:        t.ID,
			Filename:  t.Filename,
			Type:      string(t.Type),
			Sections:  len(t.Sections),
			CreatedAt: t.CreatedAt,
		}
	}
	return nil, out, nil
}

// handleGetReport handles the get_report tool invocation.
func (g *Gateway) handleGetReport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetReportInput,
) (*mcp.CallToolResult, GetReportOutput, error) {
	report, err := g.store.Reports().Get(ctx, input.ReportID)
	if err != nil {
		return nil, GetReportOutput{}, err
	}
	return nil, GetReportOutput{
		ID:          report.ID,
		Title:       report.Title,
		Status:      string(report.Status),
		Content:     report.Content,
		CreatedAt:   report.CreatedAt,
		CompletedAt: report.CompletedAt,
	}, nil
}
