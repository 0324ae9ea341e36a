package models

import "fmt"

// GenerateRequest is a report generation request against a registered template.
type GenerateRequest struct {
	TemplateID string                 `json:"template_id"`
	Title      string                 `json:"title,omitempty"`
	Prompt     string                 `json:"prompt"`
	Context    map[string]interface{} `json:"context,omitempty"`
}

// Validate ensures the request has the required fields.
func (r *GenerateRequest) Validate() error {
	if r.TemplateID == "" {
		return fmt.Errorf("template_id cannot be empty")
	}
	if r.Prompt == "" {
		return fmt.Errorf("prompt cannot be empty")
	}
	return nil
}

// GenerateResponse is the generation boundary response. On failure ReportID
// is empty and Error carries the reason; the failed attempt is never stored.
type GenerateResponse struct {
	ReportID string        `json:"report_id"`
	Status   GatewayStatus `json:"status"`
	Content  string        `json:"content,omitempty"`
	Error    string        `json:"error,omitempty"`
}
