package models

import "time"

// ReportStatus is the lifecycle state of a report.
type ReportStatus string

const (
	// ReportPending is reserved for callers that queue before starting;
	// synthesis itself always starts in processing.
	ReportPending    ReportStatus = "pending"
	ReportProcessing ReportStatus = "processing"
	ReportCompleted  ReportStatus = "completed"
	ReportFailed     ReportStatus = "failed"
)

// Report is one synthesis attempt's output, bound to a template snapshot.
type Report struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// Template is a snapshot of the template at generation time, not a live
	// link: later template deletion or replacement never changes a report.
	Template    *Template    `json:"template"`
	Content     string       `json:"content"`
	Status      ReportStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// GatewayStatus is the collapsed status exposed at the generation boundary.
type GatewayStatus string

const (
	GatewayStarted   GatewayStatus = "started"
	GatewayCompleted GatewayStatus = "completed"
	GatewayFailed    GatewayStatus = "failed"
)

// CollapseStatus maps the internal report lifecycle to the boundary status.
func CollapseStatus(s ReportStatus) GatewayStatus {
	switch s {
	case ReportCompleted:
		return GatewayCompleted
	case ReportFailed:
		return GatewayFailed
	default:
		return GatewayStarted
	}
}
