// Package registry provides keyed storage for templates and reports behind
// swappable in-memory and SQLite backends.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyperjump/bogoseo/internal/models"
)

// ErrTemplateNotFound is returned when a template id is unknown.
var ErrTemplateNotFound = errors.New("template not found")

// ErrReportNotFound is returned when a report id is unknown.
var ErrReportNotFound = errors.New("report not found")

// TemplateRegistry stores templates keyed by id, preserving insertion order.
type TemplateRegistry interface {
	// Put validates and stores a copy of t under a fresh unique id.
	Put(ctx context.Context, t *models.Template) (string, error)
	// PutWithID stores a copy of t under a caller-chosen id, replacing any
	// previous template with that id. Used for watched files, where the id
	// is derived from the path so re-ingestion replaces instead of duplicating.
	PutWithID(ctx context.Context, id string, t *models.Template) error
	Get(ctx context.Context, id string) (*models.Template, error)
	List(ctx context.Context) ([]*models.Template, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// ReportRegistry stores reports keyed by id, preserving insertion order.
// Only attempts that reached processing or completed are ever committed;
// failed attempts return an error response and are never stored.
type ReportRegistry interface {
	Put(ctx context.Context, r *models.Report) (string, error)
	Get(ctx context.Context, id string) (*models.Report, error)
	List(ctx context.Context) ([]*models.Report, error)
	Count(ctx context.Context) (int64, error)
}

// Store bundles both registries over one backend.
type Store interface {
	Templates() TemplateRegistry
	Reports() ReportRegistry
	Close() error
}

// ValidateTemplate enforces the template invariants at the registry boundary:
// a known document type, a never-empty section list, and non-negative order
// values with no duplicates.
func ValidateTemplate(t *models.Template) error {
	if t == nil {
		return fmt.Errorf("template is nil")
	}
	if !t.Type.Valid() {
		return fmt.Errorf("invalid document type %q", t.Type)
	}
	if len(t.Sections) == 0 {
		return fmt.Errorf("template %q has no sections", t.Filename)
	}
	seen := make(map[int]bool, len(t.Sections))
	for _, sec := range t.Sections {
		if sec.Order < 0 {
			return fmt.Errorf("section %q has negative order %d", sec.Title, sec.Order)
		}
		if seen[sec.Order] {
			return fmt.Errorf("duplicate section order %d", sec.Order)
		}
		seen[sec.Order] = true
	}
	return nil
}

// validateReport rejects reports outside the committable lifecycle states.
func validateReport(r *models.Report) error {
	if r == nil {
		return fmt.Errorf("report is nil")
	}
	if r.Status != models.ReportProcessing && r.Status != models.ReportCompleted {
		return fmt.Errorf("report status %q is not committable", r.Status)
	}
	return nil
}
