// Package synth assembles report content from a template's sections.
//
// Synthesis is a deterministic template expansion: the per-type block shapes
// below are the contract a real generation backend must slot into later by
// replacing only the content branch, never the headings or footer.
package synth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/bogoseo/internal/config"
	"github.com/hyperjump/bogoseo/internal/models"
)

// SynthesisError wraps any failure during content assembly. The attempt is
// terminal; no partial report is ever committed.
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string { return fmt.Sprintf("synthesis failed: %v", e.Err) }
func (e *SynthesisError) Unwrap() error { return e.Err }

// detailHeadingSuffix is appended to the title for header-typed sections'
// level-3 sub-heading.
const detailHeadingSuffix = " 상세"

// contentBlockFormat renders the deterministic stand-in for model-generated
// prose: section title first, caller prompt second.
const contentBlockFormat = "[%s에 대한 내용 (프롬프트: %s)]"

// sampleTable is the fixed two-row table body for table-typed sections.
const sampleTable = `| 항목 | 내용 | 비고 |
| --- | --- | --- |
| 항목 1 | 내용 1 | - |
| 항목 2 | 내용 2 | - |`

// sampleList is the fixed three-bullet body for list-typed sections.
const sampleList = `- 항목 1
- 항목 2
- 항목 3`

// Synthesizer expands a template plus a prompt into report content, driving
// the report through processing to completed. It never touches a registry;
// committing the result is the caller's job, which keeps generation
// side-effect-free and atomic.
type Synthesizer struct {
	cfg    *config.GenerateConfig
	logger *zap.Logger
}

// SynthesizerOption configures a Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) SynthesizerOption {
	return func(s *Synthesizer) { s.logger = l }
}

// NewSynthesizer creates a synthesizer with the given generation config.
func NewSynthesizer(cfg *config.GenerateConfig, opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate builds a completed report from template and prompt. The template
// is read-only: a snapshot is taken up front so later caller-side mutation
// cannot change the report. genContext is reserved for generation backends
// and does not affect the deterministic expansion.
func (s *Synthesizer) Generate(template *models.Template, title, prompt string, genContext map[string]interface{}) (*models.Report, error) {
	if template == nil {
		return nil, &SynthesisError{Err: fmt.Errorf("template is nil")}
	}
	snapshot := template.Clone()
	if title == "" {
		title = fmt.Sprintf(s.cfg.DefaultTitleFormat, snapshot.Filename)
	}
	report := &models.Report{
		ID:        uuid.New().String(),
		Title:     title,
		Template:  snapshot,
		Status:    models.ReportProcessing,
		CreatedAt: time.Now(),
	}

	sections := snapshot.SortedSections()
	if len(sections) == 0 {
		// Enforced at the registry boundary; kept as a terminal check so a
		// malformed caller-built template fails instead of emitting an empty report.
		return nil, &SynthesisError{Err: fmt.Errorf("template %q has no sections", snapshot.Filename)}
	}

	var b strings.Builder
	for _, sec := range sections {
		if err := writeSection(&b, sec, prompt); err != nil {
			return nil, &SynthesisError{Err: err}
		}
	}
	now := time.Now()
	writeFooter(&b, now, snapshot.Filename)

	report.Content = b.String()
	report.Status = models.ReportCompleted
	report.CompletedAt = &now
	if s.logger != nil {
		s.logger.Debug("report synthesized",
			zap.String("report_id", report.ID),
			zap.String("template_id", snapshot.ID),
			zap.Int("sections", len(sections)))
	}
	return report, nil
}

// writeSection appends one section's expansion: a level-2 heading, a detail
// sub-heading for header-typed sections, the placeholder line, and the
// type-specific body block.
func writeSection(b *strings.Builder, sec models.Section, prompt string) error {
	if !sec.Type.Valid() {
		return fmt.Errorf("section %q has unknown type %q", sec.Title, sec.Type)
	}
	fmt.Fprintf(b, "## %s\n\n", sec.Title)
	if sec.Type == models.SectionHeader {
		fmt.Fprintf(b, "### %s%s\n\n", sec.Title, detailHeadingSuffix)
	}
	if sec.Placeholder != "" {
		fmt.Fprintf(b, "%s\n\n", sec.Placeholder)
	}
	switch sec.Type {
	case models.SectionContent:
		fmt.Fprintf(b, contentBlockFormat+"\n\n", sec.Title, prompt)
	case models.SectionTable:
		fmt.Fprintf(b, "%s\n\n", sampleTable)
	case models.SectionList:
		fmt.Fprintf(b, "%s\n\n", sampleList)
	case models.SectionHeader, models.SectionImage:
		// No body block beyond the placeholder line.
	}
	return nil
}

// writeFooter appends the closing footer with generation time and source filename.
func writeFooter(b *strings.Builder, at time.Time, filename string) {
	fmt.Fprintf(b, "---\n생성 일시: %s\n원본 문서: %s\n", at.Format("2006-01-02 15:04:05"), filename)
}
