// Package segment turns flat extracted text into an ordered section list
// using line-local header heuristics.
package segment

import (
	"fmt"
	"strings"

	"github.com/hyperjump/bogoseo/internal/config"
	"github.com/hyperjump/bogoseo/internal/models"
)

// Segmenter detects section structure in plain text. It never fails: any
// input, including the empty string, yields at least one section.
type Segmenter struct {
	predicates          []predicate
	defaultSectionTitle string
	placeholderFormat   string
}

// NewSegmenter creates a segmenter from segmentation config.
func NewSegmenter(cfg *config.SegmentConfig) *Segmenter {
	return &Segmenter{
		predicates:          headerPredicates(cfg.MaxHeaderLength, cfg.Keywords),
		defaultSectionTitle: cfg.DefaultSectionTitle,
		placeholderFormat:   cfg.PlaceholderFormat,
	}
}

// MatchHeader reports whether line matches a header rule and which one.
func (s *Segmenter) MatchHeader(line string) (rule string, ok bool) {
	for _, p := range s.predicates {
		if p.match(line) {
			return p.name, true
		}
	}
	return "", false
}

// scanState is the reducer state: either no open section, or one open
// section accumulating body lines. seeded records whether the open section's
// placeholder has been replaced by a body line (first body line wins).
type scanState struct {
	open      *models.Section
	seeded    bool
	nextOrder int
}

// step consumes one non-blank trimmed line and returns the next state plus
// the section closed by this line, if any.
func (s *Segmenter) step(st scanState, line string) (scanState, *models.Section) {
	if _, ok := s.MatchHeader(line); ok {
		closed := st.open
		st.open = &models.Section{
			Title:       line,
			Placeholder: s.placeholderFor(line),
			Order:       st.nextOrder,
			Type:        models.SectionHeader,
		}
		st.seeded = false
		st.nextOrder++
		return st, closed
	}
	if st.open != nil {
		// A body line under the open header promotes it to content.
		st.open.Type = models.SectionContent
		if !st.seeded {
			st.open.Placeholder = line
			st.seeded = true
		}
	}
	// Body text before the first header is discarded.
	return st, nil
}

// Segment splits text into ordered sections. Order values are assigned in
// detection order starting at 0; the result is never empty.
func (s *Segmenter) Segment(text string) []models.Section {
	sections := make([]models.Section, 0)
	st := scanState{}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		var closed *models.Section
		st, closed = s.step(st, line)
		if closed != nil {
			sections = append(sections, *closed)
		}
	}
	if st.open != nil {
		sections = append(sections, *st.open)
	}
	if len(sections) == 0 {
		sections = append(sections, s.defaultSection())
	}
	return sections
}

// defaultSection is the single whole-document section emitted when no
// headers are detected.
func (s *Segmenter) defaultSection() models.Section {
	return models.Section{
		Title:       s.defaultSectionTitle,
		Placeholder: s.placeholderFor(s.defaultSectionTitle),
		Order:       0,
		Type:        models.SectionContent,
	}
}

func (s *Segmenter) placeholderFor(title string) string {
	return fmt.Sprintf(s.placeholderFormat, title)
}
