// Package models defines core data structures for templates, sections, and reports.
package models

// SectionType classifies a template section.
type SectionType string

const (
	// SectionHeader is a detected header with no body line observed under it yet.
	SectionHeader SectionType = "header"
	// SectionContent is a header with at least one body line under it.
	SectionContent SectionType = "content"
	// SectionTable marks a section rendered as a sample table. Never auto-detected.
	SectionTable SectionType = "table"
	// SectionList marks a section rendered as a sample list. Never auto-detected.
	SectionList SectionType = "list"
	// SectionImage marks an image placeholder section. Never auto-detected.
	SectionImage SectionType = "image"
)

// Valid reports whether t is a known section type.
func (t SectionType) Valid() bool {
	switch t {
	case SectionHeader, SectionContent, SectionTable, SectionList, SectionImage:
		return true
	}
	return false
}

// Section is one structural unit of a template: a detected header and its seed body text.
type Section struct {
	Title string `json:"title"`
	// Placeholder is seed/sample body text: the first non-header line observed
	// under the header, or a synthesized default.
	Placeholder string      `json:"placeholder,omitempty"`
	Order       int         `json:"order"`
	Type        SectionType `json:"type"`
}
