package models

import (
	"sort"
	"time"
)

// DocType is the declared format of an uploaded document.
type DocType string

const (
	DocTypePDF  DocType = "pdf"
	DocTypeDOCX DocType = "docx"
)

// Valid reports whether t is a supported document type.
func (t DocType) Valid() bool {
	return t == DocTypePDF || t == DocTypeDOCX
}

// Template is a registered, immutable record of an uploaded document's
// extracted text plus its segmented structure.
type Template struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Type      DocType   `json:"type"`
	Content   string    `json:"content"`
	Sections  []Section `json:"sections"`
	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a deep copy of the template. Registries store and return
// clones so callers can never mutate a committed template.
func (t *Template) Clone() *Template {
	if t == nil {
		return nil
	}
	c := *t
	c.Sections = append([]Section(nil), t.Sections...)
	return &c
}

// SortedSections returns the sections ordered ascending by Order.
// The sort is stable: ties keep their original list position.
func (t *Template) SortedSections() []Section {
	sections := append([]Section(nil), t.Sections...)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
	return sections
}
