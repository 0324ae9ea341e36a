// Package ingest turns uploaded or watched documents into registered templates.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/bogoseo/internal/extract"
	"github.com/hyperjump/bogoseo/internal/fileid"
	"github.com/hyperjump/bogoseo/internal/models"
	"github.com/hyperjump/bogoseo/internal/registry"
	"github.com/hyperjump/bogoseo/internal/segment"
)

// Ingestor runs the upload pipeline: extract text, segment into sections,
// commit a template. A failed extraction registers nothing; a single
// ingestion produces exactly one template insertion.
type Ingestor struct {
	templates registry.TemplateRegistry
	extractor *extract.Extractor
	segmenter *segment.Segmenter
	logger    *zap.Logger
}

// IngestorOption configures an Ingestor.
type IngestorOption func(*Ingestor)

// WithLogger sets a logger for debug output (file ingested, template replaced, etc.).
func WithLogger(l *zap.Logger) IngestorOption {
	return func(ing *Ingestor) { ing.logger = l }
}

// NewIngestor creates an ingestor with the given dependencies.
func NewIngestor(
	templates registry.TemplateRegistry,
	extractor *extract.Extractor,
	segmenter *segment.Segmenter,
	opts ...IngestorOption,
) *Ingestor {
	ing := &Ingestor{
		templates: templates,
		extractor: extractor,
		segmenter: segmenter,
	}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// IngestBytes extracts and segments content declared by filename's extension
// and commits the resulting template under a fresh id. Returns the committed
// template. Extraction failures (extract.ErrUnsupportedFormat,
// *extract.CorruptDocumentError) reject the upload with nothing registered.
func (ing *Ingestor) IngestBytes(ctx context.Context, filename string, content []byte) (*models.Template, error) {
	template, err := ing.build(filename, content)
	if err != nil {
		return nil, err
	}
	id, err := ing.templates.Put(ctx, template)
	if err != nil {
		return nil, fmt.Errorf("failed to register template: %w", err)
	}
	template.ID = id
	if ing.logger != nil {
		ing.logger.Debug("template ingested",
			zap.String("template_id", id),
			zap.String("filename", filename),
			zap.Int("sections", len(template.Sections)))
	}
	return template, nil
}

// IngestFile ingests the file at path under a path-derived stable id, so a
// watched file that changes replaces its template instead of duplicating it.
func (ing *Ingestor) IngestFile(ctx context.Context, path string) (*models.Template, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	text, docType, err := ing.extractor.Extract(abs)
	if err != nil {
		return nil, err
	}
	template := ing.assemble(filepath.Base(abs), docType, text)
	id := fileid.TemplateID(abs)
	if err := ing.templates.PutWithID(ctx, id, template); err != nil {
		return nil, fmt.Errorf("failed to register template: %w", err)
	}
	template.ID = id
	if ing.logger != nil {
		ing.logger.Debug("file ingested", zap.String("template_id", id), zap.String("path", abs))
	}
	return template, nil
}

// Remove deletes the template registered for the watched file at path.
func (ing *Ingestor) Remove(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	return ing.templates.Delete(ctx, fileid.TemplateID(abs))
}

func (ing *Ingestor) build(filename string, content []byte) (*models.Template, error) {
	text, docType, err := ing.extractor.ExtractBytes(content, filepath.Ext(filename))
	if err != nil {
		return nil, err
	}
	return ing.assemble(filename, docType, text), nil
}

func (ing *Ingestor) assemble(filename string, docType models.DocType, text string) *models.Template {
	return &models.Template{
		Filename:  filename,
		Type:      docType,
		Content:   text,
		Sections:  ing.segmenter.Segment(text),
		CreatedAt: time.Now(),
	}
}
