package registry

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hyperjump/bogoseo/internal/models"
)

// storeFactories lets every contract test run against both backends.
func storeFactories(t *testing.T) map[string]func(t *testing.T) Store {
	t.Helper()
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store {
			return NewMemoryStore()
		},
		"sqlite": func(t *testing.T) Store {
			store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "bogoseo.db"))
			if err != nil {
				t.Fatalf("NewSQLiteStore: %v", err)
			}
			t.Cleanup(func() { _ = store.Close() })
			return store
		},
	}
}

func validTemplate(filename string) *models.Template {
	return &models.Template{
		Filename: filename,
		Type:     models.DocTypeDOCX,
		Content:  "1. 목표\n본문",
		Sections: []models.Section{
			{Title: "1. 목표", Placeholder: "본문", Order: 0, Type: models.SectionContent},
		},
	}
}

func validReport(title string) *models.Report {
	return &models.Report{
		Title:    title,
		Template: validTemplate("plan.docx"),
		Content:  "## 1. 목표\n\n본문\n",
		Status:   models.ReportCompleted,
	}
}

func TestTemplateRegistry_roundtrip(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			reg := newStore(t).Templates()

			id, err := reg.Put(ctx, validTemplate("plan.docx"))
			if err != nil {
				t.Fatalf("Put: %v", err)
			}
			if id == "" {
				t.Fatal("Put should assign an id")
			}

			got, err := reg.Get(ctx, id)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Filename != "plan.docx" || got.ID != id {
				t.Errorf("got = %+v", got)
			}
			if len(got.Sections) != 1 || got.Sections[0].Title != "1. 목표" {
				t.Errorf("sections = %+v", got.Sections)
			}
			if got.CreatedAt.IsZero() {
				t.Error("created_at should be backfilled")
			}

			count, err := reg.Count(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if count != 1 {
				t.Errorf("count = %d", count)
			}
		})
	}
}

func TestTemplateRegistry_listPreservesInsertionOrder(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			reg := newStore(t).Templates()

			var ids []string
			for i := 0; i < 5; i++ {
				id, err := reg.Put(ctx, validTemplate(fmt.Sprintf("doc-%d.docx", i)))
				if err != nil {
					t.Fatal(err)
				}
				ids = append(ids, id)
			}

			list, err := reg.List(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(list) != 5 {
				t.Fatalf("len = %d", len(list))
			}
			for i, tmpl := range list {
				if tmpl.ID != ids[i] {
					t.Errorf("list[%d].ID = %s, want %s", i, tmpl.ID, ids[i])
				}
			}
		})
	}
}

func TestTemplateRegistry_putWithIDReplaces(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			reg := newStore(t).Templates()

			const id = "file:abc123"
			if err := reg.PutWithID(ctx, id, validTemplate("v1.docx")); err != nil {
				t.Fatalf("PutWithID: %v", err)
			}
			if err := reg.PutWithID(ctx, id, validTemplate("v2.docx")); err != nil {
				t.Fatalf("PutWithID replace: %v", err)
			}

			got, err := reg.Get(ctx, id)
			if err != nil {
				t.Fatal(err)
			}
			if got.Filename != "v2.docx" {
				t.Errorf("filename = %q, want replacement", got.Filename)
			}
			count, _ := reg.Count(ctx)
			if count != 1 {
				t.Errorf("count = %d, replacement must not duplicate", count)
			}

			if err := reg.PutWithID(ctx, "", validTemplate("x.docx")); err == nil {
				t.Error("empty id should be rejected")
			}
		})
	}
}

func TestTemplateRegistry_notFoundAndDelete(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			reg := newStore(t).Templates()

			if _, err := reg.Get(ctx, "nope"); !errors.Is(err, ErrTemplateNotFound) {
				t.Errorf("Get unknown: %v", err)
			}
			if err := reg.Delete(ctx, "nope"); !errors.Is(err, ErrTemplateNotFound) {
				t.Errorf("Delete unknown: %v", err)
			}

			id, err := reg.Put(ctx, validTemplate("plan.docx"))
			if err != nil {
				t.Fatal(err)
			}
			if err := reg.Delete(ctx, id); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := reg.Get(ctx, id); !errors.Is(err, ErrTemplateNotFound) {
				t.Errorf("Get after delete: %v", err)
			}
			list, err := reg.List(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(list) != 0 {
				t.Errorf("list after delete = %v", list)
			}
		})
	}
}

func TestTemplateRegistry_invariantsEnforcedAtPut(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			reg := newStore(t).Templates()

			tests := []struct {
				name     string
				template *models.Template
			}{
				{"nil template", nil},
				{"invalid doc type", &models.Template{
					Filename: "x.hwp", Type: "hwp",
					Sections: []models.Section{{Title: "a", Order: 0, Type: models.SectionContent}},
				}},
				{"empty sections", &models.Template{
					Filename: "x.docx", Type: models.DocTypeDOCX,
				}},
				{"negative order", &models.Template{
					Filename: "x.docx", Type: models.DocTypeDOCX,
					Sections: []models.Section{{Title: "a", Order: -1, Type: models.SectionContent}},
				}},
				{"duplicate order", &models.Template{
					Filename: "x.docx", Type: models.DocTypeDOCX,
					Sections: []models.Section{
						{Title: "a", Order: 0, Type: models.SectionContent},
						{Title: "b", Order: 0, Type: models.SectionContent},
					},
				}},
			}
			for _, tt := range tests {
				if _, err := reg.Put(ctx, tt.template); err == nil {
					t.Errorf("%s: Put should fail", tt.name)
				}
			}
			count, _ := reg.Count(ctx)
			if count != 0 {
				t.Errorf("rejected templates must not be stored, count = %d", count)
			}
		})
	}
}

func TestMemoryTemplates_defensiveCopies(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryStore().Templates()

	original := validTemplate("plan.docx")
	id, err := reg.Put(ctx, original)
	if err != nil {
		t.Fatal(err)
	}

	// Mutating the input after Put must not affect the stored copy.
	original.Sections[0].Title = "변조1"
	got1, err := reg.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got1.Sections[0].Title != "1. 목표" {
		t.Error("stored template observed caller mutation of input")
	}

	// Mutating a returned copy must not affect later reads.
	got1.Sections[0].Title = "변조2"
	got2, err := reg.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got2.Sections[0].Title != "1. 목표" {
		t.Error("stored template observed mutation of a returned copy")
	}
}

func TestMemoryTemplates_concurrentPuts(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryStore().Templates()

	var wg sync.WaitGroup
	const n = 50
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := reg.Put(ctx, validTemplate(fmt.Sprintf("doc-%d.docx", i))); err != nil {
				t.Errorf("Put: %v", err)
			}
		}(i)
	}
	wg.Wait()

	count, err := reg.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != n {
		t.Errorf("count = %d, want %d", count, n)
	}
}

func TestReportRegistry_roundtrip(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			reg := newStore(t).Reports()

			report := validReport("분기 보고서")
			id, err := reg.Put(ctx, report)
			if err != nil {
				t.Fatalf("Put: %v", err)
			}
			if id == "" {
				t.Fatal("Put should assign an id")
			}

			got, err := reg.Get(ctx, id)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Title != "분기 보고서" || got.Status != models.ReportCompleted {
				t.Errorf("got = %+v", got)
			}
			if got.Template == nil || got.Template.Filename != "plan.docx" {
				t.Error("template snapshot should round-trip")
			}

			list, err := reg.List(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(list) != 1 {
				t.Errorf("list = %d", len(list))
			}
			if _, err := reg.Get(ctx, "nope"); !errors.Is(err, ErrReportNotFound) {
				t.Errorf("Get unknown: %v", err)
			}
		})
	}
}

func TestReportRegistry_rejectsNonCommittableStatuses(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			reg := newStore(t).Reports()

			for _, status := range []models.ReportStatus{models.ReportPending, models.ReportFailed, "bogus"} {
				report := validReport("x")
				report.Status = status
				if _, err := reg.Put(ctx, report); err == nil {
					t.Errorf("status %q should not be committable", status)
				}
			}
			if _, err := reg.Put(ctx, nil); err == nil {
				t.Error("nil report should be rejected")
			}
			count, _ := reg.Count(ctx)
			if count != 0 {
				t.Errorf("rejected reports must not be stored, count = %d", count)
			}
		})
	}
}

func TestReportRegistry_processingIsCommittable(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryStore().Reports()

	report := validReport("진행 중")
	report.Status = models.ReportProcessing
	if _, err := reg.Put(ctx, report); err != nil {
		t.Errorf("processing should be committable: %v", err)
	}
}

func TestDiskUsageBytes(t *testing.T) {
	if n, err := DiskUsageBytes(""); err != nil || n != 0 {
		t.Errorf("empty path: (%d, %v)", n, err)
	}
	if n, err := DiskUsageBytes(filepath.Join(t.TempDir(), "missing.db")); err != nil || n != 0 {
		t.Errorf("missing path: (%d, %v)", n, err)
	}

	dbPath := filepath.Join(t.TempDir(), "b.db")
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	n, err := DiskUsageBytes(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if n <= 0 {
		t.Errorf("existing database should have positive size, got %d", n)
	}
}
