package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hyperjump/bogoseo/internal/models"
)

func sampleTemplate() *models.Template {
	return &models.Template{
		ID:       "t-1",
		Filename: "plan.docx",
		Type:     models.DocTypeDOCX,
		Sections: []models.Section{
			{Title: "목표", Placeholder: "달성할 목표는 매출 증가입니다.", Order: 0, Type: models.SectionContent},
			{Title: "결론", Placeholder: "[결론 내용 입력]", Order: 1, Type: models.SectionContent},
		},
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"text", OutputText, false},
		{"", OutputText, false},
		{"compact", OutputCompact, false},
		{"json", OutputJSON, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteTemplates_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTemplates(&buf, []*models.Template{sampleTemplate()}, OutputJSON); err != nil {
		t.Fatalf("WriteTemplates: %v", err)
	}
	var decoded []*models.Template
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].ID != "t-1" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestWriteTemplates_Compact(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTemplates(&buf, []*models.Template{sampleTemplate()}, OutputCompact); err != nil {
		t.Fatalf("WriteTemplates: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "t-1") || !strings.Contains(out, "plan.docx") {
		t.Errorf("compact output missing fields: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("compact output should be one line per template: %q", out)
	}
}

func TestWriteTemplates_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTemplates(&buf, []*models.Template{sampleTemplate()}, OutputText); err != nil {
		t.Fatalf("WriteTemplates: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"t-1", "plan.docx", "목표", "결론"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q: %q", want, out)
		}
	}
}

func TestWriteSections(t *testing.T) {
	sections := sampleTemplate().Sections

	var buf bytes.Buffer
	if err := WriteSections(&buf, sections, OutputCompact); err != nil {
		t.Fatalf("WriteSections: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "목표") {
		t.Errorf("first line should be the first section: %q", lines[0])
	}

	buf.Reset()
	if err := WriteSections(&buf, sections, OutputJSON); err != nil {
		t.Fatalf("WriteSections json: %v", err)
	}
	var decoded []models.Section
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Errorf("decoded %d sections, want 2", len(decoded))
	}
}

func TestWriteReports(t *testing.T) {
	reports := []*models.Report{
		{
			ID:       "r-1",
			Title:    "plan 기반 보고서",
			Template: sampleTemplate(),
			Content:  "## 목표\n\n...",
			Status:   models.ReportCompleted,
		},
	}

	var buf bytes.Buffer
	if err := WriteReports(&buf, reports, OutputCompact); err != nil {
		t.Fatalf("WriteReports: %v", err)
	}
	if !strings.Contains(buf.String(), "r-1") || !strings.Contains(buf.String(), "completed") {
		t.Errorf("compact output: %q", buf.String())
	}

	buf.Reset()
	if err := WriteReports(&buf, reports, OutputText); err != nil {
		t.Fatalf("WriteReports text: %v", err)
	}
	if !strings.Contains(buf.String(), "plan.docx") {
		t.Errorf("text output should name the source template: %q", buf.String())
	}
}

func TestWriteReport_Text(t *testing.T) {
	report := &models.Report{
		ID:      "r-1",
		Title:   "분기 보고서",
		Content: "## 목표\n\n본문",
		Status:  models.ReportCompleted,
	}
	var buf bytes.Buffer
	if err := WriteReport(&buf, report, OutputText); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "# 분기 보고서\n") {
		t.Errorf("text output should start with the title heading: %q", out)
	}
	if !strings.Contains(out, "## 목표") {
		t.Errorf("text output should include the content: %q", out)
	}
}
