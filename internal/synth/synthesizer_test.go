package synth

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/hyperjump/bogoseo/internal/config"
	"github.com/hyperjump/bogoseo/internal/models"
)

func testSynthesizer() *Synthesizer {
	return NewSynthesizer(&config.GenerateConfig{DefaultTitleFormat: "%s 기반 보고서"})
}

func testTemplate() *models.Template {
	return &models.Template{
		ID:       "t-1",
		Filename: "plan.docx",
		Type:     models.DocTypeDOCX,
		Sections: []models.Section{
			{Title: "1. 목표", Placeholder: "달성할 목표는 매출 증가입니다.", Order: 0, Type: models.SectionContent},
			{Title: "2. 결론", Placeholder: "요약하면 긍정적입니다.", Order: 1, Type: models.SectionContent},
		},
	}
}

// stripTimestamp removes the generation-time line so two reports can be
// compared structurally.
var timestampLine = regexp.MustCompile(`생성 일시: .*\n`)

func stripTimestamp(content string) string {
	return timestampLine.ReplaceAllString(content, "생성 일시: X\n")
}

func TestGenerate_completedReport(t *testing.T) {
	s := testSynthesizer()
	report, err := s.Generate(testTemplate(), "분기 보고서", "매출 분석", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if report.ID == "" {
		t.Error("report id should be set")
	}
	if report.Title != "분기 보고서" {
		t.Errorf("title = %q", report.Title)
	}
	if report.Status != models.ReportCompleted {
		t.Errorf("status = %q, want completed", report.Status)
	}
	if report.CompletedAt == nil {
		t.Error("completed_at should be set")
	}
	if report.Template == nil || report.Template.ID != "t-1" {
		t.Error("report should snapshot its template")
	}
}

func TestGenerate_oneLevelTwoHeadingPerSectionInOrder(t *testing.T) {
	s := testSynthesizer()
	template := &models.Template{
		Filename: "plan.docx",
		Type:     models.DocTypeDOCX,
		Sections: []models.Section{
			// Deliberately out of list order; Order must win.
			{Title: "셋째", Order: 2, Type: models.SectionContent},
			{Title: "첫째", Order: 0, Type: models.SectionContent},
			{Title: "둘째", Order: 1, Type: models.SectionContent},
		},
	}
	report, err := s.Generate(template, "", "프롬프트", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	headings := regexp.MustCompile(`(?m)^## .*$`).FindAllString(report.Content, -1)
	if len(headings) != 3 {
		t.Fatalf("got %d level-2 headings, want 3: %v", len(headings), headings)
	}
	want := []string{"## 첫째", "## 둘째", "## 셋째"}
	for i, h := range want {
		if headings[i] != h {
			t.Errorf("heading %d = %q, want %q", i, headings[i], h)
		}
	}
}

func TestGenerate_deterministicModuloTimestamp(t *testing.T) {
	s := testSynthesizer()
	template := testTemplate()

	r1, err := s.Generate(template, "제목", "같은 프롬프트", nil)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := s.Generate(template, "제목", "같은 프롬프트", nil)
	if err != nil {
		t.Fatal(err)
	}
	if r1.ID == r2.ID {
		t.Error("two reports must have distinct ids")
	}
	if stripTimestamp(r1.Content) != stripTimestamp(r2.Content) {
		t.Errorf("content should be identical modulo timestamp:\n%s\n---\n%s", r1.Content, r2.Content)
	}
}

func TestGenerate_defaultTitleFromFilename(t *testing.T) {
	s := testSynthesizer()
	report, err := s.Generate(testTemplate(), "", "프롬프트", nil)
	if err != nil {
		t.Fatal(err)
	}
	if report.Title != "plan.docx 기반 보고서" {
		t.Errorf("title = %q", report.Title)
	}
}

func TestGenerate_perTypeBlocks(t *testing.T) {
	s := testSynthesizer()
	template := &models.Template{
		Filename: "mixed.docx",
		Type:     models.DocTypeDOCX,
		Sections: []models.Section{
			{Title: "본문", Placeholder: "p1", Order: 0, Type: models.SectionContent},
			{Title: "표", Placeholder: "p2", Order: 1, Type: models.SectionTable},
			{Title: "목록", Placeholder: "p3", Order: 2, Type: models.SectionList},
			{Title: "헤더만", Placeholder: "p4", Order: 3, Type: models.SectionHeader},
			{Title: "그림", Placeholder: "p5", Order: 4, Type: models.SectionImage},
		},
	}
	report, err := s.Generate(template, "", "내 프롬프트", nil)
	if err != nil {
		t.Fatal(err)
	}
	content := report.Content

	if !strings.Contains(content, "[본문에 대한 내용 (프롬프트: 내 프롬프트)]") {
		t.Errorf("content block missing:\n%s", content)
	}
	if !strings.Contains(content, "| 항목 | 내용 | 비고 |") || !strings.Contains(content, "| 항목 1 | 내용 1 | - |") {
		t.Errorf("table block missing:\n%s", content)
	}
	if !strings.Contains(content, "- 항목 1\n- 항목 2\n- 항목 3") {
		t.Errorf("list block missing:\n%s", content)
	}
	if !strings.Contains(content, "### 헤더만 상세") {
		t.Errorf("header detail sub-heading missing:\n%s", content)
	}
	// Image and header sections carry only their placeholder beyond the headings.
	if strings.Contains(content, "[그림에 대한 내용") {
		t.Errorf("image section must not get a content block:\n%s", content)
	}
	for _, p := range []string{"p1", "p2", "p3", "p4", "p5"} {
		if !strings.Contains(content, p) {
			t.Errorf("placeholder %q missing", p)
		}
	}
}

func TestGenerate_footer(t *testing.T) {
	s := testSynthesizer()
	report, err := s.Generate(testTemplate(), "", "프롬프트", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(report.Content, "---\n생성 일시: ") {
		t.Errorf("footer missing:\n%s", report.Content)
	}
	if !strings.Contains(report.Content, "원본 문서: plan.docx") {
		t.Errorf("footer should name the source document:\n%s", report.Content)
	}
}

func TestGenerate_nilTemplate(t *testing.T) {
	s := testSynthesizer()
	_, err := s.Generate(nil, "", "프롬프트", nil)
	var synthErr *SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("error = %v, want SynthesisError", err)
	}
}

func TestGenerate_emptySections(t *testing.T) {
	s := testSynthesizer()
	template := &models.Template{Filename: "empty.docx", Type: models.DocTypeDOCX}
	_, err := s.Generate(template, "", "프롬프트", nil)
	var synthErr *SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("error = %v, want SynthesisError", err)
	}
}

func TestGenerate_invalidSectionType(t *testing.T) {
	s := testSynthesizer()
	template := &models.Template{
		Filename: "bad.docx",
		Type:     models.DocTypeDOCX,
		Sections: []models.Section{
			{Title: "이상한 타입", Order: 0, Type: "hologram"},
		},
	}
	_, err := s.Generate(template, "", "프롬프트", nil)
	var synthErr *SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("error = %v, want SynthesisError", err)
	}
}

func TestGenerate_snapshotIsolatedFromCallerMutation(t *testing.T) {
	s := testSynthesizer()
	template := testTemplate()
	report, err := s.Generate(template, "", "프롬프트", nil)
	if err != nil {
		t.Fatal(err)
	}
	template.Sections[0].Title = "변조됨"
	if report.Template.Sections[0].Title != "1. 목표" {
		t.Error("report snapshot must not observe caller mutation")
	}
}
