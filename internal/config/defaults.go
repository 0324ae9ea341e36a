package config

// DefaultKeywords is the default header keyword set. Korean structural terms
// with their English counterparts; override per deployment locale via config.
var DefaultKeywords = []string{
	"목표", "objective",
	"개요", "overview",
	"배경", "background",
	"결론", "conclusion",
	"요약", "summary",
}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Gateway.Addr == "" {
		cfg.Gateway.Addr = "localhost:8081"
	}
	if cfg.Segment.MaxHeaderLength == 0 {
		cfg.Segment.MaxHeaderLength = 100
	}
	if cfg.Segment.Keywords == nil {
		cfg.Segment.Keywords = append([]string(nil), DefaultKeywords...)
	}
	if cfg.Segment.DefaultSectionTitle == "" {
		cfg.Segment.DefaultSectionTitle = "전체 문서"
	}
	if cfg.Segment.PlaceholderFormat == "" {
		cfg.Segment.PlaceholderFormat = "[%s 내용 입력]"
	}
	if cfg.Generate.DefaultTitleFormat == "" {
		cfg.Generate.DefaultTitleFormat = "%s 기반 보고서"
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".pdf", ".docx"}
	}
	// Recursive defaults to true when unset (nil).
	if len(cfg.Watch.Directories) > 0 && cfg.Watch.Recursive == nil {
		t := true
		cfg.Watch.Recursive = &t
	}
}
