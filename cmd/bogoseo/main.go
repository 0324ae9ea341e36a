// Package main is the Bogoseo CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/bogoseo/internal/cli"
	"github.com/hyperjump/bogoseo/internal/config"
	"github.com/hyperjump/bogoseo/internal/extract"
	"github.com/hyperjump/bogoseo/internal/gateway"
	"github.com/hyperjump/bogoseo/internal/ingest"
	"github.com/hyperjump/bogoseo/internal/models"
	"github.com/hyperjump/bogoseo/internal/registry"
	"github.com/hyperjump/bogoseo/internal/segment"
	"github.com/hyperjump/bogoseo/internal/server"
	"github.com/hyperjump/bogoseo/internal/synth"
	"github.com/hyperjump/bogoseo/internal/watcher"
	"github.com/hyperjump/bogoseo/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/bogoseo/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "bogoseo server" from the project dir uses the project's config (including debug).
// Returns the config and the path that was actually loaded (for saving, etc.).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		// Missing config file is not fatal: defaults cover every setting.
		if errors.Is(err, os.ErrNotExist) {
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, "", nil
		}
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "gateway":
		runGateway()
	case "ingest":
		runIngest()
	case "segment":
		runSegment()
	case "generate":
		runGenerate()
	case "templates":
		runTemplates()
	case "reports":
		runReports()
	case "delete":
		runDelete()
	case "status":
		runStatus()
	case "watch":
		runWatch()
	case "version", "--version", "-v":
		fmt.Printf("bogoseo version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Store       registry.Store
	Segmenter   *segment.Segmenter
	Synthesizer *synth.Synthesizer
	Ingestor    *ingest.Ingestor
}

func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger, debug bool) (*Components, error) {
	var store registry.Store
	if cfg.Storage.DatabasePath != "" {
		sqliteStore, err := registry.NewSQLiteStore(cfg.Storage.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		store = sqliteStore
	} else {
		store = registry.NewMemoryStore()
	}

	segmenter := segment.NewSegmenter(&cfg.Segment)

	synthOpts := []synth.SynthesizerOption{}
	ingestOpts := []ingest.IngestorOption{}
	if debug && logger != nil {
		synthOpts = append(synthOpts, synth.WithLogger(logger))
		ingestOpts = append(ingestOpts, ingest.WithLogger(logger))
	}
	synthesizer := synth.NewSynthesizer(&cfg.Generate, synthOpts...)
	ingestor := ingest.NewIngestor(store.Templates(), extract.NewExtractor(), segmenter, ingestOpts...)

	return &Components{
		Store:       store,
		Segmenter:   segmenter,
		Synthesizer: synthesizer,
		Ingestor:    ingestor,
	}, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (uploads, segmentation, generation, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger, debugMode)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	ing := components.Ingestor
	watchOpts := []watcher.Option{}
	if debugMode {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	watchSvc := watcher.New(
		cfg.Watch.Directories,
		cfg.Watch.Extensions,
		cfg.Watch.RecursiveOrDefault(),
		func(path string) {
			if _, err := ing.IngestFile(context.Background(), path); err != nil {
				logger.Warn("watch ingest file failed", zap.String("path", path), zap.Error(err))
			}
		},
		func(path string) {
			if err := ing.Remove(context.Background(), path); err != nil {
				logger.Warn("watch remove template failed", zap.String("path", path), zap.Error(err))
			}
		},
		watchOpts...,
	)
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if err := watchSvc.Start(watchCtx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	watchSvc.SyncExistingFiles()

	if cfg.Gateway.Enabled {
		gw, err := gateway.New(components.Store, components.Synthesizer, logger)
		if err != nil {
			logger.Fatal("Failed to initialize gateway", zap.Error(err))
		}
		go func() {
			if err := gw.RunHTTP(watchCtx, cfg.Gateway.Addr); err != nil {
				logger.Error("Gateway failed", zap.Error(err))
			}
		}()
	}

	srv := server.NewServer(
		components.Store,
		components.Ingestor,
		components.Synthesizer,
		&cfg.Server,
		logger,
		watchSvc,
		resolvedConfigPath,
		cfg,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	watchSvc.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// runGateway runs the MCP generation gateway over stdio, for callers that
// attach Bogoseo as a tool provider.
func runGateway() {
	fs := flag.NewFlagSet("gateway", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	gw, err := gateway.New(components.Store, components.Synthesizer, logger)
	if err != nil {
		logger.Fatal("Failed to initialize gateway", zap.Error(err))
	}
	if err := gw.Run(context.Background()); err != nil {
		logger.Fatal("Gateway failed", zap.Error(err))
	}
}

func runIngest() {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = use direct storage)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: bogoseo ingest [flags] <file.pdf|file.docx>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	if *serverURL != "" {
		template, err := uploadViaHTTP(*serverURL, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Upload failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Template registered: %s (%d sections)\n", template.ID, len(template.Sections))
		return
	}

	components, logger := mustInitDirect(*configPath)
	defer logger.Sync()
	defer components.Close()

	template, err := components.Ingestor.IngestFile(context.Background(), path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ingestion failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Template registered: %s (%d sections)\n", template.ID, len(template.Sections))
}

// runSegment segments a document (or plain text file) and prints the
// detected sections without registering anything.
func runSegment() {
	fs := flag.NewFlagSet("segment", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: bogoseo segment [flags] <file>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	segmenter := segment.NewSegmenter(&cfg.Segment)

	var text string
	if _, ok := extract.TypeForExtension(filepath.Ext(path)); ok {
		text, _, err = extract.NewExtractor().Extract(path)
	} else {
		var raw []byte
		raw, err = os.ReadFile(path)
		text = string(raw)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}

	sections := segmenter.Segment(text)
	if err := cli.WriteSections(os.Stdout, sections, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runGenerate() {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage when server is not running)")
	templateID := fs.String("template", "", "template id (required)")
	title := fs.String("title", "", "report title")
	prompt := fs.String("prompt", "", "generation prompt (required)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if *templateID == "" || *prompt == "" {
		fmt.Println("Usage: bogoseo generate --template <id> --prompt <text> [flags]")
		os.Exit(1)
	}
	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	req := &models.GenerateRequest{
		TemplateID: *templateID,
		Title:      *title,
		Prompt:     *prompt,
	}

	if *serverURL != "" {
		resp, err := generateViaHTTP(*serverURL, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
			os.Exit(1)
		}
		writeGenerateResponse(resp, format)
		return
	}

	components, logger := mustInitDirect(*configPath)
	defer logger.Sync()
	defer components.Close()

	ctx := context.Background()
	template, err := components.Store.Templates().Get(ctx, req.TemplateID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}
	report, err := components.Synthesizer.Generate(template, req.Title, req.Prompt, req.Context)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}
	id, err := components.Store.Reports().Put(ctx, report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Report commit failed: %v\n", err)
		os.Exit(1)
	}
	writeGenerateResponse(&models.GenerateResponse{
		ReportID: id,
		Status:   models.CollapseStatus(report.Status),
		Content:  report.Content,
	}, format)
}

func writeGenerateResponse(resp *models.GenerateResponse, format cli.OutputFormat) {
	if format == cli.OutputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(resp)
		return
	}
	fmt.Printf("Report: %s (%s)\n\n%s\n", resp.ReportID, resp.Status, resp.Content)
}

func runTemplates() {
	fs := flag.NewFlagSet("templates", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = use direct storage)")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *serverURL != "" {
		var out struct {
			Templates []*models.Template `json:"templates"`
		}
		if err := getJSON(*serverURL+"/api/v1/templates", &out); err != nil {
			fmt.Fprintf(os.Stderr, "List failed: %v\n", err)
			os.Exit(1)
		}
		_ = cli.WriteTemplates(os.Stdout, out.Templates, format)
		return
	}

	components, logger := mustInitDirect(*configPath)
	defer logger.Sync()
	defer components.Close()

	templates, err := components.Store.Templates().List(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "List failed: %v\n", err)
		os.Exit(1)
	}
	_ = cli.WriteTemplates(os.Stdout, templates, format)
}

func runReports() {
	fs := flag.NewFlagSet("reports", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = use direct storage)")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		// Single report by id.
		id := fs.Arg(0)
		if *serverURL != "" {
			var report models.Report
			if err := getJSON(*serverURL+"/api/v1/reports/"+id, &report); err != nil {
				fmt.Fprintf(os.Stderr, "Get failed: %v\n", err)
				os.Exit(1)
			}
			_ = cli.WriteReport(os.Stdout, &report, format)
			return
		}
		components, logger := mustInitDirect(*configPath)
		defer logger.Sync()
		defer components.Close()
		report, err := components.Store.Reports().Get(context.Background(), id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Get failed: %v\n", err)
			os.Exit(1)
		}
		_ = cli.WriteReport(os.Stdout, report, format)
		return
	}

	if *serverURL != "" {
		var out struct {
			Reports []*models.Report `json:"reports"`
		}
		if err := getJSON(*serverURL+"/api/v1/reports", &out); err != nil {
			fmt.Fprintf(os.Stderr, "List failed: %v\n", err)
			os.Exit(1)
		}
		_ = cli.WriteReports(os.Stdout, out.Reports, format)
		return
	}

	components, logger := mustInitDirect(*configPath)
	defer logger.Sync()
	defer components.Close()
	reports, err := components.Store.Reports().List(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "List failed: %v\n", err)
		os.Exit(1)
	}
	_ = cli.WriteReports(os.Stdout, reports, format)
}

func runDelete() {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: bogoseo delete [flags] <template-id>")
		os.Exit(1)
	}
	id := fs.Arg(0)

	if *serverURL != "" {
		req, _ := http.NewRequest(http.MethodDelete, *serverURL+"/api/v1/templates/"+id, nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Fprintf(os.Stderr, "Delete failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		fmt.Printf("Deleted: %s\n", id)
		return
	}

	components, logger := mustInitDirect(*configPath)
	defer logger.Sync()
	defer components.Close()

	if err := components.Store.Templates().Delete(context.Background(), id); err != nil {
		fmt.Fprintf(os.Stderr, "Delete failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted: %s\n", id)
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
	_ = fs.Parse(os.Args[2:])

	if *serverURL != "" {
		var status map[string]interface{}
		if err := getJSON(*serverURL+"/api/v1/status", &status); err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(status)
		return
	}

	components, logger := mustInitDirect(*configPath)
	defer logger.Sync()
	defer components.Close()

	ctx := context.Background()
	templateCount, err := components.Store.Templates().Count(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Count templates failed: %v\n", err)
		os.Exit(1)
	}
	reportCount, err := components.Store.Reports().Count(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Count reports failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("templates: %d\n", templateCount)
	fmt.Printf("reports:   %d\n", reportCount)
}

func runWatch() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: bogoseo watch <add|remove|list> [path]")
		fmt.Println("  bogoseo watch add <path>     Add drop folder to watch")
		fmt.Println("  bogoseo watch remove <path>  Remove drop folder from watch")
		fmt.Println("  bogoseo watch list           List watched drop folders")
		os.Exit(1)
	}
	sub := os.Args[2]
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	_ = fs.Parse(os.Args[3:])
	switch sub {
	case "add":
		if fs.NArg() < 1 {
			fmt.Println("Usage: bogoseo watch add <path>")
			os.Exit(1)
		}
		path, _ := filepath.Abs(fs.Arg(0))
		body, _ := json.Marshal(map[string]interface{}{"path": path, "sync": true})
		resp, err := http.Post(*serverURL+"/api/v1/watch/directories", "application/json", bytes.NewReader(body))
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Add failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		fmt.Printf("Added: %s\n", path)
	case "remove":
		if fs.NArg() < 1 {
			fmt.Println("Usage: bogoseo watch remove <path>")
			os.Exit(1)
		}
		path, _ := filepath.Abs(fs.Arg(0))
		req, _ := http.NewRequest(http.MethodDelete, *serverURL+"/api/v1/watch/directories?path="+pathQuery(path), nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Remove failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		fmt.Printf("Removed: %s\n", path)
	case "list":
		var out struct {
			Directories []string `json:"directories"`
		}
		if err := getJSON(*serverURL+"/api/v1/watch/directories", &out); err != nil {
			fmt.Printf("List failed: %v\n", err)
			os.Exit(1)
		}
		for _, d := range out.Directories {
			fmt.Println(d)
		}
	default:
		fmt.Printf("Unknown watch subcommand: %s\n", sub)
		os.Exit(1)
	}
}

// mustInitDirect loads config, builds a logger, and initializes direct
// storage components, exiting on any failure.
func mustInitDirect(configPath string) (*Components, *zap.Logger) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	components, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	return components, logger
}

func uploadViaHTTP(serverURL, path string) (*models.Template, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/templates", mw.FormDataContentType(), &body)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var template models.Template
	if err := json.NewDecoder(resp.Body).Decode(&template); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &template, nil
}

func generateViaHTTP(serverURL string, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/reports", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	var out models.GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out.Status == models.GatewayFailed {
		return nil, fmt.Errorf("generation failed: %s", out.Error)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %d", resp.StatusCode)
	}
	return &out, nil
}

func getJSON(url string, v interface{}) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func pathQuery(path string) string {
	return url.QueryEscape(path)
}

func printUsage() {
	fmt.Println(`bogoseo - Document template and report synthesis service

Usage:
  bogoseo server [flags]              Start the HTTP API server
  bogoseo gateway [flags]             Run the MCP generation gateway over stdio
  bogoseo ingest [flags] <file>       Register a PDF/DOCX document as a template
  bogoseo segment [flags] <file>      Show detected sections without registering
  bogoseo generate [flags]            Generate a report from a template
  bogoseo templates [flags]           List registered templates
  bogoseo reports [flags] [id]        List reports or show one report
  bogoseo delete [flags] <id>         Delete a registered template
  bogoseo status [flags]              Show registry status
  bogoseo watch <add|remove|list>     Manage watched drop folders
  bogoseo version                     Show version
  bogoseo help                        Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/bogoseo/config.yaml)
  --debug            Enable debug logging (uploads, segmentation, generation, etc.)

Generate Flags:
  --template string  Template id (required)
  --prompt string    Generation prompt (required)
  --title string     Report title (optional)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") for direct storage.
  --output string    Output format: text or json

Examples:
  bogoseo server
  bogoseo ingest --server http://localhost:8080 quarterly-plan.docx
  bogoseo segment --output json quarterly-plan.docx
  bogoseo generate --template <id> --prompt "2026년 1분기 실적 보고서"
  bogoseo templates --output compact
  bogoseo reports
  bogoseo watch add /path/to/drop-folder`)
}
