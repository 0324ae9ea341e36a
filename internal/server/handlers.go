package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/bogoseo/internal/config"
	"github.com/hyperjump/bogoseo/internal/extract"
	"github.com/hyperjump/bogoseo/internal/models"
	"github.com/hyperjump/bogoseo/internal/registry"
)

// maxUploadBytes bounds the in-memory part of a multipart upload; larger
// parts spill to temp files which are always released after the request.
const maxUploadBytes = 32 << 20

func (s *Server) handleUploadTemplate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to read upload")
		return
	}
	s.logger.Debug("upload template request",
		zap.String("filename", header.Filename),
		zap.Int("bytes", len(content)))

	template, err := s.ingestor.IngestBytes(r.Context(), header.Filename, content)
	if err != nil {
		var corrupt *extract.CorruptDocumentError
		switch {
		case errors.Is(err, extract.ErrUnsupportedFormat):
			s.respondError(w, http.StatusUnsupportedMediaType, err.Error())
		case errors.As(err, &corrupt):
			s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			s.logger.Error("ingestion failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	s.respondJSON(w, http.StatusCreated, template)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.store.Templates().List(r.Context())
	if err != nil {
		s.logger.Error("list templates failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"templates": templates,
		"total":     len(templates),
	})
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	template, err := s.store.Templates().Get(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "template not found")
		return
	}
	s.respondJSON(w, http.StatusOK, template)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete template request", zap.String("id", id))
	if err := s.store.Templates().Delete(r.Context(), id); err != nil {
		if errors.Is(err, registry.ErrTemplateNotFound) {
			s.respondError(w, http.StatusNotFound, "template not found")
			return
		}
		s.logger.Error("deletion failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("generate report request",
		zap.String("template_id", req.TemplateID),
		zap.String("title", req.Title))

	template, err := s.store.Templates().Get(r.Context(), req.TemplateID)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "template not found")
		return
	}
	report, err := s.synthesizer.Generate(template, req.Title, req.Prompt, req.Context)
	if err != nil {
		// Terminal for this attempt only; nothing is committed.
		s.logger.Error("synthesis failed", zap.Error(err))
		s.respondJSON(w, http.StatusInternalServerError, models.GenerateResponse{
			Status: models.GatewayFailed,
			Error:  err.Error(),
		})
		return
	}
	id, err := s.store.Reports().Put(r.Context(), report)
	if err != nil {
		s.logger.Error("report commit failed", zap.Error(err))
		s.respondJSON(w, http.StatusInternalServerError, models.GenerateResponse{
			Status: models.GatewayFailed,
			Error:  err.Error(),
		})
		return
	}
	s.respondJSON(w, http.StatusCreated, models.GenerateResponse{
		ReportID: id,
		Status:   models.CollapseStatus(report.Status),
		Content:  report.Content,
	})
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.store.Reports().List(r.Context())
	if err != nil {
		s.logger.Error("list reports failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"reports": reports,
		"total":   len(reports),
	})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	report, err := s.store.Reports().Get(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "report not found")
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	templateCount, err := s.store.Templates().Count(ctx)
	if err != nil {
		s.logger.Error("status: count templates failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	reportCount, err := s.store.Reports().Count(ctx)
	if err != nil {
		s.logger.Error("status: count reports failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := map[string]interface{}{
		"templates": templateCount,
		"reports":   reportCount,
	}
	if s.appConfig != nil {
		backend := "memory"
		if s.appConfig.Storage.DatabasePath != "" {
			backend = "sqlite"
			if diskBytes, err := registry.DiskUsageBytes(s.appConfig.Storage.DatabasePath); err == nil {
				resp["disk_usage_bytes"] = diskBytes
			}
		}
		resp["config"] = map[string]interface{}{
			"storage_backend":   backend,
			"database_path":     s.appConfig.Storage.DatabasePath,
			"max_header_length": s.appConfig.Segment.MaxHeaderLength,
			"keywords":          s.appConfig.Segment.Keywords,
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWatchDirectoriesList(w http.ResponseWriter, r *http.Request) {
	if s.watch == nil {
		s.respondError(w, http.StatusNotImplemented, "watch not enabled")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"directories": s.watch.Directories()})
}

type watchAddRequest struct {
	Path string `json:"path"`
	Sync *bool  `json:"sync,omitempty"`
}

func (s *Server) handleWatchDirectoriesAdd(w http.ResponseWriter, r *http.Request) {
	if s.watch == nil {
		s.respondError(w, http.StatusNotImplemented, "watch not enabled")
		return
	}
	var req watchAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		s.respondError(w, http.StatusBadRequest, "path is required")
		return
	}
	abs, err := filepath.Abs(req.Path)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid path")
		return
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			s.respondError(w, http.StatusNotFound, "directory not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !info.IsDir() {
		s.respondError(w, http.StatusBadRequest, "path is not a directory")
		return
	}
	syncExisting := true
	if req.Sync != nil {
		syncExisting = *req.Sync
	}
	s.logger.Debug("watch add directory request", zap.String("path", abs), zap.Bool("sync_existing", syncExisting))
	if err := s.watch.AddDirectory(abs, syncExisting); err != nil {
		s.logger.Error("watch add directory failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.persistWatchDirectories()
	s.respondJSON(w, http.StatusCreated, map[string]string{"path": abs, "status": "added"})
}

func (s *Server) handleWatchDirectoriesRemove(w http.ResponseWriter, r *http.Request) {
	if s.watch == nil {
		s.respondError(w, http.StatusNotImplemented, "watch not enabled")
		return
	}
	path := r.URL.Query().Get("path")
	if path == "" {
		var body struct {
			Path string `json:"path"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.Path != "" {
			path = body.Path
		}
	}
	if path == "" {
		s.respondError(w, http.StatusBadRequest, "path is required (query or body)")
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid path")
		return
	}
	s.logger.Debug("watch remove directory request", zap.String("path", abs))
	if err := s.watch.RemoveDirectory(abs); err != nil {
		s.logger.Error("watch remove directory failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.persistWatchDirectories()
	s.respondJSON(w, http.StatusOK, map[string]string{"path": abs, "status": "removed"})
}

// persistWatchDirectories saves the current watch roots back to the config
// file so they survive a restart.
func (s *Server) persistWatchDirectories() {
	if s.configPath == "" || s.appConfig == nil {
		return
	}
	s.appConfigMu.Lock()
	s.appConfig.Watch.Directories = s.watch.Directories()
	err := config.Save(s.configPath, s.appConfig)
	s.appConfigMu.Unlock()
	if err != nil {
		s.logger.Warn("failed to persist watch config", zap.Error(err))
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
