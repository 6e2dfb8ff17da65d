package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inkfold/cvpress/internal/generate"
	"github.com/inkfold/cvpress/internal/models"
	"github.com/inkfold/cvpress/internal/storage"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// filenameSafeRe matches every character that survives upload filename
// sanitization.
var filenameSafeRe = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if max := s.config.Generate.MaxUploadBytes; max > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, max)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondJSON(w, http.StatusBadRequest, models.UploadResponse{OK: false, Error: "file too large"})
			return
		}
		s.respondJSON(w, http.StatusBadRequest, models.UploadResponse{OK: false, Error: "missing file field"})
		return
	}
	defer file.Close()

	if err := os.MkdirAll(s.config.Storage.UploadsDir, 0755); err != nil {
		s.logger.Error("create uploads dir failed", zap.Error(err))
		s.respondJSON(w, http.StatusInternalServerError, models.UploadResponse{OK: false, Error: err.Error()})
		return
	}

	filename := uuid.New().String() + "_" + sanitizeFilename(header.Filename)
	localPath := filepath.Join(s.config.Storage.UploadsDir, filename)
	dst, err := os.Create(localPath)
	if err != nil {
		s.logger.Error("create upload file failed", zap.Error(err))
		s.respondJSON(w, http.StatusInternalServerError, models.UploadResponse{OK: false, Error: err.Error()})
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		s.logger.Error("write upload failed", zap.String("path", localPath), zap.Error(err))
		s.respondJSON(w, http.StatusInternalServerError, models.UploadResponse{OK: false, Error: err.Error()})
		return
	}

	s.logger.Debug("file uploaded",
		zap.String("original", header.Filename),
		zap.String("path", localPath),
		zap.Int64("bytes", header.Size))
	s.respondJSON(w, http.StatusOK, models.UploadResponse{
		OK:           true,
		Filename:     filename,
		OriginalName: header.Filename,
		LocalPath:    localPath,
	})
}

// sanitizeFilename reduces a client-supplied filename to a safe base name.
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	safe := filenameSafeRe.ReplaceAllString(base, "_")
	safe = strings.Trim(safe, "._")
	if safe == "" {
		return "upload"
	}
	return safe
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondJSON(w, http.StatusBadRequest, models.GenerateResponse{OK: false, Error: "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.respondJSON(w, http.StatusBadRequest, models.GenerateResponse{OK: false, Error: err.Error()})
		return
	}
	if req.UploadedFilePath != "" {
		resolved, err := s.uploadedPath(req.UploadedFilePath)
		if err != nil {
			s.respondJSON(w, http.StatusBadRequest, models.GenerateResponse{OK: false, Error: err.Error()})
			return
		}
		req.UploadedFilePath = resolved
	}

	s.logger.Debug("generate request",
		zap.String("url", req.URL()),
		zap.String("file", req.UploadedFilePath),
		zap.String("theme", req.ThemeType))
	page, err := s.generator.Generate(r.Context(), &req)
	if err != nil {
		if errors.Is(err, generate.ErrTextTooShort) {
			s.respondJSON(w, http.StatusBadRequest, models.GenerateResponse{OK: false, Error: err.Error()})
			return
		}
		s.logger.Error("generation failed", zap.Error(err))
		s.respondJSON(w, http.StatusInternalServerError, models.GenerateResponse{OK: false, Error: err.Error()})
		return
	}
	s.respondJSON(w, http.StatusOK, models.GenerateResponse{OK: true, HTML: page.HTML, PageID: page.ID})
}

// uploadedPath resolves a client-supplied upload path and rejects anything
// outside the uploads directory.
func (s *Server) uploadedPath(p string) (string, error) {
	uploads := s.config.Storage.UploadsDir
	candidate := p
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(uploads, candidate)
	}
	candidate = filepath.Clean(candidate)
	rel, err := filepath.Rel(uploads, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.New("uploaded file path is outside the uploads directory")
	}
	return candidate, nil
}

// pageSummary is the listing shape: everything but the body fields.
type pageSummary struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Name      string    `json:"name"`
	Theme     string    `json:"theme"`
	Score     float64   `json:"score,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func summarize(p *models.Page, score float64) pageSummary {
	return pageSummary{
		ID:        p.ID,
		Source:    p.Source,
		Name:      p.Name,
		Theme:     p.Theme,
		Score:     score,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query != "" {
		s.handleSearchPages(w, r, query, limit)
		return
	}

	pages, err := s.store.ListPages(r.Context(), 0, limit)
	if err != nil {
		s.logger.Error("list pages failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	summaries := make([]pageSummary, len(pages))
	for i, p := range pages {
		summaries[i] = summarize(p, 0)
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"pages": summaries, "total": len(summaries)})
}

func (s *Server) handleSearchPages(w http.ResponseWriter, r *http.Request, query string, limit int) {
	hits, err := s.index.Search(r.Context(), query, limit)
	if err != nil {
		s.logger.Error("page search failed", zap.String("query", query), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	summaries := make([]pageSummary, 0, len(hits))
	for _, hit := range hits {
		page, err := s.store.GetPage(r.Context(), hit.ID)
		if err != nil {
			// The index can briefly hold pages the store already dropped.
			s.logger.Warn("indexed page missing from store", zap.String("id", hit.ID))
			continue
		}
		summaries = append(summaries, summarize(page, hit.Score))
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"pages": summaries, "total": len(summaries)})
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	page, err := s.store.GetPage(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "page not found")
			return
		}
		s.logger.Error("get page failed", zap.String("id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetPageHTML(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	page, err := s.store.GetPage(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "page not found")
			return
		}
		s.logger.Error("get page failed", zap.String("id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page.HTML))
}

func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete page request", zap.String("id", id))
	if err := s.generator.DeletePage(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "page not found")
			return
		}
		s.logger.Error("deletion failed", zap.String("id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pageCount, err := s.store.CountPages(ctx)
	if err != nil {
		s.logger.Error("status: count pages failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	indexCount, err := s.index.DocCount()
	if err != nil {
		s.logger.Error("status: index doc count failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := map[string]interface{}{
		"pages":      pageCount,
		"index_docs": indexCount,
		"providers":  s.extractor.Providers(),
	}
	diskBytes, err := storage.DiskUsageBytes(
		s.config.Storage.DatabasePath,
		s.config.Storage.PageIndexPath,
		s.config.Storage.UploadsDir,
	)
	if err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	resp["config"] = map[string]interface{}{
		"database_path":   s.config.Storage.DatabasePath,
		"page_index_path": s.config.Storage.PageIndexPath,
		"uploads_dir":     s.config.Storage.UploadsDir,
		"min_text_chars":  s.config.Generate.MinTextChars,
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
