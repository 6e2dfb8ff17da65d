package publish

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inkfold/cvpress/internal/models"
)

func writeTempCV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cv.txt")
	if err := os.WriteFile(path, []byte("Jane Doe\nEngineer with ten years of experience."), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUploadFile(t *testing.T) {
	var gotField, gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/uploads" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		b, _ := io.ReadAll(file)
		gotField = string(b)
		gotName = header.Filename
		_ = json.NewEncoder(w).Encode(models.UploadResponse{
			OK: true, Filename: "abc_cv.txt", OriginalName: header.Filename, LocalPath: "/data/uploads/abc_cv.txt",
		})
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).UploadFile(context.Background(), writeTempCV(t))
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if gotName != "cv.txt" {
		t.Errorf("uploaded filename = %q, want cv.txt", gotName)
	}
	if !strings.Contains(gotField, "Jane Doe") {
		t.Errorf("uploaded body missing content: %q", gotField)
	}
	if resp.LocalPath != "/data/uploads/abc_cv.txt" {
		t.Errorf("local path = %q", resp.LocalPath)
	}
}

func TestUploadFile_serverRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(models.UploadResponse{OK: false, Error: "missing file field"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).UploadFile(context.Background(), writeTempCV(t))
	if err == nil || !strings.Contains(err.Error(), "missing file field") {
		t.Errorf("expected server error surfaced, got %v", err)
	}
}

func TestUploadFile_missingLocalFile(t *testing.T) {
	_, err := NewClient("http://localhost:0").UploadFile(context.Background(), "/no/such/file.pdf")
	if err == nil {
		t.Error("expected error for missing local file")
	}
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req models.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.UploadedFilePath != "/data/uploads/abc_cv.txt" {
			t.Errorf("uploaded path = %q", req.UploadedFilePath)
		}
		_ = json.NewEncoder(w).Encode(models.GenerateResponse{OK: true, HTML: "<html></html>", PageID: "page:1"})
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).Generate(context.Background(), &models.GenerateRequest{
		UploadedFilePath: "/data/uploads/abc_cv.txt",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.PageID != "page:1" || resp.HTML == "" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestGenerate_tooShortSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(models.GenerateResponse{OK: false, Error: "extracted text too short"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Generate(context.Background(), &models.GenerateRequest{})
	if err == nil || !strings.Contains(err.Error(), "too short") {
		t.Errorf("expected too-short error surfaced, got %v", err)
	}
}
