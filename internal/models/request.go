package models

import "github.com/go-playground/validator/v10"

// RenderOptions configures the HTML renderer.
type RenderOptions struct {
	ThemeType    string // layout variant; unknown values fall back to "classic"
	ThemeColors  string // space-separated color tokens; first token is the accent
	Professional bool   // restrained serif presentation
}

// GenerateRequest is the body of POST /api/v1/generate. A request may carry a
// shared-page URL, a previously uploaded file path, or both; every supplied
// source is tried and the longest extracted text wins.
type GenerateRequest struct {
	SourceURL string `json:"sourceUrl,omitempty" validate:"omitempty,url"`
	// DeepseekURL is the legacy alias for SourceURL kept for older clients.
	DeepseekURL      string `json:"deepseekUrl,omitempty" validate:"omitempty,url"`
	ThemeType        string `json:"themeType,omitempty"`
	ThemeColors      string `json:"themeColors,omitempty"`
	Professional     bool   `json:"professional,omitempty"`
	UploadedFilePath string `json:"uploadedFilePath,omitempty"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// URL returns the scrape target, preferring SourceURL over the legacy alias.
func (r *GenerateRequest) URL() string {
	if r.SourceURL != "" {
		return r.SourceURL
	}
	return r.DeepseekURL
}

// Options returns the render options carried by the request.
func (r *GenerateRequest) Options() RenderOptions {
	return RenderOptions{
		ThemeType:    r.ThemeType,
		ThemeColors:  r.ThemeColors,
		Professional: r.Professional,
	}
}

// GenerateResponse is the response of POST /api/v1/generate.
type GenerateResponse struct {
	OK     bool   `json:"ok"`
	HTML   string `json:"html,omitempty"`
	PageID string `json:"pageId,omitempty"`
	Error  string `json:"error,omitempty"`
}

// UploadResponse is the response of POST /api/v1/uploads.
type UploadResponse struct {
	OK           bool   `json:"ok"`
	Filename     string `json:"filename,omitempty"`
	OriginalName string `json:"originalname,omitempty"`
	LocalPath    string `json:"localPath,omitempty"`
	Error        string `json:"error,omitempty"`
}
