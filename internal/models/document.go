// Package models defines core data structures for documents, CV sections, and pages.
package models

import "time"

// MediaKind is the declared format of a raw document.
type MediaKind string

const (
	KindPDF           MediaKind = "pdf"
	KindDOCX          MediaKind = "docx"
	KindDOC           MediaKind = "doc"
	KindODT           MediaKind = "odt"
	KindXLSX          MediaKind = "xlsx"
	KindPlainText     MediaKind = "plain-text"
	KindUnknownBinary MediaKind = "unknown-binary"
	KindHTMLPage      MediaKind = "html-page"
)

// RawDocument holds the opaque bytes of an uploaded or fetched document with
// its declared media kind. It lives only for the duration of one request and
// is discarded after text extraction.
type RawDocument struct {
	Name string
	Kind MediaKind
	Data []byte
}

// Page is a persisted record of one successful generation. ID is derived
// deterministically from the normalized source, so regenerating the same CV
// updates the existing record instead of creating a duplicate.
type Page struct {
	ID        string    `json:"id" db:"id"`
	Source    string    `json:"source" db:"source"`
	Name      string    `json:"name" db:"name"`
	Content   string    `json:"content" db:"content"`
	HTML      string    `json:"html" db:"html"`
	Theme     string    `json:"theme" db:"theme"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
