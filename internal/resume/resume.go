// Package resume handles reading, hashing, and validating résumé records.
package resume

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is a flat snapshot of one résumé as entered by the user.
// Every field is optional.
type Record struct {
	FullName   string `json:"full_name,omitempty" yaml:"full_name,omitempty"`
	Email      string `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	Phone      string `json:"phone,omitempty" yaml:"phone,omitempty"`
	City       string `json:"city,omitempty" yaml:"city,omitempty"`
	Country    string `json:"country,omitempty" yaml:"country,omitempty"`
	LinkedIn   string `json:"linkedin,omitempty" yaml:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub     string `json:"github,omitempty" yaml:"github,omitempty" validate:"omitempty,url"`
	TargetRole string `json:"target_role,omitempty" yaml:"target_role,omitempty"`

	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Skills  string `json:"skills,omitempty" yaml:"skills,omitempty"`

	Experience     []Experience `json:"experience,omitempty" yaml:"experience,omitempty" validate:"dive"`
	Projects       []Project    `json:"projects,omitempty" yaml:"projects,omitempty" validate:"dive"`
	Education      []Education  `json:"education,omitempty" yaml:"education,omitempty" validate:"dive"`
	Certifications []string     `json:"certifications,omitempty" yaml:"certifications,omitempty"`
}

// Experience is one job entry. Responsibilities holds newline-separated bullets.
type Experience struct {
	Company          string `json:"company,omitempty" yaml:"company,omitempty"`
	Location         string `json:"location,omitempty" yaml:"location,omitempty"`
	Title            string `json:"title,omitempty" yaml:"title,omitempty"`
	StartDate        string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate          string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Responsibilities string `json:"responsibilities,omitempty" yaml:"responsibilities,omitempty"`
}

// Project is one project entry. Description holds newline-separated bullets.
type Project struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Education is one education entry.
type Education struct {
	Institution string `json:"institution,omitempty" yaml:"institution,omitempty" validate:"required"`
	Degree      string `json:"degree,omitempty" yaml:"degree,omitempty"`
	Year        string `json:"year,omitempty" yaml:"year,omitempty"`
}

// Format identifies the on-disk encoding of a record file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document holds a loaded record file with its content and metadata.
type Document struct {
	FilePath string
	Format   Format
	Raw      []byte
	Record   Record
	Hash     string
}

// FormatFor picks the decoder for a path by extension. Unknown extensions are
// treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads a record file and computes its SHA-256 hash.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("resume.Load: %w", err)
	}
	format := FormatFor(path)
	rec, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("resume.Load: %s: %w", path, err)
	}
	return &Document{
		FilePath: path,
		Format:   format,
		Raw:      data,
		Record:   rec,
		Hash:     Hash(data),
	}, nil
}

// Decode parses a record in the given format. Unknown JSON fields are ignored.
func Decode(data []byte, format Format) (Record, error) {
	var rec Record
	switch format {
	case FormatYAML:
		if len(bytes.TrimSpace(data)) == 0 {
			return rec, nil
		}
		if err := yaml.Unmarshal(data, &rec); err != nil {
			return Record{}, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &rec); err != nil {
			return Record{}, fmt.Errorf("parse json: %w", err)
		}
	}
	return rec, nil
}

// Hash returns the "sha256:<hex>" digest used in report metadata.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("sha256:%x", h)
}
