// internal/models/response.go
package models

import "time"

// Timestamp formats t the way every response carries it.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// IdeationResponse is returned by the ideation agent. On failure Fallback is always set.
type IdeationResponse struct {
	Success   bool     `json:"success"`
	Ideation  Document `json:"ideation,omitempty"`
	Error     string   `json:"error,omitempty"`
	Fallback  Document `json:"fallback,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// Payload returns the ideation on success and the fallback otherwise.
func (r *IdeationResponse) Payload() Document {
	if r.Success {
		return r.Ideation
	}
	return r.Fallback
}

// CodeResponse is returned by code generation. Files is never nil.
type CodeResponse struct {
	Success   bool       `json:"success"`
	Files     []CodeFile `json:"files"`
	Error     string     `json:"error,omitempty"`
	Timestamp string     `json:"timestamp"`
}

func (r *CodeResponse) Payload() CodeOutput {
	return CodeOutput{Files: r.Files}
}

// CodeUpdateResponse is returned by code update. There is no fallback.
type CodeUpdateResponse struct {
	Success     bool   `json:"success"`
	UpdatedCode string `json:"updatedCode,omitempty"`
	Error       string `json:"error,omitempty"`
	Timestamp   string `json:"timestamp"`
}

// DocumentationResponse is returned by documentation generation and update. Generation
// failures carry fallback markdown; update failures carry none.
type DocumentationResponse struct {
	Success       bool   `json:"success"`
	Documentation string `json:"documentation,omitempty"`
	Error         string `json:"error,omitempty"`
	Timestamp     string `json:"timestamp"`
}

func (r *DocumentationResponse) Payload() DocumentationOutput {
	return DocumentationOutput{Documentation: r.Documentation}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
