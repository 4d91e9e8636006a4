// internal/models/code.go
package models

// CodeFile is one generated source file.
type CodeFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type CodeOutput struct {
	Files []CodeFile `json:"files"`
}

var CodeRequiredFields = []string{"files"}
