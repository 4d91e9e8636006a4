// internal/models/documentation.go
package models

type DocumentationOutput struct {
	Documentation string `json:"documentation"`
}

var DocumentationRequiredFields = []string{"documentation"}
