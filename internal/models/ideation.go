// internal/models/ideation.go
package models

import "encoding/json"

// Document is a parsed JSON object as returned by the model. Only its top-level required
// keys are guaranteed.
type Document = map[string]interface{}

// Ideation is the project specification produced by the ideation agent.
type Ideation struct {
	ProjectName          string            `json:"projectName"`
	Description          string            `json:"description"`
	Features             []string          `json:"features"`
	Components           []Component       `json:"components"`
	FileStructure        map[string]string `json:"fileStructure,omitempty"`
	TechStack            *TechStack        `json:"techStack,omitempty"`
	UserFlows            []string          `json:"userFlows,omitempty"`
	DesignConsiderations []string          `json:"designConsiderations,omitempty"`
}

type Component struct {
	Name    string   `json:"name"`
	Purpose string   `json:"purpose"`
	Props   []string `json:"props"`
}

type TechStack struct {
	Frontend []string `json:"frontend"`
	Backend  []string `json:"backend"`
}

// IdeationRequiredFields is the required-field set of an ideation document.
var IdeationRequiredFields = []string{"projectName", "description", "features", "components"}

// Document converts the typed ideation to the generic form used in responses.
func (i *Ideation) Document() Document {
	data, err := json.Marshal(i)
	if err != nil {
		return Document{}
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}
	}
	return doc
}

// IdeationSummary reads the fields the documentation fallback needs from a loosely typed
// ideation document. Missing or mistyped values are returned as zero values.
func IdeationSummary(doc Document) (name, description string, features []string) {
	name, _ = doc["projectName"].(string)
	description, _ = doc["description"].(string)
	if list, ok := doc["features"].([]interface{}); ok {
		for _, f := range list {
			if s, ok := f.(string); ok {
				features = append(features, s)
			}
		}
	}
	return name, description, features
}
