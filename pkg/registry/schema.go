// pkg/registry/schema.go
package registry

type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one agent operation and the two ways it is exposed: an HTTP route and,
// optionally, a Zeebe task type.
type Activity struct {
	ID                  string   `json:"id"`
	DisplayName         string   `json:"displayName"`
	Description         string   `json:"description"`
	Category            string   `json:"category"`
	Version             string   `json:"version"`
	Method              string   `json:"method"`
	Path                string   `json:"path"`
	TaskType            string   `json:"taskType,omitempty"`
	RequiredInputs      []string `json:"requiredInputs,omitempty"`
	InvalidInputMessage string   `json:"invalidInputMessage,omitempty"`
	ErrorCodes          []string `json:"errorCodes,omitempty"`
	Tags                []string `json:"tags,omitempty"`
}
