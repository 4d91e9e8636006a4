// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	IDIdeation                = "ideation"
	IDCodeGeneration          = "code-generation"
	IDCodeUpdate              = "code-update"
	IDDocumentationGeneration = "documentation-generation"
	IDDocumentationUpdate     = "documentation-update"
	IDHealth                  = "health"
)

// BasePath is the mount point of the agent routes.
const BasePath = "/api/agents"

var agentErrorCodes = []string{"INVALID_REQUEST", "GENAI_REQUEST_FAILED", "GENAI_TIMEOUT", "MALFORMED_OUTPUT", "SCHEMA_MISMATCH"}

// Default returns the catalog of the operations this service implements.
func Default() *ActivityRegistry {
	return &ActivityRegistry{
		Version:     "1.0.0",
		LastUpdated: "2025-01-01T00:00:00Z",
		Activities: []Activity{
			{
				ID:                  IDIdeation,
				DisplayName:         "Generate Ideation",
				Description:         "Turns a free-text idea into a project specification",
				Category:            "agents",
				Version:             "1.0.0",
				Method:              "POST",
				Path:                BasePath + "/ideation",
				TaskType:            "ideation-agent",
				RequiredInputs:      []string{"prompt"},
				InvalidInputMessage: "Prompt is required",
				ErrorCodes:          agentErrorCodes,
				Tags:                []string{"structured", "fallback"},
			},
			{
				ID:                  IDCodeGeneration,
				DisplayName:         "Generate Code",
				Description:         "Generates React source files from an ideation document",
				Category:            "agents",
				Version:             "1.0.0",
				Method:              "POST",
				Path:                BasePath + "/code",
				TaskType:            "coding-agent",
				RequiredInputs:      []string{"ideation"},
				InvalidInputMessage: "Ideation data is required",
				ErrorCodes:          agentErrorCodes,
				Tags:                []string{"structured", "fallback"},
			},
			{
				ID:                  IDCodeUpdate,
				DisplayName:         "Update Code",
				Description:         "Rewrites existing code according to an update request",
				Category:            "agents",
				Version:             "1.0.0",
				Method:              "POST",
				Path:                BasePath + "/code/update",
				TaskType:            "code-update-agent",
				RequiredInputs:      []string{"existingCode", "updateRequest"},
				InvalidInputMessage: "Existing code and update request are required",
				ErrorCodes:          agentErrorCodes,
				Tags:                []string{"text"},
			},
			{
				ID:                  IDDocumentationGeneration,
				DisplayName:         "Generate Documentation",
				Description:         "Writes Markdown documentation for generated code",
				Category:            "agents",
				Version:             "1.0.0",
				Method:              "POST",
				Path:                BasePath + "/documentation",
				TaskType:            "documentation-agent",
				RequiredInputs:      []string{"codeFiles", "ideation"},
				InvalidInputMessage: "Code files and ideation data are required",
				ErrorCodes:          agentErrorCodes,
				Tags:                []string{"structured", "fallback"},
			},
			{
				ID:                  IDDocumentationUpdate,
				DisplayName:         "Update Documentation",
				Description:         "Updates documentation to reflect code changes",
				Category:            "agents",
				Version:             "1.0.0",
				Method:              "POST",
				Path:                BasePath + "/documentation/update",
				TaskType:            "documentation-update-agent",
				RequiredInputs:      []string{"existingDocs", "codeChanges"},
				InvalidInputMessage: "Existing documentation and code changes are required",
				ErrorCodes:          agentErrorCodes,
				Tags:                []string{"text"},
			},
			{
				ID:          IDHealth,
				DisplayName: "Health",
				Description: "Liveness probe",
				Category:    "infrastructure",
				Version:     "1.0.0",
				Method:      "GET",
				Path:        BasePath + "/health",
			},
		},
	}
}

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// Save writes the registry as indented JSON.
func (r *ActivityRegistry) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Find returns the activity with the given ID.
func (r *ActivityRegistry) Find(id string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}

// MustFind is Find for IDs known at compile time.
func (r *ActivityRegistry) MustFind(id string) Activity {
	a, ok := r.Find(id)
	if !ok {
		panic(fmt.Sprintf("registry: unknown activity %q", id))
	}
	return a
}

// FindByTaskType returns the activity served by a Zeebe task type.
func (r *ActivityRegistry) FindByTaskType(taskType string) (Activity, bool) {
	if taskType == "" {
		return Activity{}, false
	}
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// JobActivities returns the activities exposed as Zeebe task types.
func (r *ActivityRegistry) JobActivities() []Activity {
	var out []Activity
	for _, a := range r.Activities {
		if a.TaskType != "" {
			out = append(out, a)
		}
	}
	return out
}

// Endpoints maps activity IDs to "METHOD path", the shape served by the index route.
func (r *ActivityRegistry) Endpoints() map[string]string {
	out := make(map[string]string, len(r.Activities))
	for _, a := range r.Activities {
		out[a.ID] = a.Method + " " + a.Path
	}
	return out
}

// Validate checks that IDs, routes and task types are present and unique.
func (r *ActivityRegistry) Validate() error {
	if len(r.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	routes := make(map[string]bool)
	taskTypes := make(map[string]bool)
	for _, a := range r.Activities {
		if a.ID == "" {
			return fmt.Errorf("activity missing required field: id")
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate activity ID: %s", a.ID)
		}
		ids[a.ID] = true

		if a.Method == "" || !strings.HasPrefix(a.Path, "/") {
			return fmt.Errorf("activity %s: method and absolute path are required", a.ID)
		}
		route := a.Method + " " + a.Path
		if routes[route] {
			return fmt.Errorf("duplicate route: %s", route)
		}
		routes[route] = true

		if a.TaskType != "" {
			if taskTypes[a.TaskType] {
				return fmt.Errorf("duplicate task type: %s", a.TaskType)
			}
			taskTypes[a.TaskType] = true
		}

		if len(a.RequiredInputs) > 0 && a.InvalidInputMessage == "" {
			return fmt.Errorf("activity %s: invalidInputMessage is required when inputs are required", a.ID)
		}
	}
	return nil
}
