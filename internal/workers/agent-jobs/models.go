// internal/workers/agent-jobs/models.go
package agentjobs

const (
	TaskTypeIdeation            = "ideation-agent"
	TaskTypeCoding              = "coding-agent"
	TaskTypeCodeUpdate          = "code-update-agent"
	TaskTypeDocumentation       = "documentation-agent"
	TaskTypeDocumentationUpdate = "documentation-update-agent"
)

// resultVariables names the process variable each task type completes with.
var resultVariables = map[string]string{
	TaskTypeIdeation:            "ideationResult",
	TaskTypeCoding:              "codeResult",
	TaskTypeCodeUpdate:          "codeUpdateResult",
	TaskTypeDocumentation:       "documentationResult",
	TaskTypeDocumentationUpdate: "documentationUpdateResult",
}

// TaskTypes lists every task type this package serves.
func TaskTypes() []string {
	return []string{
		TaskTypeIdeation,
		TaskTypeCoding,
		TaskTypeCodeUpdate,
		TaskTypeDocumentation,
		TaskTypeDocumentationUpdate,
	}
}

// ResultVariable returns the process variable name for a task type.
func ResultVariable(taskType string) string {
	return resultVariables[taskType]
}
