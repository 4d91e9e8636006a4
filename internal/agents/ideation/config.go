// internal/agents/ideation/config.go
package ideation

const UseCase = "ideation"

// SystemPrompt is the persona of the ideation agent.
const SystemPrompt = `You are an expert Product Manager and Software Architect AI agent. Your role is to:
1. Analyze user requirements and ideas
2. Create comprehensive project specifications
3. Define component structure and file architecture
4. Identify key features and user flows
5. Suggest technology stack and best practices

You MUST respond with ONLY valid JSON. No markdown, no code blocks, no extra text.`

// Shape is the ideation document layout shown to the model.
const Shape = `{
  "projectName": "string",
  "description": "string",
  "features": ["string"],
  "components": [
    {
      "name": "string",
      "purpose": "string",
      "props": ["string"]
    }
  ],
  "fileStructure": {
    "fileName": "description"
  },
  "techStack": {
    "frontend": ["string"],
    "backend": ["string"]
  },
  "userFlows": ["string"],
  "designConsiderations": ["string"]
}`

const taskTemplate = `User Request: %s

Analyze this request and produce a comprehensive ideation document covering:
1. A clear project name and description
2. The list of features to implement
3. A component breakdown with purposes
4. File structure recommendations
5. User flows and interactions
6. Design considerations`
