// internal/agents/coding/config.go
package coding

const (
	UseCaseGenerate = "code-generation"
	UseCaseUpdate   = "code-update"
)

// SystemPrompt is the persona shared by code generation and code update.
const SystemPrompt = `You are an expert Full-Stack Developer AI agent specializing in React applications. Your role is to:
1. Generate production-ready React code based on ideation documents
2. Create clean, maintainable, and well-documented code
3. Follow best practices and modern React patterns (hooks, functional components)
4. Include proper error handling and loading states
5. Write semantic HTML and accessible components

Rules:
- Never wrap code in markdown fences
- Include all necessary imports
- Add inline comments for complex logic
- Return valid, executable code`

const Shape = `{
  "files": [
    {
      "path": "src/components/ComponentName.jsx",
      "content": "the actual code without markdown formatting"
    }
  ]
}`

const generateTask = `Generate complete React code files for the project described by the ideation document below. For each component:
1. Use functional components with hooks
2. Include prop validation
3. Add error boundaries where appropriate
4. Implement loading and error states
5. Use Tailwind CSS for styling`

const updateTask = `Apply the update request to the current code and provide the updated code.
Return ONLY the code, without markdown formatting or explanations.`
