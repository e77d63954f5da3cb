package scaffold

import (
	"strings"
	"text/template"
)

var tmplFuncs = template.FuncMap{
	"join": strings.Join,
	"inc":  func(i int) int { return i + 1 },
}

var guideTmpl = template.Must(template.New("guide").Funcs(tmplFuncs).Parse(`# Project Implementation Guide: {{.Title}}

## Overview
{{.Description}}

## Implementation Checklist

### Setup
- [x] Create project structure
- [ ] Install dependencies
- [ ] Configure server for port 3000
- [ ] Setup build process
- [ ] Configure environment variables

### Features
{{range .Features}}- [ ] **{{.Name}}** (Priority: {{.Priority}})
  - {{.Description}}
{{end}}
### Technical Requirements
{{range .Technologies}}- [ ] **{{.Name}}**: {{.Purpose}}
{{end}}
### Architecture Implementation
**Type:** {{.Architecture.Type}}

**Components to Implement:**
{{range .Architecture.Components}}- [ ] **{{.Name}}**
  - Purpose: {{.Purpose}}
  - Interactions: {{join .Interactions ", "}}
{{end}}
## Implementation Plan
{{range $i, $p := .ImplementationPlan}}### Phase {{inc $i}}: {{$p.Phase}} ({{$p.Duration}})
{{range $p.Tasks}}- [ ] {{.Name}} ({{.Duration}})
{{end}}
{{end}}## Server Configuration
The application should be configured to run on the following ports:
- Frontend: http://localhost:3000
- Backend API: http://localhost:3001

## Development Guidelines
1. Write clean, modular code with proper comments
2. Implement proper error handling
3. Include tests for all major functionality
4. Use environment variables for configuration
5. Document API endpoints

## Next Steps
1. Start by implementing the server setup on port 3000
2. Implement core features first
3. Add styling and UI enhancements
4. Implement integration with required services
5. Add tests and documentation
`))

var prdTmpl = template.Must(template.New("prd").Parse(`# Project: {{.Title}}

## Project Description
{{.Description}}

## Project Links
- Frontend: http://localhost:3000
- Backend: http://localhost:3001

## Getting Started
1. Make sure you have Node.js installed
2. Run ` + "`npm install`" + ` to install dependencies
3. Run ` + "`npm run dev`" + ` to start the development server
4. Open your browser to http://localhost:3000

## Scope
This project implements the functionality defined in the PRD.
`))

var readmeTmpl = template.Must(template.New("readme").Parse(`# {{.Title}}

{{.Description}}

## Project Links
- Frontend: http://localhost:3000
- Backend: http://localhost:3001
- Project Directory: {{.ProjectDir}}

## Getting Started
1. Clone this repository
2. Install dependencies: ` + "`npm install`" + `
3. Start the development server: ` + "`npm run dev`" + `
4. Access the application at http://localhost:3000

## Features
{{range .Features}}- {{.Name}}: {{.Description}}
{{end}}
## Implementation Status
See IMPLEMENTATION_GUIDE.md for the current implementation status and next steps.
`))
