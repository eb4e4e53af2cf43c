package entity

// GenerateReadmeRequest is the validated input of POST /generate.
type GenerateReadmeRequest struct {
	ProjectName  string
	Description  string
	Features     []string
	Technologies []string
	// License is DefaultLicense when the caller omitted it.
	License string
}

// GenerateReadmeBody is the wire shape of POST /generate. Fields are pointers
// so that a missing value can be told apart from an empty one, and a null list
// item from an empty string.
type GenerateReadmeBody struct {
	ProjectName  *string    `json:"project_name"`
	Description  *string    `json:"description"`
	Features     *[]*string `json:"features"`
	Technologies *[]*string `json:"technologies"`
	License      *string    `json:"license,omitempty"`
}

type GenerateReadmeResponse struct {
	Readme string `json:"readme"`
}

type RenderRequest struct {
	Markdown string `json:"markdown"`
	Mode     string `json:"mode,omitempty"`
}

type RenderResponse struct {
	HTML string `json:"html"`
}

type ExportRequest struct {
	Readme   string `json:"readme"`
	Format   string `json:"format"`
	FileName string `json:"file_name,omitempty"`
}

// ErrorResponse mirrors the {"detail": ...} body used for every failure.
// Detail is a string for service failures and []ValidationIssue for 422s.
type ErrorResponse struct {
	Detail any `json:"detail"`
}

type ValidationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}
