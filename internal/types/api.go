package types

// GenerateRequest is the HTTP payload for generating a configuration bundle from a
// natural-language instruction.
type GenerateRequest struct {
	Instruction string `json:"instruction"`
	BranchName  string `json:"branch_name,omitempty"`
}

type GenerateResponse struct {
	Success      bool              `json:"success"`
	Message      string            `json:"message"`
	ResourceKind string            `json:"resource_kind,omitempty"`
	BranchName   string            `json:"branch_name,omitempty"`
	PRURL        string            `json:"pr_url,omitempty"`
	Files        map[string]string `json:"terraform_files,omitempty"`
}

// MCPEvent is one server-sent event on the /mcp/events stream.
type MCPEvent struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

// PublishResult reports the outcome of pushing a bundle to version control.
type PublishResult struct {
	BranchName string `json:"branch_name"`
	PRURL      string `json:"pr_url"`
	FilesCount int    `json:"files_count"`
}
