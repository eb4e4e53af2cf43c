package entity

// Gemini generateContent wire types. Only the fields the service reads are modelled.

type LLMPart struct {
	Text string `json:"text,omitempty"`
}

type LLMContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []LLMPart `json:"parts"`
}

type LLMGenerateContentRequest struct {
	Contents []LLMContent `json:"contents"`
}

type LLMCandidate struct {
	Content      LLMContent `json:"content"`
	FinishReason string     `json:"finishReason,omitempty"`
}

type LLMPromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

type LLMUsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type LLMGenerateContentResponse struct {
	Candidates     []LLMCandidate     `json:"candidates"`
	PromptFeedback *LLMPromptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  *LLMUsageMetadata  `json:"usageMetadata,omitempty"`
	ModelVersion   string             `json:"modelVersion,omitempty"`
}

// GitHub Markdown API request body.
type GitHubMarkdownRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}
