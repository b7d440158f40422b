package handler

// ChatRequest uses a pointer so a missing or non-string "message" field is
// distinguishable from an empty one at the binding boundary.
type ChatRequest struct {
	Message *string `json:"message"`
}

type ChatResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type RefreshResponse struct {
	Success     bool   `json:"success"`
	Inserted    int    `json:"inserted"`
	Deleted     int    `json:"deleted"`
	TotalStored int    `json:"total_stored"`
	Error       string `json:"error,omitempty"`
}

type HeadlineResponse struct {
	ID          int64  `json:"id"`
	Headline    string `json:"headline"`
	URL         string `json:"url,omitempty"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	CreatedAt   string `json:"created_at"`
}

type HeadlinesResponse struct {
	Headlines []HeadlineResponse `json:"headlines"`
	Limit     int                `json:"limit"`
}
