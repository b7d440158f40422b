package model

// ChatResponse is the outcome of one chat request. Exactly one of Message
// (on success) or Error (on failure) carries meaning.
type ChatResponse struct {
	Success bool
	Message string
	Error   string
}
