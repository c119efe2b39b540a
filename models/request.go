package models

// AskRequest is the body sent to the QA backend's /ask endpoint.
type AskRequest struct {
	Question string `json:"question"`
}

// SubmitQueryRequest is posted by the chat page when the user sends a message.
// Query may be blank; blank queries are ignored rather than rejected.
type SubmitQueryRequest struct {
	Query string `json:"query"`
}

type SelectPageRequest struct {
	Page Page `json:"page" binding:"required"`
}

type SelectModeRequest struct {
	Mode IngestionMode `json:"mode" binding:"required"`
}

type IngestTextRequest struct {
	Text string `json:"text"`
}

type IngestURLRequest struct {
	URL string `json:"url"`
}
