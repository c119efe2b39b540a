package models

// SessionView is everything a presentation layer needs to draw one session.
type SessionView struct {
	SessionID     string        `json:"session_id"`
	Page          Page          `json:"page"`
	Busy          bool          `json:"busy"`
	BusyText      string        `json:"busy_text,omitempty"`
	ForceRefresh  bool          `json:"force_refresh"`
	IngestionMode IngestionMode `json:"ingestion_mode"`
	Turns         []ChatTurn    `json:"turns"`
}

// AboutResponse is the content of the informational page.
type AboutResponse struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	ImageCaption   string `json:"image_caption"`
	ChatGuidelines string `json:"chat_guidelines"`
}

// IngestionAccepted acknowledges that a submission was handed off.
type IngestionAccepted struct {
	Message string        `json:"message"`
	Mode    IngestionMode `json:"mode"`
}
