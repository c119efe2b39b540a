package models

// Role identifies who authored a chat turn.
type Role string

const (
	RoleAI    Role = "AI"
	RoleHuman Role = "Human"
)

// ChatTurn is a single message in the transcript. Turns are never mutated
// after they are appended to a conversation.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	Avatar  string `json:"avatar,omitempty"`
}

// Page is one of the two views the navigation shell can show.
type Page string

const (
	PageAbout Page = "about"
	PageChat  Page = "chat"
)

// Valid reports whether p names a known page.
func (p Page) Valid() bool {
	return p == PageAbout || p == PageChat
}
