package models

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is a toast shown to the user. ID identifies the exact instance so
// expiry never removes a later message with the same text.
type Message struct {
	ID   string `json:"id"`
	Text string `json:"message"`
	Kind Kind   `json:"type"`
}
