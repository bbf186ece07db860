package notification

import "github.com/corray333/backend-labs/notify/internal/service/models/document"

// Email is a fully composed notification ready for delivery.
type Email struct {
	From       string
	To         string
	Subject    string
	HTMLBody   string
	Attachment document.Document
}
