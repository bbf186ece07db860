package document

// ContentTypePDF is the MIME type of rendered order documents.
const ContentTypePDF = "application/pdf"

// Document is a rendered order summary, attached once to the notification email.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}
