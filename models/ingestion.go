package models

// IngestionMode selects which input the ingestion panel currently shows.
type IngestionMode string

const (
	ModeFile IngestionMode = "file"
	ModeText IngestionMode = "text"
	ModeURL  IngestionMode = "url"
)

// Valid reports whether m names a known ingestion mode.
func (m IngestionMode) Valid() bool {
	switch m {
	case ModeFile, ModeText, ModeURL:
		return true
	default:
		return false
	}
}

// DeclaredType is the document type a file upload claims to be.
type DeclaredType string

const (
	TypeTXT  DeclaredType = "txt"
	TypeDOCX DeclaredType = "docx"
	TypePDF  DeclaredType = "pdf"
)

// IngestionRequest is one of FileUpload, TextInput or URLInput.
type IngestionRequest interface {
	Mode() IngestionMode
}

// FileUpload carries a document the user picked from disk.
type FileUpload struct {
	Filename     string       `validate:"required"`
	Content      []byte       `validate:"required,min=1"`
	DeclaredType DeclaredType `validate:"oneof=txt docx pdf"`
}

func (FileUpload) Mode() IngestionMode { return ModeFile }

// TextInput carries text pasted into the manual entry box.
type TextInput struct {
	Text string `validate:"notblank"`
}

func (TextInput) Mode() IngestionMode { return ModeText }

// URLInput carries a website address to be crawled by the ingestion service.
type URLInput struct {
	URL string `validate:"required,http_url"`
}

func (URLInput) Mode() IngestionMode { return ModeURL }
