package export

import "time"

type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

func (f Format) Valid() bool {
	switch f {
	case FormatXML, FormatJSON, FormatPDF:
		return true
	}
	return false
}

// ExportRequest is the body of POST /api/acord/export.
type ExportRequest struct {
	SubmissionID string `json:"submissionId"`
	Format       Format `json:"format"`
	EmailToAgent bool   `json:"emailToAgent,omitempty"`
	AgentEmail   string `json:"agentEmail,omitempty"`
}

type Metadata struct {
	TemplateName   string     `json:"templateName"`
	LineOfBusiness []string   `json:"lineOfBusiness"`
	SubmittedAt    *time.Time `json:"submittedAt"`
	PolicyNumber   string     `json:"policyNumber"`
}

// Envelope is the json export format.
type Envelope struct {
	Success      bool     `json:"success"`
	SubmissionID string   `json:"submissionId"`
	XML          string   `json:"xml"`
	Metadata     Metadata `json:"metadata"`
}

// Document is a generated export ready to be written to a response.
type Document struct {
	Format      Format
	ContentType string
	Filename    string
	Body        []byte
	// Envelope is set for the json format only.
	Envelope *Envelope
}
