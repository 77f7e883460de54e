package reports

import "time"

// ReportGeneratedEvent is the contract published to Kafka after a report PDF
// has been produced.
type ReportGeneratedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	ReportID    string   `json:"report_id"`
	ReportType  string   `json:"report_type"`
	TimePeriod  string   `json:"time_period"`
	FocusAreas  []string `json:"focus_areas,omitempty"`
	Recipient   string   `json:"recipient"`
	PDFPath     string   `json:"pdf_path"`
	CompanyName string   `json:"company_name"`
}
