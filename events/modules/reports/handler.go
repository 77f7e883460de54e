package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/securecorp/secreport/model"
)

// ReportRequestedEvent represents a report generation request consumed from
// Kafka. It carries the same fields as the REST request body so both entry
// points behave identically.
type ReportRequestedEvent struct {
	EventType     string `json:"event_type"`
	EventID       string `json:"event_id"`
	SchemaVersion string `json:"schema_version"`

	Request model.ReportRequest `json:"request"`
}

// ReportGenerator defines the interface for generating and delivering reports.
type ReportGenerator interface {
	GenerateAndDeliver(ctx context.Context, req model.ReportRequest) (model.ReportResponse, error)
}

// HandleReportRequested processes report request events from Kafka.
func HandleReportRequested(ctx context.Context, msg []byte, generator ReportGenerator) error {
	var event ReportRequestedEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("failed to unmarshal ReportRequestedEvent: %w", err)
	}

	if event.Request.ReportType == "" || event.Request.RecipientEmail == "" {
		return fmt.Errorf("invalid event: missing required fields")
	}

	log.Printf("Processing report request %s (%s for %s)", event.EventID, event.Request.ReportType, event.Request.RecipientEmail)

	resp, err := generator.GenerateAndDeliver(ctx, event.Request)
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}

	log.Printf("Report request %s finished with status %s", event.EventID, resp.Status)
	return nil
}
