// Package reports handles Kafka event production for generated reports.
package reports

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/securecorp/secreport/model"
	"github.com/segmentio/kafka-go"
)

// ReportProducer sends report.generated events to Kafka. A nil producer is
// valid and publishes nothing; publication is best-effort and never blocks a
// report from being delivered.
type ReportProducer struct {
	Writer *kafka.Writer
}

// NewReportProducer initializes a Kafka writer for report events. Returns nil
// when no brokers are configured.
func NewReportProducer(brokers, topic string) *ReportProducer {
	if strings.TrimSpace(brokers) == "" {
		return nil
	}
	return &ReportProducer{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(brokers, ",")...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishReportGenerated sends the event to the Kafka topic.
func (p *ReportProducer) PublishReportGenerated(ctx context.Context, payload model.ReportPayload, recipient, pdfPath string) error {
	if p == nil {
		return nil
	}

	event := ReportGeneratedEvent{
		EventType:     "report.generated",
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		ReportID:      payload.ReportID,
		ReportType:    payload.ReportType,
		TimePeriod:    payload.TimePeriod,
		FocusAreas:    payload.FocusAreas,
		Recipient:     recipient,
		PDFPath:       pdfPath,
		CompanyName:   payload.CompanyName,
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.ReportID),
		Value: value,
	})
}

// Close cleans up the Kafka writer.
func (p *ReportProducer) Close() error {
	if p == nil {
		return nil
	}
	return p.Writer.Close()
}
