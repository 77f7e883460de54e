package kafka

import (
	"context"
	"crypto/tls"
	"log"
	"strings"
	"time"

	"github.com/securecorp/secreport/config"
	reportevents "github.com/securecorp/secreport/events/modules/reports"
	"github.com/securecorp/secreport/internal/services"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// RunEventProcessor consumes report request events and generates reports
// asynchronously. Returns without starting a consumer when no brokers are
// configured.
func RunEventProcessor(ctx context.Context, cfg config.AppConfig, delivery *services.ReportDelivery) error {
	if strings.TrimSpace(cfg.KafkaBrokers) == "" {
		return nil
	}
	brokers := strings.Split(cfg.KafkaBrokers, ",")

	// Configure SASL/PLAIN using environment variables
	username := config.GetEnvDefault("KAFKA_API_KEY", "")
	password := config.GetEnvDefault("KAFKA_API_SECRET", "")

	var dialer *kafka.Dialer

	// Only configure SASL/TLS if credentials are provided
	if username != "" && password != "" {
		mechanism := plain.Mechanism{
			Username: username,
			Password: password,
		}

		dialer = &kafka.Dialer{
			Timeout:       10 * time.Second,
			DualStack:     true,
			SASLMechanism: mechanism,
			TLS:           &tls.Config{}, // Confluent Cloud requires TLS
		}
	} else {
		// Default dialer for local development (no SASL/TLS)
		dialer = &kafka.Dialer{
			Timeout:   10 * time.Second,
			DualStack: true,
		}
	}

	topic := config.GetEnvDefault("KAFKA_REQUEST_TOPIC", "secreport.requests")
	var conn *kafka.Conn
	var err error

	// Retry logic: 3 tries
	for i := 1; i <= 3; i++ {
		log.Printf("Kafka connection attempt %d/3...", i)
		conn, err = dialer.DialContext(ctx, "tcp", brokers[0])
		if err == nil {
			conn.Close()
			break
		}
		if i < 3 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		return err
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  "secreport-worker",
		Topic:    topic,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})

	go func() {
		defer reader.Close()

		log.Println("Kafka Event Processor started. Listening for report requests...")

		for {
			select {
			case <-ctx.Done():
				return
			default:
				msg, err := reader.ReadMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					continue
				}
				if err := reportevents.HandleReportRequested(ctx, msg.Value, delivery); err != nil {
					log.Printf("Report request event rejected: %v", err)
				}
			}
		}
	}()

	return nil
}
