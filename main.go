// package main provides the entry point for the secreport microservice, which
// generates AI-assisted security reports from CSV datasets and delivers them
// as PDF email attachments.
package main

import (
	"context"
	"log"

	"github.com/securecorp/secreport/config"
	"github.com/securecorp/secreport/datastore"
	reportevents "github.com/securecorp/secreport/events/modules/reports"
	"github.com/securecorp/secreport/insight"
	"github.com/securecorp/secreport/internal/api"
	"github.com/securecorp/secreport/internal/kafka"
	"github.com/securecorp/secreport/internal/services"
	"github.com/securecorp/secreport/mailer"
)

func main() {
	logger := datastore.InitLogger()
	defer logger.Sync() //nolint:errcheck
	sugar := logger.Sugar()

	cfg := config.Load()

	catalog, err := config.LoadCatalog()
	if err != nil {
		log.Fatalf("Failed to load report catalog: %v", err)
	}

	store := datastore.NewCSVStore(cfg.DataDir)

	// Insight provider is optional; without an API key reports carry
	// placeholder narrative text.
	var provider insight.Provider
	if p := insight.NewOpenAIProvider(cfg); p != nil {
		provider = p
		sugar.Infof("Insight provider enabled with model %s", cfg.OpenAIModel)
	} else {
		sugar.Warn("OPENAI_API_KEY not set, reports will use placeholder insights")
	}

	mail := mailer.New(cfg)
	if !mail.Configured() {
		sugar.Warn("SMTP credentials not set, reports will be generated but not emailed")
	}

	producer := reportevents.NewReportProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	if producer != nil {
		defer producer.Close() //nolint:errcheck
		sugar.Infof("Report events will be published to topic %s", cfg.KafkaTopic)
	}

	svc := services.NewReportService(cfg, catalog, store, provider, sugar)
	delivery := services.NewReportDelivery(svc, mail, producer)

	// Async workers consume report requests from Kafka when brokers are set.
	if err := kafka.RunEventProcessor(context.Background(), cfg, delivery); err != nil {
		sugar.Warnf("Kafka event processor not started: %v", err)
	}

	app := api.NewFiberApp(delivery)

	sugar.Infof("Starting %s on port %s", cfg.AppName, cfg.Port)
	sugar.Infof("GraphQL endpoint available at /api/v1/graphql")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
