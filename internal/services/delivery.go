package services

import (
	"context"
	"time"

	reportevents "github.com/securecorp/secreport/events/modules/reports"
	"github.com/securecorp/secreport/model"
	"github.com/securecorp/secreport/render"
)

// publishTimeout bounds the best-effort Kafka publish so a slow broker never
// delays a response noticeably.
const publishTimeout = 5 * time.Second

// Renderer produces the on-disk PDF artifact for a finished payload and
// returns its path.
type Renderer interface {
	RenderPDF(payload model.ReportPayload, reportsDir string) (string, error)
}

// Sender delivers a finished report by email. Configured reports whether
// credentials are present; TestConnection backs the diagnostics endpoint.
type Sender interface {
	Configured() bool
	TestConnection() error
	SendReport(recipient string, payload model.ReportPayload, pdfPath string) error
}

// pdfRenderer is the production Renderer: HTML template plus wkhtmltopdf.
type pdfRenderer struct{}

func (pdfRenderer) RenderPDF(payload model.ReportPayload, reportsDir string) (string, error) {
	html, err := render.ReportHTML(payload)
	if err != nil {
		return "", err
	}
	return render.WritePDF(html, reportsDir, payload.ReportType, payload.GeneratedAt)
}

// ReportDelivery runs the full generate-render-deliver flow. It is shared by
// the REST handler and the Kafka event worker so both entry points behave
// identically.
type ReportDelivery struct {
	Svc      *ReportService
	Mail     Sender
	Producer *reportevents.ReportProducer
	Renderer Renderer
}

// NewReportDelivery wires a delivery pipeline with the production renderer.
func NewReportDelivery(svc *ReportService, mail Sender, producer *reportevents.ReportProducer) *ReportDelivery {
	return &ReportDelivery{
		Svc:      svc,
		Mail:     mail,
		Producer: producer,
		Renderer: pdfRenderer{},
	}
}

// GenerateAndDeliver builds the report, writes the PDF, publishes the event
// and attempts email delivery. A non-nil error means no PDF was produced;
// otherwise the response status reflects the delivery outcome: "success",
// "warning" (delivery failed) or "info" (delivery not configured).
func (d *ReportDelivery) GenerateAndDeliver(ctx context.Context, req model.ReportRequest) (model.ReportResponse, error) {
	payload, err := d.Svc.BuildPayload(ctx, req)
	if err != nil {
		return model.ReportResponse{}, err
	}

	pdfPath, err := d.Renderer.RenderPDF(payload, d.Svc.Cfg.ReportsDir)
	if err != nil {
		return model.ReportResponse{}, err
	}
	d.Svc.Log.Infof("Report %s written to %s", payload.ReportID, pdfPath)

	// Event publication is best-effort and never affects the outcome.
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := d.Producer.PublishReportGenerated(pubCtx, payload, req.RecipientEmail, pdfPath); err != nil {
			d.Svc.Log.Warnf("Report %s: event publish failed: %v", payload.ReportID, err)
		}
	}()

	if !d.Mail.Configured() {
		return model.ReportResponse{
			Status:   "info",
			Message:  "Report generated at " + pdfPath + "; email delivery is not configured",
			ReportID: payload.ReportID,
		}, nil
	}

	if err := d.Mail.SendReport(req.RecipientEmail, payload, pdfPath); err != nil {
		d.Svc.Log.Warnf("Report %s: delivery failed: %v", payload.ReportID, err)
		return model.ReportResponse{
			Status:   "warning",
			Message:  "Report generated at " + pdfPath + " but email delivery failed",
			ReportID: payload.ReportID,
		}, nil
	}

	d.Svc.Log.Infof("Report %s delivered to %s", payload.ReportID, req.RecipientEmail)
	return model.ReportResponse{
		Status:   "success",
		Message:  "Report generated and sent to " + req.RecipientEmail,
		ReportID: payload.ReportID,
	}, nil
}
