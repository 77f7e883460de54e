// Package services provides the report generation pipeline.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/securecorp/secreport/charts"
	"github.com/securecorp/secreport/config"
	"github.com/securecorp/secreport/datastore"
	"github.com/securecorp/secreport/insight"
	"github.com/securecorp/secreport/metrics"
	"github.com/securecorp/secreport/model"
	"github.com/securecorp/secreport/util"
	"go.uber.org/zap"
)

// ReportService runs the load -> aggregate -> enrich -> assemble pipeline.
// It is a pure function of the request plus the dataset files, so concurrent
// requests need no coordination.
type ReportService struct {
	Cfg     config.AppConfig
	Catalog *config.Catalog
	Store   datastore.Store
	Insight insight.Provider // nil means placeholder content
	Log     *zap.SugaredLogger

	// Now is the clock used for time windows and timestamps.
	Now func() time.Time
}

// NewReportService wires a service with the real clock.
func NewReportService(cfg config.AppConfig, catalog *config.Catalog, store datastore.Store, provider insight.Provider, log *zap.SugaredLogger) *ReportService {
	return &ReportService{
		Cfg:     cfg,
		Catalog: catalog,
		Store:   store,
		Insight: provider,
		Log:     log,
		Now:     time.Now,
	}
}

// ValidateRequest checks the request against the catalog. It runs before any
// dataset is touched.
func (s *ReportService) ValidateRequest(req model.ReportRequest) error {
	if strings.TrimSpace(req.RecipientEmail) == "" {
		return &model.ValidationError{Field: "recipient_email", Reason: "required"}
	}
	if !strings.Contains(req.RecipientEmail, "@") {
		return &model.ValidationError{Field: "recipient_email", Reason: "not a valid email address"}
	}
	if req.ReportType == "" {
		return &model.ValidationError{Field: "report_type", Reason: "required"}
	}
	if _, ok := s.Catalog.ReportTypes[req.ReportType]; !ok {
		return &model.ConfigurationError{Kind: "report type", Value: req.ReportType}
	}
	if req.TimePeriod == "" {
		return &model.ValidationError{Field: "time_period", Reason: "required"}
	}
	if !config.ValidPeriod(req.TimePeriod) {
		return &model.ConfigurationError{Kind: "time period", Value: req.TimePeriod}
	}
	for _, area := range req.FocusAreas {
		if !s.Catalog.HasFocusArea(area) {
			return &model.ConfigurationError{Kind: "focus area", Value: area}
		}
	}
	return nil
}

// BuildPayload runs the full pipeline and returns the immutable report
// payload. Insight generation runs concurrently with chart building; a failed
// or timed-out insight call degrades to placeholder text.
func (s *ReportService) BuildPayload(ctx context.Context, req model.ReportRequest) (model.ReportPayload, error) {
	if err := s.ValidateRequest(req); err != nil {
		return model.ReportPayload{}, err
	}

	now := s.Now()
	window, err := util.WindowForPeriod(req.TimePeriod, now)
	if err != nil {
		return model.ReportPayload{}, &model.ConfigurationError{Kind: "time period", Value: req.TimePeriod}
	}

	events, err := s.Store.SecurityEvents(window)
	if err != nil {
		return model.ReportPayload{}, err
	}
	events = datastore.ApplyFocusAreas(events, req.FocusAreas)

	campaigns, err := s.Store.PhishingCampaigns(window)
	if err != nil {
		return model.ReportPayload{}, err
	}

	assessments, err := s.Store.ComplianceAssessments(window)
	if err != nil {
		return model.ReportPayload{}, err
	}

	aggregated := metrics.Aggregate(events, campaigns, assessments)
	reportType := s.Catalog.ReportTypes[req.ReportType]

	// Insight runs concurrently with chart building; neither depends on the
	// other.
	insightCh := make(chan model.InsightContent, 1)
	go func() {
		insightCh <- s.generateInsights(ctx, req, reportType, aggregated)
	}()

	chartSpecs := charts.BuildForReport(req.ReportType, aggregated, events)
	insights := <-insightCh

	payload := model.ReportPayload{
		ReportID:          uuid.New().String(),
		ReportType:        req.ReportType,
		ReportTitle:       reportType.Name,
		CompanyName:       s.Cfg.CompanyName,
		TimePeriod:        req.TimePeriod,
		PeriodDescription: util.PeriodLabel(req.TimePeriod),
		Window:            window,
		GeneratedAt:       now,
		FocusAreas:        req.FocusAreas,
		SpecificQuestions: req.SpecificQuestions,
		Metrics:           aggregated,
		KPICards:          s.kpiCards(req.ReportType, aggregated),
		Charts:            chartSpecs,
		Insights:          insights,
		Events:            events,
		Phishing:          campaigns,
		Compliance:        assessments,
	}
	return payload, nil
}

// generateInsights calls the provider and substitutes placeholders on any
// failure. Enrichment is best-effort, never fatal.
func (s *ReportService) generateInsights(ctx context.Context, req model.ReportRequest, rt config.ReportType, m model.ReportMetrics) model.InsightContent {
	if s.Insight == nil {
		return insight.PlaceholderContent()
	}

	content, err := s.Insight.Generate(ctx, insight.Request{
		ReportType:  req.ReportType,
		ReportTitle: rt.Name,
		Period:      util.PeriodLabel(req.TimePeriod),
		FocusAreas:  req.FocusAreas,
		Questions:   req.SpecificQuestions,
		Summary:     metrics.Summary(m),
	})
	if err != nil {
		s.Log.Warnf("Insight generation unavailable, using placeholders: %v", err)
		return insight.PlaceholderContent()
	}
	return content
}

// kpiCards returns the fixed, report-type-specific KPI list. Ordering is
// static per report type so identical inputs produce identical reports.
func (s *ReportService) kpiCards(reportType string, m model.ReportMetrics) []model.KPICard {
	security := []model.KPICard{
		{Label: "Total Security Events", Value: fmt.Sprintf("%d", m.Security.TotalEvents)},
		{Label: "Critical Events", Value: fmt.Sprintf("%d", m.Security.CriticalEvents)},
		{Label: "Resolution Rate", Value: fmt.Sprintf("%.1f%%", m.Security.ResolutionRate)},
		{Label: "Avg Impact Score", Value: fmt.Sprintf("%.1f", m.Security.AvgImpactScore)},
	}
	phishing := []model.KPICard{
		{Label: "Phishing Campaigns", Value: fmt.Sprintf("%d", m.Phishing.TotalCampaigns)},
		{Label: "Avg Success Rate", Value: fmt.Sprintf("%.1f%%", m.Phishing.AvgSuccessRate)},
		{Label: "Emails Blocked", Value: fmt.Sprintf("%d", m.Phishing.TotalBlocked)},
	}
	compliance := []model.KPICard{
		{Label: "Compliance Rate", Value: fmt.Sprintf("%.1f%%", m.Compliance.ComplianceRate)},
		{Label: "Total Controls", Value: fmt.Sprintf("%d", m.Compliance.TotalControls)},
		{Label: "Avg Compliance Score", Value: fmt.Sprintf("%.1f", m.Compliance.AvgComplianceScore)},
	}

	switch reportType {
	case "phishing_deep_dive":
		return append(phishing, model.KPICard{Label: "Click Rate", Value: fmt.Sprintf("%.1f%%", m.Phishing.ClickRate)})
	case "compliance_status":
		return compliance
	case "incident_response":
		return append(security, model.KPICard{Label: "Avg Resolution Hours", Value: fmt.Sprintf("%.1f", m.Security.AvgResolutionHours)})
	case "monthly_threat":
		return append(security, phishing...)
	default: // quarterly_review and future types: the full picture
		cards := append(security, phishing...)
		return append(cards, compliance...)
	}
}
