package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/securecorp/secreport/config"
	"github.com/securecorp/secreport/insight"
	"github.com/securecorp/secreport/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubStore serves fixed slices and counts loader calls.
type stubStore struct {
	events      []model.SecurityEvent
	campaigns   []model.PhishingCampaign
	assessments []model.ComplianceAssessment
	calls       int
	err         error
}

func (s *stubStore) SecurityEvents(w model.TimeWindow) ([]model.SecurityEvent, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	var out []model.SecurityEvent
	for _, e := range s.events {
		if w.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubStore) PhishingCampaigns(w model.TimeWindow) ([]model.PhishingCampaign, error) {
	s.calls++
	return s.campaigns, s.err
}

func (s *stubStore) ComplianceAssessments(w model.TimeWindow) ([]model.ComplianceAssessment, error) {
	s.calls++
	return s.assessments, s.err
}

// stubProvider returns canned content or an error.
type stubProvider struct {
	content model.InsightContent
	err     error
	delay   time.Duration
}

func (p *stubProvider) Generate(ctx context.Context, req insight.Request) (model.InsightContent, error) {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return model.InsightContent{}, ctx.Err()
		}
	}
	return p.content, p.err
}

func fixedNow() time.Time {
	return time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
}

func newTestService(store *stubStore, provider insight.Provider) *ReportService {
	svc := NewReportService(config.AppConfig{CompanyName: "SecureCorp Inc."}, config.DefaultCatalog(), store, provider, zap.NewNop().Sugar())
	svc.Now = fixedNow
	return svc
}

func validRequest() model.ReportRequest {
	return model.ReportRequest{
		RecipientEmail: "ciso@securecorp.com",
		ReportType:     "monthly_threat",
		TimePeriod:     "last_month",
	}
}

func TestValidateRequest(t *testing.T) {
	svc := newTestService(&stubStore{}, nil)

	cases := []struct {
		name    string
		mutate  func(*model.ReportRequest)
		wantErr bool
	}{
		{"valid", func(r *model.ReportRequest) {}, false},
		{"missing email", func(r *model.ReportRequest) { r.RecipientEmail = "" }, true},
		{"malformed email", func(r *model.ReportRequest) { r.RecipientEmail = "not-an-email" }, true},
		{"unknown report type", func(r *model.ReportRequest) { r.ReportType = "weekly_digest" }, true},
		{"unknown period", func(r *model.ReportRequest) { r.TimePeriod = "last_week" }, true},
		{"unknown focus area", func(r *model.ReportRequest) { r.FocusAreas = []string{"Quantum Defense"} }, true},
		{"known focus area", func(r *model.ReportRequest) { r.FocusAreas = []string{"Phishing Statistics"} }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			err := svc.ValidateRequest(req)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, model.IsRequestError(err), "must map to a 4xx")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildPayloadRejectsBeforeLoading(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(store, nil)

	req := validRequest()
	req.ReportType = "weekly_digest"
	_, err := svc.BuildPayload(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 0, store.calls, "invalid requests must not touch the datasets")
}

func TestBuildPayloadDataSourceErrorIsFatal(t *testing.T) {
	store := &stubStore{err: &model.DataSourceError{Dataset: "security_events.csv", Err: errors.New("corrupt")}}
	svc := newTestService(store, nil)

	_, err := svc.BuildPayload(context.Background(), validRequest())
	var dse *model.DataSourceError
	require.ErrorAs(t, err, &dse)
}

func TestBuildPayloadPlaceholderWithoutProvider(t *testing.T) {
	svc := newTestService(&stubStore{}, nil)

	payload, err := svc.BuildPayload(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, insight.PlaceholderSummary, payload.Insights.ExecutiveSummary)
	assert.Equal(t, []string{insight.PlaceholderFinding}, payload.Insights.KeyFindings)
}

func TestBuildPayloadPlaceholderOnProviderError(t *testing.T) {
	provider := &stubProvider{err: model.ErrEnrichmentUnavailable}
	svc := newTestService(&stubStore{}, provider)

	payload, err := svc.BuildPayload(context.Background(), validRequest())
	require.NoError(t, err, "enrichment failure is never fatal")
	assert.Equal(t, insight.PlaceholderSummary, payload.Insights.ExecutiveSummary)
}

func TestBuildPayloadPlaceholderOnProviderTimeout(t *testing.T) {
	provider := &stubProvider{
		delay:   200 * time.Millisecond,
		content: model.InsightContent{ExecutiveSummary: "too late"},
	}
	svc := newTestService(&stubStore{}, provider)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	payload, err := svc.BuildPayload(ctx, validRequest())
	require.NoError(t, err, "a timed-out provider never fails the report")
	assert.Equal(t, insight.PlaceholderSummary, payload.Insights.ExecutiveSummary)
}

func TestBuildPayloadUsesProviderContent(t *testing.T) {
	provider := &stubProvider{content: model.InsightContent{
		ExecutiveSummary: "All quiet.",
		KeyFindings:      []string{"No critical events."},
		Recommendations:  []string{"Keep patching."},
	}}
	svc := newTestService(&stubStore{}, provider)

	payload, err := svc.BuildPayload(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "All quiet.", payload.Insights.ExecutiveSummary)
}

func TestBuildPayloadWindowAndMetadata(t *testing.T) {
	store := &stubStore{events: []model.SecurityEvent{
		{EventID: "in", Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), EventType: "Phishing", Severity: "High", Status: "Open"},
		{EventID: "out", Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), EventType: "Phishing", Severity: "High", Status: "Open"},
	}}
	svc := newTestService(store, nil)

	payload, err := svc.BuildPayload(context.Background(), validRequest())
	require.NoError(t, err)

	// last_month relative to March 15 is all of February.
	assert.Equal(t, time.February, payload.Window.Start.Month())
	assert.Equal(t, 1, payload.Metrics.Security.TotalEvents)
	assert.Equal(t, "Monthly Threat Overview", payload.ReportTitle)
	assert.Equal(t, "SecureCorp Inc.", payload.CompanyName)
	assert.Equal(t, "Last Month", payload.PeriodDescription)
	assert.Equal(t, fixedNow(), payload.GeneratedAt)
	assert.NotEmpty(t, payload.ReportID)
}

func TestBuildPayloadIdempotentModuloIdentity(t *testing.T) {
	store := &stubStore{events: []model.SecurityEvent{
		{EventID: "e1", Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), EventType: "Phishing", Severity: "High", Status: "Open"},
	}}
	svc := newTestService(store, nil)

	a, err := svc.BuildPayload(context.Background(), validRequest())
	require.NoError(t, err)
	b, err := svc.BuildPayload(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEqual(t, a.ReportID, b.ReportID)
	a.ReportID, b.ReportID = "", ""
	assert.Equal(t, a, b, "identical inputs produce identical reports apart from identity")
}

func TestKPICardsPerReportType(t *testing.T) {
	svc := newTestService(&stubStore{}, nil)
	var m model.ReportMetrics

	assert.Len(t, svc.kpiCards("phishing_deep_dive", m), 4)
	assert.Len(t, svc.kpiCards("compliance_status", m), 3)
	assert.Len(t, svc.kpiCards("incident_response", m), 5)
	assert.Len(t, svc.kpiCards("monthly_threat", m), 7)
	assert.Len(t, svc.kpiCards("quarterly_review", m), 10)

	cards := svc.kpiCards("compliance_status", m)
	assert.Equal(t, "Compliance Rate", cards[0].Label)
	assert.Equal(t, "0.0%", cards[0].Value)
}
