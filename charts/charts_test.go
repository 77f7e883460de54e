package charts

import (
	"testing"
	"time"

	"github.com/securecorp/secreport/metrics"
	"github.com/securecorp/secreport/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMetrics() model.ReportMetrics {
	events := []model.SecurityEvent{
		{Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), EventType: "Phishing", Severity: "Critical", Status: "Resolved", ImpactScore: 7, ResolutionHours: 3},
		{Date: time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), EventType: "Malware", Severity: "High", Status: "Open", ImpactScore: 5},
	}
	campaigns := []model.PhishingCampaign{
		{CampaignType: "Spear", ThreatLevel: "High", EmailsSent: 10, EmailsDelivered: 8, ClickedCount: 1, SuccessRate: 0.1},
	}
	return metrics.Aggregate(events, campaigns, nil)
}

func titles(specs []model.ChartSpec) []string {
	out := make([]string, 0, len(specs))
	for _, s := range specs {
		out = append(out, s.Title)
	}
	return out
}

func TestBuildForReportFixedLists(t *testing.T) {
	m := sampleMetrics()

	cases := map[string]int{
		"quarterly_review":   5,
		"monthly_threat":     4,
		"phishing_deep_dive": 3,
		"compliance_status":  3,
		"incident_response":  5,
	}
	for reportType, want := range cases {
		specs := BuildForReport(reportType, m, nil)
		assert.Len(t, specs, want, reportType)
	}
}

func TestBuildForReportIsStable(t *testing.T) {
	m := sampleMetrics()
	a := BuildForReport("monthly_threat", m, nil)
	b := BuildForReport("monthly_threat", m, nil)
	assert.Equal(t, titles(a), titles(b))
}

func TestEmptyMetricsStillProduceCharts(t *testing.T) {
	// A chart whose metric is empty still appears, with an empty series.
	var empty model.ReportMetrics
	empty.Security = metrics.SecurityMetrics(nil)
	empty.Phishing = metrics.PhishingMetrics(nil)
	empty.Compliance = metrics.ComplianceMetrics(nil)

	specs := BuildForReport("compliance_status", empty, nil)
	require.Len(t, specs, 3)
	for _, spec := range specs {
		assert.True(t, spec.Empty(), spec.Title)
		assert.NotEmpty(t, spec.Title)
	}
}

func TestEventsOverTimeSeries(t *testing.T) {
	m := sampleMetrics()
	spec := eventsOverTime(m)

	assert.Equal(t, model.ChartLine, spec.Kind)
	assert.Equal(t, []string{"2026-01", "2026-02"}, spec.XLabels)
	require.Len(t, spec.Series, 3)
	assert.Equal(t, "Total", spec.Series[0].Name)
	assert.Equal(t, 1.0, spec.Series[0].Points[0].Value)
}

func TestScatterUsesBothAxes(t *testing.T) {
	events := []model.SecurityEvent{
		{EventType: "Phishing", ImpactScore: 7.5, ResolutionHours: 12},
		{EventType: "Malware", ImpactScore: 3}, // unresolved, excluded
	}
	spec := impactVsResolution(events)

	assert.Equal(t, model.ChartScatter, spec.Kind)
	require.Len(t, spec.Series, 1)
	require.Len(t, spec.Series[0].Points, 1)
	assert.Equal(t, 7.5, spec.Series[0].Points[0].Value)
	assert.Equal(t, 12.0, spec.Series[0].Points[0].Y)
}

func TestImpactDistributionBins(t *testing.T) {
	events := []model.SecurityEvent{
		{ImpactScore: 1.2},
		{ImpactScore: 1.9},
		{ImpactScore: 7.4},
	}
	spec := impactDistribution(events)

	assert.Equal(t, model.ChartHistogram, spec.Kind)
	require.Len(t, spec.Series, 1)
	require.Len(t, spec.Series[0].Points, 2)
	assert.Equal(t, "1", spec.Series[0].Points[0].Label)
	assert.Equal(t, 2.0, spec.Series[0].Points[0].Value)
	assert.Equal(t, "7", spec.Series[0].Points[1].Label)
}
