// Package dashboard implements the resolvers for dashboard metrics.
package dashboard

import (
	"time"

	"github.com/securecorp/secreport/datastore"
	"github.com/securecorp/secreport/metrics"
	"github.com/securecorp/secreport/model"
	"github.com/securecorp/secreport/util"
)

// windowFor resolves the period argument into a concrete time window.
func windowFor(period string) (model.TimeWindow, error) {
	return util.WindowForPeriod(period, time.Now())
}

// ResolveOverview handles fetching the high-level dashboard metrics
func ResolveOverview(store datastore.Store, period string) (interface{}, error) {
	window, err := windowFor(period)
	if err != nil {
		return nil, err
	}
	events, err := store.SecurityEvents(window)
	if err != nil {
		return nil, err
	}
	campaigns, err := store.PhishingCampaigns(window)
	if err != nil {
		return nil, err
	}
	assessments, err := store.ComplianceAssessments(window)
	if err != nil {
		return nil, err
	}

	m := metrics.Aggregate(events, campaigns, assessments)
	return map[string]interface{}{
		"total_events":        m.Security.TotalEvents,
		"critical_events":     m.Security.CriticalEvents,
		"high_events":         m.Security.HighEvents,
		"resolution_rate":     m.Security.ResolutionRate,
		"avg_impact_score":    m.Security.AvgImpactScore,
		"phishing_campaigns":  m.Phishing.TotalCampaigns,
		"phishing_click_rate": m.Phishing.ClickRate,
		"compliance_rate":     m.Compliance.ComplianceRate,
		"compliance_controls": m.Compliance.TotalControls,
		"high_risk_campaigns": m.Phishing.HighRiskCampaigns,
	}, nil
}

// ResolveSeverityDistribution fetches the current breakdown of events
func ResolveSeverityDistribution(store datastore.Store, period string) (interface{}, error) {
	window, err := windowFor(period)
	if err != nil {
		return nil, err
	}
	events, err := store.SecurityEvents(window)
	if err != nil {
		return nil, err
	}

	dist := map[string]interface{}{"critical": 0, "high": 0, "medium": 0, "low": 0}
	for _, e := range events {
		switch e.Severity {
		case "Critical":
			dist["critical"] = dist["critical"].(int) + 1
		case "High":
			dist["high"] = dist["high"].(int) + 1
		case "Medium":
			dist["medium"] = dist["medium"].(int) + 1
		case "Low":
			dist["low"] = dist["low"].(int) + 1
		}
	}
	return dist, nil
}

// ResolveEventTrend returns monthly event counts grouped by severity
func ResolveEventTrend(store datastore.Store, period string) (interface{}, error) {
	window, err := windowFor(period)
	if err != nil {
		return nil, err
	}
	events, err := store.SecurityEvents(window)
	if err != nil {
		return nil, err
	}
	return metrics.EventTrend(events), nil
}

// ResolveComplianceStatus returns the compliance posture for the period
func ResolveComplianceStatus(store datastore.Store, period string) (interface{}, error) {
	window, err := windowFor(period)
	if err != nil {
		return nil, err
	}
	assessments, err := store.ComplianceAssessments(window)
	if err != nil {
		return nil, err
	}

	m := metrics.ComplianceMetrics(assessments)
	return map[string]interface{}{
		"total_controls":         m.TotalControls,
		"compliant_controls":     m.CompliantControls,
		"non_compliant_controls": m.NonCompliantControls,
		"compliance_rate":        m.ComplianceRate,
		"avg_compliance_score":   m.AvgComplianceScore,
		"frameworks":             m.Frameworks,
		"by_framework":           m.ByFramework,
	}, nil
}

// ResolveTopEventTypes returns the most frequent event types for the period
func ResolveTopEventTypes(store datastore.Store, period string, limit int) (interface{}, error) {
	window, err := windowFor(period)
	if err != nil {
		return nil, err
	}
	events, err := store.SecurityEvents(window)
	if err != nil {
		return nil, err
	}

	m := metrics.SecurityMetrics(events)
	types := m.TopEventTypes
	if len(types) > limit {
		types = types[:limit]
	}
	return types, nil
}
