// Package metrics computes the aggregates a report is built from: counts,
// rates, averages and grouped breakdowns over the filtered datasets.
//
// Every rate is a percentage in [0, 100] rounded to one decimal place and is
// defined as 0.0 when its denominator is zero. Every average is computed over
// present values only and is 0.0 over the empty set. Grouped counts are
// sorted by descending count with ties broken by ascending label, so results
// do not depend on input row order.
package metrics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/securecorp/secreport/model"
)

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Rate returns numerator/denominator as a percentage, 0.0 when the
// denominator is zero.
func Rate(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0.0
	}
	return round1(float64(numerator) / float64(denominator) * 100)
}

// GroupCounts counts labels and returns the buckets sorted by descending
// count, ties broken by ascending label.
func GroupCounts(labels []string) []model.GroupCount {
	counts := make(map[string]int)
	for _, l := range labels {
		counts[l]++
	}

	out := make([]model.GroupCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, model.GroupCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// topN returns at most n buckets from an already-sorted grouped count.
func topN(groups []model.GroupCount, n int) []model.GroupCount {
	if len(groups) <= n {
		return groups
	}
	return groups[:n]
}

// SecurityMetrics aggregates the filtered security events. An empty input
// yields all-zero metrics and empty groups.
func SecurityMetrics(events []model.SecurityEvent) model.SecurityMetrics {
	m := model.SecurityMetrics{
		TopEventTypes: []model.GroupCount{},
		BySeverity:    []model.GroupCount{},
		ByStatus:      []model.GroupCount{},
	}
	if len(events) == 0 {
		return m
	}

	var types, severities, statuses []string
	var impactSum, impactN float64
	var resolutionSum, resolutionN float64

	for _, e := range events {
		types = append(types, e.EventType)
		severities = append(severities, e.Severity)
		statuses = append(statuses, e.Status)

		switch e.Severity {
		case "Critical":
			m.CriticalEvents++
		case "High":
			m.HighEvents++
		}
		if e.Status == "Resolved" {
			m.ResolvedEvents++
		}
		if e.ImpactScore > 0 {
			impactSum += e.ImpactScore
			impactN++
		}
		if e.ResolutionHours > 0 {
			resolutionSum += e.ResolutionHours
			resolutionN++
		}
	}

	m.TotalEvents = len(events)
	if impactN > 0 {
		m.AvgImpactScore = round1(impactSum / impactN)
	}
	if resolutionN > 0 {
		m.AvgResolutionHours = round1(resolutionSum / resolutionN)
	}
	m.ResolutionRate = Rate(m.ResolvedEvents, m.TotalEvents)
	m.TopEventTypes = topN(GroupCounts(types), 5)
	m.BySeverity = GroupCounts(severities)
	m.ByStatus = GroupCounts(statuses)
	return m
}

// PhishingMetrics aggregates the filtered phishing campaigns.
func PhishingMetrics(campaigns []model.PhishingCampaign) model.PhishingMetrics {
	m := model.PhishingMetrics{
		ByThreatLevel:  []model.GroupCount{},
		ByCampaignType: []model.GroupCount{},
	}
	if len(campaigns) == 0 {
		return m
	}

	var levels, types []string
	var successSum float64

	for _, c := range campaigns {
		levels = append(levels, c.ThreatLevel)
		types = append(types, c.CampaignType)

		m.TotalSent += c.EmailsSent
		m.TotalDelivered += c.EmailsDelivered
		m.TotalClicked += c.ClickedCount
		m.TotalBlocked += c.BlockedCount
		m.TotalReported += c.ReportedCount
		successSum += c.SuccessRate

		if c.ThreatLevel == "High" || c.ThreatLevel == "Critical" {
			m.HighRiskCampaigns++
		}
	}

	m.TotalCampaigns = len(campaigns)
	m.AvgSuccessRate = round1(successSum / float64(m.TotalCampaigns) * 100)
	m.ClickRate = Rate(m.TotalClicked, m.TotalDelivered)
	m.ByThreatLevel = GroupCounts(levels)
	m.ByCampaignType = GroupCounts(types)
	return m
}

// ComplianceMetrics aggregates the filtered compliance assessments, keeping
// only the latest assessment of each (framework, control) pair.
func ComplianceMetrics(assessments []model.ComplianceAssessment) model.ComplianceMetrics {
	m := model.ComplianceMetrics{
		Frameworks:  []string{},
		ByFramework: []model.GroupCount{},
		ByCategory:  []model.GroupCount{},
	}
	if len(assessments) == 0 {
		return m
	}

	latest := make(map[string]model.ComplianceAssessment)
	for _, a := range assessments {
		key := a.Framework + "\x00" + a.ControlID
		// On equal dates the later row wins, so same-day reassessments
		// supersede earlier ones in file order.
		if prev, ok := latest[key]; !ok || !a.Date.Before(prev.Date) {
			latest[key] = a
		}
	}

	var frameworks, categories []string
	frameworkSet := make(map[string]bool)
	var scoreSum, scoreN float64

	for _, a := range latest {
		frameworks = append(frameworks, a.Framework)
		categories = append(categories, a.ControlCategory)
		frameworkSet[a.Framework] = true

		switch a.Status {
		case "Compliant":
			m.CompliantControls++
		case "Non-Compliant":
			m.NonCompliantControls++
		}
		if a.ComplianceScore > 0 {
			scoreSum += a.ComplianceScore
			scoreN++
		}
	}

	m.TotalControls = len(latest)
	m.ComplianceRate = Rate(m.CompliantControls, m.TotalControls)
	if scoreN > 0 {
		m.AvgComplianceScore = round1(scoreSum / scoreN)
	}
	for fw := range frameworkSet {
		m.Frameworks = append(m.Frameworks, fw)
	}
	sort.Strings(m.Frameworks)
	m.ByFramework = GroupCounts(frameworks)
	m.ByCategory = GroupCounts(categories)
	return m
}

// EventTrend buckets security events per calendar month, split by severity.
// Months are returned in chronological order as YYYY-MM labels.
func EventTrend(events []model.SecurityEvent) []model.TrendPoint {
	if len(events) == 0 {
		return []model.TrendPoint{}
	}

	byMonth := make(map[string]*model.TrendPoint)
	for _, e := range events {
		month := e.Date.Format("2006-01")
		p, ok := byMonth[month]
		if !ok {
			p = &model.TrendPoint{Month: month}
			byMonth[month] = p
		}
		p.Total++
		switch e.Severity {
		case "Critical":
			p.Critical++
		case "High":
			p.High++
		case "Medium":
			p.Medium++
		case "Low":
			p.Low++
		}
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]model.TrendPoint, 0, len(months))
	for _, m := range months {
		out = append(out, *byMonth[m])
	}
	return out
}

// Aggregate computes the full metrics bundle for one report.
func Aggregate(events []model.SecurityEvent, campaigns []model.PhishingCampaign, assessments []model.ComplianceAssessment) model.ReportMetrics {
	return model.ReportMetrics{
		Security:   SecurityMetrics(events),
		Phishing:   PhishingMetrics(campaigns),
		Compliance: ComplianceMetrics(assessments),
		EventTrend: EventTrend(events),
	}
}

// Summary renders the metrics as a compact plain-text context block for the
// insight provider prompt.
func Summary(m model.ReportMetrics) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Security Events:\n")
	fmt.Fprintf(&b, "  - Total Events: %d\n", m.Security.TotalEvents)
	fmt.Fprintf(&b, "  - Critical Events: %d\n", m.Security.CriticalEvents)
	fmt.Fprintf(&b, "  - High Events: %d\n", m.Security.HighEvents)
	fmt.Fprintf(&b, "  - Resolution Rate: %.1f%%\n", m.Security.ResolutionRate)
	fmt.Fprintf(&b, "  - Avg Impact Score: %.1f\n", m.Security.AvgImpactScore)
	if len(m.Security.TopEventTypes) > 0 {
		parts := make([]string, 0, len(m.Security.TopEventTypes))
		for _, g := range m.Security.TopEventTypes {
			parts = append(parts, fmt.Sprintf("%s(%d)", g.Label, g.Count))
		}
		fmt.Fprintf(&b, "  - Top Event Types: %s\n", strings.Join(parts, ", "))
	}

	fmt.Fprintf(&b, "Phishing:\n")
	fmt.Fprintf(&b, "  - Total Campaigns: %d\n", m.Phishing.TotalCampaigns)
	fmt.Fprintf(&b, "  - Avg Success Rate: %.1f%%\n", m.Phishing.AvgSuccessRate)
	fmt.Fprintf(&b, "  - Click Rate: %.1f%%\n", m.Phishing.ClickRate)
	fmt.Fprintf(&b, "  - Emails Blocked: %d\n", m.Phishing.TotalBlocked)
	fmt.Fprintf(&b, "  - High Risk Campaigns: %d\n", m.Phishing.HighRiskCampaigns)

	fmt.Fprintf(&b, "Compliance:\n")
	fmt.Fprintf(&b, "  - Total Controls: %d\n", m.Compliance.TotalControls)
	fmt.Fprintf(&b, "  - Compliance Rate: %.1f%%\n", m.Compliance.ComplianceRate)
	fmt.Fprintf(&b, "  - Avg Compliance Score: %.1f\n", m.Compliance.AvgComplianceScore)
	if len(m.Compliance.Frameworks) > 0 {
		fmt.Fprintf(&b, "  - Frameworks: %s\n", strings.Join(m.Compliance.Frameworks, ", "))
	}

	return b.String()
}
