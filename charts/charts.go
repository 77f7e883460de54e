// Package charts builds the declarative chart specifications for a report.
// The builder performs no aggregation of its own: every series value comes
// from already-computed metrics. Each report type has a fixed chart list so
// two reports of the same type always share the same structure; a chart whose
// metric is empty still appears, with an empty series.
package charts

import (
	"strconv"

	"github.com/securecorp/secreport/model"
)

func groupSeries(name string, groups []model.GroupCount) model.ChartSeries {
	points := make([]model.SeriesPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, model.SeriesPoint{Label: g.Label, Value: float64(g.Count)})
	}
	return model.ChartSeries{Name: name, Points: points}
}

func eventsBySeverity(m model.ReportMetrics) model.ChartSpec {
	return model.ChartSpec{
		Title:       "Security Events by Severity",
		Kind:        model.ChartBar,
		Series:      []model.ChartSeries{groupSeries("Events", m.Security.BySeverity)},
		Explanation: "Distribution of security events across severity levels for the reporting period.",
	}
}

func eventsByStatus(m model.ReportMetrics) model.ChartSpec {
	return model.ChartSpec{
		Title:       "Security Events by Status",
		Kind:        model.ChartPie,
		Series:      []model.ChartSeries{groupSeries("Events", m.Security.ByStatus)},
		Explanation: "Current handling status of security events, from open through resolved.",
	}
}

func topEventTypes(m model.ReportMetrics) model.ChartSpec {
	return model.ChartSpec{
		Title:       "Top Event Types",
		Kind:        model.ChartBar,
		Series:      []model.ChartSeries{groupSeries("Events", m.Security.TopEventTypes)},
		Explanation: "The most frequent categories of security events observed in the window.",
	}
}

func eventsOverTime(m model.ReportMetrics) model.ChartSpec {
	labels := make([]string, 0, len(m.EventTrend))
	crit := model.ChartSeries{Name: "Critical"}
	high := model.ChartSeries{Name: "High"}
	total := model.ChartSeries{Name: "Total"}
	for _, p := range m.EventTrend {
		labels = append(labels, p.Month)
		crit.Points = append(crit.Points, model.SeriesPoint{Label: p.Month, Value: float64(p.Critical)})
		high.Points = append(high.Points, model.SeriesPoint{Label: p.Month, Value: float64(p.High)})
		total.Points = append(total.Points, model.SeriesPoint{Label: p.Month, Value: float64(p.Total)})
	}
	return model.ChartSpec{
		Title:       "Security Events Timeline",
		Kind:        model.ChartLine,
		XLabels:     labels,
		Series:      []model.ChartSeries{total, high, crit},
		Explanation: "Monthly security event volume over the reporting period, with critical and high severity called out.",
	}
}

func phishingByThreatLevel(m model.ReportMetrics) model.ChartSpec {
	return model.ChartSpec{
		Title:       "Phishing Campaigns by Threat Level",
		Kind:        model.ChartPie,
		Series:      []model.ChartSeries{groupSeries("Campaigns", m.Phishing.ByThreatLevel)},
		Explanation: "Share of phishing campaigns at each threat level.",
	}
}

func phishingByCampaignType(m model.ReportMetrics) model.ChartSpec {
	return model.ChartSpec{
		Title:       "Phishing Campaigns by Type",
		Kind:        model.ChartBar,
		Series:      []model.ChartSeries{groupSeries("Campaigns", m.Phishing.ByCampaignType)},
		Explanation: "Campaign volume broken down by attack technique.",
	}
}

func phishingFunnel(m model.ReportMetrics) model.ChartSpec {
	p := m.Phishing
	series := model.ChartSeries{Name: "Emails"}
	if p.TotalCampaigns > 0 {
		series.Points = []model.SeriesPoint{
			{Label: "Sent", Value: float64(p.TotalSent)},
			{Label: "Delivered", Value: float64(p.TotalDelivered)},
			{Label: "Clicked", Value: float64(p.TotalClicked)},
			{Label: "Blocked", Value: float64(p.TotalBlocked)},
			{Label: "Reported", Value: float64(p.TotalReported)},
		}
	}
	return model.ChartSpec{
		Title:       "Phishing Email Funnel",
		Kind:        model.ChartBar,
		Series:      []model.ChartSeries{series},
		Explanation: "Email counts through the phishing funnel, from sent through blocked and reported.",
	}
}

func complianceByFramework(m model.ReportMetrics) model.ChartSpec {
	return model.ChartSpec{
		Title:       "Compliance Controls by Framework",
		Kind:        model.ChartBar,
		Series:      []model.ChartSeries{groupSeries("Controls", m.Compliance.ByFramework)},
		Explanation: "Assessed controls per compliance framework.",
	}
}

func complianceByCategory(m model.ReportMetrics) model.ChartSpec {
	return model.ChartSpec{
		Title:       "Compliance Controls by Category",
		Kind:        model.ChartBar,
		Series:      []model.ChartSeries{groupSeries("Controls", m.Compliance.ByCategory)},
		Explanation: "Control coverage across control categories.",
	}
}

func complianceStatusSplit(m model.ReportMetrics) model.ChartSpec {
	c := m.Compliance
	series := model.ChartSeries{Name: "Controls"}
	if c.TotalControls > 0 {
		series.Points = []model.SeriesPoint{
			{Label: "Compliant", Value: float64(c.CompliantControls)},
			{Label: "Non-Compliant", Value: float64(c.NonCompliantControls)},
			{Label: "Other", Value: float64(c.TotalControls - c.CompliantControls - c.NonCompliantControls)},
		}
	}
	return model.ChartSpec{
		Title:       "Compliance Status",
		Kind:        model.ChartPie,
		Series:      []model.ChartSeries{series},
		Explanation: "Compliant versus non-compliant controls across all frameworks.",
	}
}

func impactVsResolution(events []model.SecurityEvent) model.ChartSpec {
	series := model.ChartSeries{Name: "Events"}
	for _, e := range events {
		if e.ImpactScore > 0 && e.ResolutionHours > 0 {
			series.Points = append(series.Points, model.SeriesPoint{
				Label: e.EventType,
				Value: e.ImpactScore,
				Y:     e.ResolutionHours,
			})
		}
	}
	return model.ChartSpec{
		Title:       "Impact Score vs Resolution Time",
		Kind:        model.ChartScatter,
		Series:      []model.ChartSeries{series},
		Explanation: "Each point is one resolved event: impact score against hours to resolution.",
	}
}

func impactDistribution(events []model.SecurityEvent) model.ChartSpec {
	// Bucket impact scores into unit-wide bins.
	buckets := map[string]int{}
	for _, e := range events {
		if e.ImpactScore <= 0 {
			continue
		}
		bin := int(e.ImpactScore)
		label := labelForBin(bin)
		buckets[label]++
	}
	series := model.ChartSeries{Name: "Events"}
	for bin := 0; bin < 11; bin++ {
		label := labelForBin(bin)
		if n, ok := buckets[label]; ok {
			series.Points = append(series.Points, model.SeriesPoint{Label: label, Value: float64(n)})
		}
	}
	return model.ChartSpec{
		Title:       "Impact Score Distribution",
		Kind:        model.ChartHistogram,
		Series:      []model.ChartSeries{series},
		Explanation: "How event impact scores are distributed across the reporting period.",
	}
}

func labelForBin(bin int) string {
	return strconv.Itoa(bin)
}

// BuildForReport returns the fixed chart list for the given report type.
// Unknown report types are rejected upstream at validation; the default case
// only guards against future catalog growth.
func BuildForReport(reportType string, m model.ReportMetrics, events []model.SecurityEvent) []model.ChartSpec {
	switch reportType {
	case "quarterly_review":
		return []model.ChartSpec{
			eventsBySeverity(m),
			eventsOverTime(m),
			complianceByFramework(m),
			phishingByThreatLevel(m),
			topEventTypes(m),
		}
	case "monthly_threat":
		return []model.ChartSpec{
			eventsBySeverity(m),
			eventsOverTime(m),
			topEventTypes(m),
			phishingByThreatLevel(m),
		}
	case "phishing_deep_dive":
		return []model.ChartSpec{
			phishingByThreatLevel(m),
			phishingByCampaignType(m),
			phishingFunnel(m),
		}
	case "compliance_status":
		return []model.ChartSpec{
			complianceByFramework(m),
			complianceByCategory(m),
			complianceStatusSplit(m),
		}
	case "incident_response":
		return []model.ChartSpec{
			eventsBySeverity(m),
			eventsByStatus(m),
			eventsOverTime(m),
			impactVsResolution(events),
			impactDistribution(events),
		}
	default:
		return []model.ChartSpec{
			eventsBySeverity(m),
			eventsOverTime(m),
		}
	}
}
