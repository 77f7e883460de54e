package model

import "time"

// ReportRequest is the body of POST /api/v1/generate-report.
type ReportRequest struct {
	RecipientEmail    string   `json:"recipient_email"`
	ReportType        string   `json:"report_type"`
	TimePeriod        string   `json:"time_period"`
	FocusAreas        []string `json:"focus_areas"`
	SpecificQuestions string   `json:"specific_questions"`
}

// ReportResponse is returned by POST /api/v1/generate-report. Status is
// "success", "warning" (PDF produced but delivery failed), "info" (PDF
// produced, delivery not configured) or "error".
type ReportResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	ReportID string `json:"report_id,omitempty"`
}

// GroupCount is one bucket of a grouped-count metric.
type GroupCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TrendPoint is one month of the event trend series.
type TrendPoint struct {
	Month    string `json:"month"`
	Critical int    `json:"critical"`
	High     int    `json:"high"`
	Medium   int    `json:"medium"`
	Low      int    `json:"low"`
	Total    int    `json:"total"`
}

// SecurityMetrics are the aggregates derived from the security events dataset.
type SecurityMetrics struct {
	TotalEvents        int          `json:"total_events"`
	CriticalEvents     int          `json:"critical_events"`
	HighEvents         int          `json:"high_events"`
	ResolvedEvents     int          `json:"resolved_events"`
	AvgImpactScore     float64      `json:"avg_impact_score"`
	AvgResolutionHours float64      `json:"avg_resolution_hours"`
	ResolutionRate     float64      `json:"resolution_rate"`
	TopEventTypes      []GroupCount `json:"top_event_types"`
	BySeverity         []GroupCount `json:"by_severity"`
	ByStatus           []GroupCount `json:"by_status"`
}

// PhishingMetrics are the aggregates derived from the phishing dataset.
type PhishingMetrics struct {
	TotalCampaigns    int          `json:"total_campaigns"`
	AvgSuccessRate    float64      `json:"avg_success_rate"`
	TotalSent         int          `json:"total_sent"`
	TotalDelivered    int          `json:"total_delivered"`
	TotalClicked      int          `json:"total_clicked"`
	TotalBlocked      int          `json:"total_blocked"`
	TotalReported     int          `json:"total_reported"`
	ClickRate         float64      `json:"click_rate"`
	HighRiskCampaigns int          `json:"high_risk_campaigns"`
	ByThreatLevel     []GroupCount `json:"by_threat_level"`
	ByCampaignType    []GroupCount `json:"by_campaign_type"`
}

// ComplianceMetrics are the aggregates derived from the compliance dataset.
// They are computed over the latest assessment of each (framework, control).
type ComplianceMetrics struct {
	TotalControls        int          `json:"total_controls"`
	CompliantControls    int          `json:"compliant_controls"`
	NonCompliantControls int          `json:"non_compliant_controls"`
	ComplianceRate       float64      `json:"compliance_rate"`
	AvgComplianceScore   float64      `json:"avg_compliance_score"`
	Frameworks           []string     `json:"frameworks"`
	ByFramework          []GroupCount `json:"by_framework"`
	ByCategory           []GroupCount `json:"by_category"`
}

// ReportMetrics bundles the per-dataset aggregates for one report.
type ReportMetrics struct {
	Security   SecurityMetrics   `json:"security_metrics"`
	Phishing   PhishingMetrics   `json:"phishing_metrics"`
	Compliance ComplianceMetrics `json:"compliance_metrics"`
	EventTrend []TrendPoint      `json:"event_trend"`
}

// ChartKind enumerates the chart kinds the renderer understands.
type ChartKind string

// Supported chart kinds.
const (
	ChartBar       ChartKind = "bar"
	ChartPie       ChartKind = "pie"
	ChartLine      ChartKind = "line"
	ChartScatter   ChartKind = "scatter"
	ChartHistogram ChartKind = "histogram"
)

// SeriesPoint is one data point of a chart series. For scatter charts Value
// is the x coordinate and Y the y coordinate; all other kinds use Value only.
type SeriesPoint struct {
	Label string  `json:"label,omitempty"`
	Value float64 `json:"value"`
	Y     float64 `json:"y,omitempty"`
}

// ChartSeries is one named series of a chart spec.
type ChartSeries struct {
	Name   string        `json:"name"`
	Points []SeriesPoint `json:"points"`
}

// ChartSpec is a declarative chart description, independent of any rendering
// technology. Series values always come from already-computed metrics.
type ChartSpec struct {
	Title       string        `json:"title"`
	Kind        ChartKind     `json:"kind"`
	XLabels     []string      `json:"x_labels,omitempty"`
	Series      []ChartSeries `json:"series"`
	Explanation string        `json:"explanation"`
}

// Empty reports whether the spec carries no data points at all.
func (c ChartSpec) Empty() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

// KPICard is one labeled, formatted metric surfaced at the top of the report.
type KPICard struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// InsightContent holds the three AI-generated text artifacts.
type InsightContent struct {
	ExecutiveSummary string   `json:"executive_summary"`
	KeyFindings      []string `json:"key_findings"`
	Recommendations  []string `json:"recommendations"`
}

// ReportPayload is the complete renderer-agnostic report structure. It is
// created once per request and never mutated afterwards.
type ReportPayload struct {
	ReportID          string                 `json:"report_id"`
	ReportType        string                 `json:"report_type"`
	ReportTitle       string                 `json:"report_title"`
	CompanyName       string                 `json:"company_name"`
	TimePeriod        string                 `json:"time_period"`
	PeriodDescription string                 `json:"period_description"`
	Window            TimeWindow             `json:"window"`
	GeneratedAt       time.Time              `json:"generated_at"`
	FocusAreas        []string               `json:"focus_areas"`
	SpecificQuestions string                 `json:"specific_questions"`
	Metrics           ReportMetrics          `json:"metrics"`
	KPICards          []KPICard              `json:"kpi_cards"`
	Charts            []ChartSpec            `json:"charts"`
	Insights          InsightContent         `json:"insights"`
	Events            []SecurityEvent        `json:"events_data,omitempty"`
	Phishing          []PhishingCampaign     `json:"phishing_data,omitempty"`
	Compliance        []ComplianceAssessment `json:"compliance_data,omitempty"`
}
