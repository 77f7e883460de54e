// Package model defines the data model shared across the report pipeline:
// dataset rows, time windows, metrics, chart specs and the report payload.
package model

import "time"

// SecurityEvent is one row of the security events dataset.
type SecurityEvent struct {
	EventID         string    `json:"event_id"`
	Date            time.Time `json:"date"`
	EventType       string    `json:"event_type"`
	Severity        string    `json:"severity"`
	Status          string    `json:"status"`
	Source          string    `json:"source"`
	Target          string    `json:"target"`
	ImpactScore     float64   `json:"impact_score"`
	ResolutionHours float64   `json:"resolution_time_hours"`
	Description     string    `json:"description"`
}

// PhishingCampaign is one row of the phishing campaigns dataset.
type PhishingCampaign struct {
	CampaignID      string    `json:"campaign_id"`
	Date            time.Time `json:"date"`
	CampaignType    string    `json:"campaign_type"`
	EmailsSent      int       `json:"emails_sent"`
	EmailsDelivered int       `json:"emails_delivered"`
	ClickedCount    int       `json:"clicked_count"`
	BlockedCount    int       `json:"blocked_count"`
	ReportedCount   int       `json:"reported_count"`
	SuccessRate     float64   `json:"success_rate"`
	ThreatLevel     string    `json:"threat_level"`
}

// ComplianceAssessment is one row of the compliance assessments dataset.
type ComplianceAssessment struct {
	AssessmentID    string    `json:"assessment_id"`
	Date            time.Time `json:"date"`
	Framework       string    `json:"framework"`
	ControlID       string    `json:"control_id"`
	ControlCategory string    `json:"control_category"`
	Status          string    `json:"status"`
	ComplianceScore float64   `json:"compliance_score"`
	Finding         string    `json:"finding"`
}

// TimeWindow is an inclusive date range derived from a time_period keyword.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the window, inclusive on both ends.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
