// Package datastore - Handles all interaction with the CSV datasets
package datastore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/securecorp/secreport/config"
	"github.com/securecorp/secreport/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = InitLogger() // setup the logger

// InitLogger sets up the Zap Logger to log to the console in a human readable format
func InitLogger() *zap.Logger {
	prodConfig := zap.NewProductionConfig()
	prodConfig.Encoding = "console"
	prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	prodConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	l, _ := prodConfig.Build()
	return l
}

// Store provides filtered access to the three report datasets. The row order
// within one dataset is the file's natural order; callers must not rely on it
// for anything beyond table display.
type Store interface {
	SecurityEvents(window model.TimeWindow) ([]model.SecurityEvent, error)
	PhishingCampaigns(window model.TimeWindow) ([]model.PhishingCampaign, error)
	ComplianceAssessments(window model.TimeWindow) ([]model.ComplianceAssessment, error)
}

// CSVStore reads the datasets from CSV files under a data directory, caching
// each parsed file after the first read. The files are read-only inputs, so
// the cache never invalidates.
type CSVStore struct {
	dataDir string

	mu     sync.Mutex
	events []model.SecurityEvent
	phish  []model.PhishingCampaign
	comp   []model.ComplianceAssessment
}

// NewCSVStore creates a store over the given data directory.
func NewCSVStore(dataDir string) *CSVStore {
	return &CSVStore{dataDir: dataDir}
}

// SecurityEvents returns the security events whose date lies in the window.
func (s *CSVStore) SecurityEvents(window model.TimeWindow) ([]model.SecurityEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.events == nil {
		rows, err := readRows(s.dataDir, config.DatasetSecurityEvents)
		if err != nil {
			return nil, err
		}
		events, err := parseSecurityEvents(rows)
		if err != nil {
			return nil, &model.DataSourceError{Dataset: config.DatasetSecurityEvents, Err: err}
		}
		s.events = events
	}

	var out []model.SecurityEvent
	for _, e := range s.events {
		if window.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// PhishingCampaigns returns the phishing campaigns whose date lies in the window.
func (s *CSVStore) PhishingCampaigns(window model.TimeWindow) ([]model.PhishingCampaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phish == nil {
		rows, err := readRows(s.dataDir, config.DatasetPhishing)
		if err != nil {
			return nil, err
		}
		campaigns, err := parsePhishingCampaigns(rows)
		if err != nil {
			return nil, &model.DataSourceError{Dataset: config.DatasetPhishing, Err: err}
		}
		s.phish = campaigns
	}

	var out []model.PhishingCampaign
	for _, p := range s.phish {
		if window.Contains(p.Date) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ComplianceAssessments returns the assessments whose date lies in the window.
func (s *CSVStore) ComplianceAssessments(window model.TimeWindow) ([]model.ComplianceAssessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.comp == nil {
		rows, err := readRows(s.dataDir, config.DatasetCompliance)
		if err != nil {
			return nil, err
		}
		assessments, err := parseComplianceAssessments(rows)
		if err != nil {
			return nil, &model.DataSourceError{Dataset: config.DatasetCompliance, Err: err}
		}
		s.comp = assessments
	}

	var out []model.ComplianceAssessment
	for _, c := range s.comp {
		if window.Contains(c.Date) {
			out = append(out, c)
		}
	}
	return out, nil
}

// row is one CSV record keyed by header name.
type row map[string]string

func readRows(dataDir, filename string) ([]row, error) {
	path := filepath.Join(dataDir, filename)

	f, err := os.Open(path) // #nosec G304 -- path is a fixed dataset under the configured data dir
	if err != nil {
		return nil, &model.DataSourceError{Dataset: filename, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			err = fmt.Errorf("file is empty")
		}
		return nil, &model.DataSourceError{Dataset: filename, Err: err}
	}

	var rows []row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &model.DataSourceError{Dataset: filename, Err: err}
		}
		m := make(row, len(header))
		for i, col := range header {
			if i < len(record) {
				m[strings.TrimSpace(col)] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, m)
	}

	if len(rows) == 0 {
		return nil, &model.DataSourceError{Dataset: filename, Err: fmt.Errorf("file has no data rows")}
	}

	logger.Sugar().Infof("Loaded %d rows from %s", len(rows), filename)
	return rows, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

func parseFloat(value string) float64 {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(value string) int {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return v
}

func parseSecurityEvents(rows []row) ([]model.SecurityEvent, error) {
	events := make([]model.SecurityEvent, 0, len(rows))
	for i, r := range rows {
		date, err := parseDate(r["date"])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		events = append(events, model.SecurityEvent{
			EventID:         r["event_id"],
			Date:            date,
			EventType:       r["event_type"],
			Severity:        r["severity"],
			Status:          r["status"],
			Source:          r["source"],
			Target:          r["target"],
			ImpactScore:     parseFloat(r["impact_score"]),
			ResolutionHours: parseFloat(r["resolution_time_hours"]),
			Description:     r["description"],
		})
	}
	return events, nil
}

func parsePhishingCampaigns(rows []row) ([]model.PhishingCampaign, error) {
	campaigns := make([]model.PhishingCampaign, 0, len(rows))
	for i, r := range rows {
		date, err := parseDate(r["date"])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		campaigns = append(campaigns, model.PhishingCampaign{
			CampaignID:      r["campaign_id"],
			Date:            date,
			CampaignType:    r["campaign_type"],
			EmailsSent:      parseInt(r["emails_sent"]),
			EmailsDelivered: parseInt(r["emails_delivered"]),
			ClickedCount:    parseInt(r["clicked_count"]),
			BlockedCount:    parseInt(r["blocked_count"]),
			ReportedCount:   parseInt(r["reported_count"]),
			SuccessRate:     parseFloat(r["success_rate"]),
			ThreatLevel:     r["threat_level"],
		})
	}
	return campaigns, nil
}

func parseComplianceAssessments(rows []row) ([]model.ComplianceAssessment, error) {
	assessments := make([]model.ComplianceAssessment, 0, len(rows))
	for i, r := range rows {
		date, err := parseDate(r["date"])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		assessments = append(assessments, model.ComplianceAssessment{
			AssessmentID:    r["assessment_id"],
			Date:            date,
			Framework:       r["framework"],
			ControlID:       r["control_id"],
			ControlCategory: r["control_category"],
			Status:          r["status"],
			ComplianceScore: parseFloat(r["compliance_score"]),
			Finding:         r["finding"],
		})
	}
	return assessments, nil
}

// ApplyFocusAreas narrows security events to the requested focus areas. An
// event is kept when it matches any selected area. No focus areas means no
// narrowing.
func ApplyFocusAreas(events []model.SecurityEvent, focusAreas []string) []model.SecurityEvent {
	if len(focusAreas) == 0 {
		return events
	}

	// Only these areas narrow the event set; other areas steer the AI
	// narrative and leave the data untouched.
	var filters []func(model.SecurityEvent) bool
	for _, area := range focusAreas {
		a := strings.ToLower(area)
		switch {
		case strings.Contains(a, "phishing"):
			filters = append(filters, func(e model.SecurityEvent) bool {
				return strings.Contains(strings.ToLower(e.EventType), "phishing")
			})
		case strings.Contains(a, "malware"):
			filters = append(filters, func(e model.SecurityEvent) bool {
				return strings.Contains(strings.ToLower(e.EventType), "malware")
			})
		case strings.Contains(a, "endpoint"):
			filters = append(filters, func(e model.SecurityEvent) bool {
				return strings.Contains(strings.ToLower(e.Target), "endpoint")
			})
		case strings.Contains(a, "network"):
			filters = append(filters, func(e model.SecurityEvent) bool {
				return strings.Contains(strings.ToLower(e.Source), "network")
			})
		}
	}
	if len(filters) == 0 {
		return events
	}

	matches := func(e model.SecurityEvent) bool {
		for _, f := range filters {
			if f(e) {
				return true
			}
		}
		return false
	}

	var out []model.SecurityEvent
	for _, e := range events {
		if matches(e) {
			out = append(out, e)
		}
	}
	return out
}
