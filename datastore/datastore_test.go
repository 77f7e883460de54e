package datastore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/securecorp/secreport/config"
	"github.com/securecorp/secreport/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func fullWindow() model.TimeWindow {
	return model.TimeWindow{
		Start: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSecurityEventsParsing(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, config.DatasetSecurityEvents,
		"event_id,date,event_type,severity,status,source,target,impact_score,resolution_time_hours,description\n"+
			"EV-1,2026-01-15,Phishing,Critical,Resolved,Email Gateway,endpoint-42,7.5,12.5,Credential phish\n"+
			"EV-2,2026-02-01,Malware,High,Open,Network IDS,server-3,5.0,,Dropper detected\n")

	store := NewCSVStore(dir)
	events, err := store.SecurityEvents(fullWindow())
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "EV-1", events[0].EventID)
	assert.Equal(t, "Phishing", events[0].EventType)
	assert.Equal(t, 7.5, events[0].ImpactScore)
	assert.Equal(t, 12.5, events[0].ResolutionHours)
	assert.Equal(t, 0.0, events[1].ResolutionHours, "missing numeric defaults to zero")
}

func TestSecurityEventsWindowInclusive(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, config.DatasetSecurityEvents,
		"event_id,date,event_type,severity,status\n"+
			"EV-1,2026-01-01,Phishing,High,Open\n"+
			"EV-2,2026-01-31,Malware,Low,Open\n"+
			"EV-3,2026-02-01,DDoS,Low,Open\n")

	store := NewCSVStore(dir)
	window := model.TimeWindow{
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC),
	}
	events, err := store.SecurityEvents(window)
	require.NoError(t, err)
	require.Len(t, events, 2, "both window edges are inclusive")
	assert.Equal(t, "EV-1", events[0].EventID)
	assert.Equal(t, "EV-2", events[1].EventID)
}

func TestMissingFileIsDataSourceError(t *testing.T) {
	store := NewCSVStore(t.TempDir())
	_, err := store.SecurityEvents(fullWindow())
	require.Error(t, err)

	var dse *model.DataSourceError
	require.ErrorAs(t, err, &dse)
	assert.Equal(t, config.DatasetSecurityEvents, dse.Dataset)
}

func TestEmptyFileIsDataSourceError(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, config.DatasetPhishing, "")

	store := NewCSVStore(dir)
	_, err := store.PhishingCampaigns(fullWindow())
	var dse *model.DataSourceError
	require.ErrorAs(t, err, &dse)
}

func TestHeaderOnlyFileIsDataSourceError(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, config.DatasetCompliance,
		"assessment_id,date,framework,control_id,control_category,status,compliance_score,finding\n")

	store := NewCSVStore(dir)
	_, err := store.ComplianceAssessments(fullWindow())
	var dse *model.DataSourceError
	require.ErrorAs(t, err, &dse)
}

func TestBadDateIsDataSourceError(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, config.DatasetSecurityEvents,
		"event_id,date,event_type,severity,status\n"+
			"EV-1,not-a-date,Phishing,High,Open\n")

	store := NewCSVStore(dir)
	_, err := store.SecurityEvents(fullWindow())
	var dse *model.DataSourceError
	require.ErrorAs(t, err, &dse)
	assert.Contains(t, err.Error(), "row 2")
}

func TestPhishingCampaignsParsing(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, config.DatasetPhishing,
		"campaign_id,date,campaign_type,emails_sent,emails_delivered,clicked_count,blocked_count,reported_count,success_rate,threat_level\n"+
			"PH-1,2026-01-10,Spear Phishing,100,80,8,20,5,0.1,High\n")

	store := NewCSVStore(dir)
	campaigns, err := store.PhishingCampaigns(fullWindow())
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, 80, campaigns[0].EmailsDelivered)
	assert.Equal(t, 0.1, campaigns[0].SuccessRate)
	assert.Equal(t, "High", campaigns[0].ThreatLevel)
}

func TestApplyFocusAreas(t *testing.T) {
	events := []model.SecurityEvent{
		{EventID: "1", EventType: "Phishing Attempt", Source: "Email", Target: "user"},
		{EventID: "2", EventType: "Malware Infection", Source: "Web", Target: "endpoint-1"},
		{EventID: "3", EventType: "DDoS", Source: "network-edge", Target: "lb"},
	}

	filtered := ApplyFocusAreas(events, []string{"Phishing Prevention"})
	require.Len(t, filtered, 1)
	assert.Equal(t, "1", filtered[0].EventID)

	filtered = ApplyFocusAreas(events, []string{"Phishing Prevention", "Network Security"})
	assert.Len(t, filtered, 2, "matching any selected area keeps the event")
}

func TestApplyFocusAreasNoFilters(t *testing.T) {
	events := []model.SecurityEvent{
		{EventID: "1", EventType: "Phishing"},
		{EventID: "2", EventType: "Malware"},
	}

	assert.Equal(t, events, ApplyFocusAreas(events, nil))
	// Areas without a data filter steer the narrative only.
	assert.Equal(t, events, ApplyFocusAreas(events, []string{"Data Protection"}))
}

func TestStoreCachesRows(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, config.DatasetSecurityEvents,
		"event_id,date,event_type,severity,status\n"+
			"EV-1,2026-01-15,Phishing,High,Open\n")

	store := NewCSVStore(dir)
	_, err := store.SecurityEvents(fullWindow())
	require.NoError(t, err)

	// Removing the file after the first read must not matter.
	require.NoError(t, os.Remove(filepath.Join(dir, config.DatasetSecurityEvents)))
	events, err := store.SecurityEvents(fullWindow())
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestMalwareEndpointFilters(t *testing.T) {
	events := []model.SecurityEvent{
		{EventID: "1", EventType: "Malware Infection", Target: "laptop"},
		{EventID: "2", EventType: "Intrusion", Target: "endpoint-7"},
	}

	filtered := ApplyFocusAreas(events, []string{"Malware Defense"})
	require.Len(t, filtered, 1)
	assert.Equal(t, "1", filtered[0].EventID)

	filtered = ApplyFocusAreas(events, []string{"Endpoint Security"})
	require.Len(t, filtered, 1)
	assert.Equal(t, "2", filtered[0].EventID)
}
