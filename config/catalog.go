package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// ReportType describes one supported report type and the datasets it draws from.
type ReportType struct {
	Key                string   `yaml:"key" json:"-"`
	Name               string   `yaml:"name" json:"name"`
	Description        string   `yaml:"description" json:"description"`
	DataSources        []string `yaml:"data_sources" json:"data_sources"`
	RequiredFocusAreas []string `yaml:"required_focus_areas" json:"required_focus_areas"`
	EstimatedSeconds   int      `yaml:"estimated_generation_time" json:"estimated_generation_time"`
}

// FocusArea describes one selectable focus area with its display metadata.
type FocusArea struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Color       string `yaml:"color" json:"color"`
	Icon        string `yaml:"icon" json:"icon"`
}

// Catalog is the closed set of report types, focus areas and time periods
// the API recognizes. Anything outside the catalog is rejected at validation
// time, never silently ignored.
type Catalog struct {
	ReportTypes map[string]ReportType
	FocusAreas  []FocusArea
}

// TimePeriods lists the recognized time_period keywords.
var TimePeriods = []string{"last_month", "last_quarter", "last_6_months", "ytd"}

// Dataset identifiers, matching the CSV files under the data directory.
const (
	DatasetSecurityEvents = "security_events.csv"
	DatasetPhishing       = "phishing_data.csv"
	DatasetCompliance     = "compliance_data.csv"
)

// DefaultCatalog returns the built-in report catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{
		ReportTypes: map[string]ReportType{
			"quarterly_review": {
				Key:                "quarterly_review",
				Name:               "Quarterly Security Review",
				Description:        "Comprehensive quarterly security posture assessment",
				DataSources:        []string{DatasetSecurityEvents, DatasetCompliance, DatasetPhishing},
				RequiredFocusAreas: []string{"Network Security", "Endpoint Compliance"},
				EstimatedSeconds:   180,
			},
			"monthly_threat": {
				Key:                "monthly_threat",
				Name:               "Monthly Threat Overview",
				Description:        "Monthly threat landscape and incident summary",
				DataSources:        []string{DatasetSecurityEvents, DatasetPhishing},
				RequiredFocusAreas: []string{"Phishing Statistics", "Malware Incidents"},
				EstimatedSeconds:   120,
			},
			"phishing_deep_dive": {
				Key:                "phishing_deep_dive",
				Name:               "Phishing Deep Dive",
				Description:        "Detailed analysis of phishing attacks and trends",
				DataSources:        []string{DatasetPhishing},
				RequiredFocusAreas: []string{"Phishing Statistics", "Security Training"},
				EstimatedSeconds:   90,
			},
			"compliance_status": {
				Key:                "compliance_status",
				Name:               "Compliance Status Report",
				Description:        "Current compliance posture and requirements status",
				DataSources:        []string{DatasetCompliance},
				RequiredFocusAreas: []string{"Endpoint Compliance", "Data Protection"},
				EstimatedSeconds:   100,
			},
			"incident_response": {
				Key:                "incident_response",
				Name:               "Incident Response Summary",
				Description:        "Summary of security incidents and response activities",
				DataSources:        []string{DatasetSecurityEvents},
				RequiredFocusAreas: []string{"Network Security", "Access Management"},
				EstimatedSeconds:   110,
			},
		},
		FocusAreas: []FocusArea{
			{ID: "phishing_stats", Name: "Phishing Statistics", Description: "Email security and phishing attack metrics", Color: "#FF6B6B", Icon: "mail"},
			{ID: "malware_incidents", Name: "Malware Incidents", Description: "Malware detection and response metrics", Color: "#4ECDC4", Icon: "shield-alert"},
			{ID: "endpoint_compliance", Name: "Endpoint Compliance", Description: "Device compliance and policy adherence", Color: "#45B7D1", Icon: "monitor"},
			{ID: "network_security", Name: "Network Security", Description: "Network infrastructure security status", Color: "#96CEB4", Icon: "network"},
			{ID: "data_protection", Name: "Data Protection", Description: "Data security and privacy measures", Color: "#FECA57", Icon: "database"},
			{ID: "access_management", Name: "Access Management", Description: "Identity and access control systems", Color: "#FF9FF3", Icon: "key"},
			{ID: "vulnerability_management", Name: "Vulnerability Management", Description: "Vulnerability assessment and remediation", Color: "#54A0FF", Icon: "search"},
			{ID: "security_training", Name: "Security Training", Description: "Employee security awareness and training", Color: "#5F27CD", Icon: "graduation-cap"},
		},
	}
}

// catalogOverride is the YAML shape for an external catalog file.
type catalogOverride struct {
	ReportTypes []ReportType `yaml:"report_types"`
	FocusAreas  []FocusArea  `yaml:"focus_areas"`
}

// LoadCatalog returns the default catalog, optionally overridden by the YAML
// file at CATALOG_PATH. The override replaces whole sections, not single
// entries, so the file is the source of truth when present.
func LoadCatalog() (*Catalog, error) {
	catalog := DefaultCatalog()

	path := GetEnvDefault("CATALOG_PATH", "")
	if path == "" {
		return catalog, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var override catalogOverride
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return nil, fmt.Errorf("invalid catalog file %s: %w", path, err)
	}

	if len(override.ReportTypes) > 0 {
		catalog.ReportTypes = make(map[string]ReportType, len(override.ReportTypes))
		for _, rt := range override.ReportTypes {
			if rt.Key == "" {
				return nil, fmt.Errorf("catalog file %s: report type without a key", path)
			}
			catalog.ReportTypes[rt.Key] = rt
		}
	}
	if len(override.FocusAreas) > 0 {
		catalog.FocusAreas = override.FocusAreas
	}

	return catalog, nil
}

// ValidPeriod reports whether the given time_period keyword is recognized.
func ValidPeriod(period string) bool {
	for _, p := range TimePeriods {
		if p == period {
			return true
		}
	}
	return false
}

// FocusAreaNames returns the display names of all focus areas in the catalog.
func (c *Catalog) FocusAreaNames() []string {
	names := make([]string, 0, len(c.FocusAreas))
	for _, fa := range c.FocusAreas {
		names = append(names, fa.Name)
	}
	return names
}

// HasFocusArea reports whether name matches a focus area by display name or id.
func (c *Catalog) HasFocusArea(name string) bool {
	for _, fa := range c.FocusAreas {
		if fa.Name == name || fa.ID == name {
			return true
		}
	}
	return false
}
