// Package insight generates the narrative parts of a report: executive
// summary, key findings and recommendations. Generation is best-effort; when
// the provider is unconfigured, fails or times out the report falls back to
// deterministic placeholder text instead of failing.
package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/securecorp/secreport/model"
)

// Request carries everything the provider needs to write the narrative.
type Request struct {
	ReportType  string
	ReportTitle string
	Period      string
	FocusAreas  []string
	Questions   string
	Summary     string // plain-text metrics context
}

// Provider produces the three narrative artifacts for a report.
type Provider interface {
	Generate(ctx context.Context, req Request) (model.InsightContent, error)
}

// Placeholder text used when enrichment is unavailable.
const (
	PlaceholderSummary        = "AI insights are unavailable for this report."
	PlaceholderFinding        = "AI analysis unavailable"
	PlaceholderRecommendation = "Configure the AI integration for detailed recommendations"
)

// PlaceholderContent returns the deterministic fallback narrative.
func PlaceholderContent() model.InsightContent {
	return model.InsightContent{
		ExecutiveSummary: PlaceholderSummary,
		KeyFindings:      []string{PlaceholderFinding},
		Recommendations:  []string{PlaceholderRecommendation},
	}
}

// parseList turns a model response into a clean string list. It tries JSON
// first and falls back to line splitting, mirroring how models actually
// answer "format as a JSON array" prompts.
func parseList(content string, limit int) []string {
	content = strings.TrimSpace(content)

	if items, ok := tryJSONList(content); ok {
		if len(items) > limit {
			items = items[:limit]
		}
		return items
	}

	var items []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = trimListMarker(line)
		line = strings.Trim(line, `",`)
		if line == "" || strings.HasPrefix(line, "[") || strings.HasPrefix(line, "]") {
			continue
		}
		items = append(items, line)
		if len(items) == limit {
			break
		}
	}
	return items
}

// trimListMarker strips a leading bullet ("-", "*") or numbered marker
// ("3.", "3)") from a list line. Digits not followed by a marker character
// are content, not a marker, and stay untouched.
func trimListMarker(line string) string {
	if len(line) > 0 && (line[0] == '-' || line[0] == '*') {
		return strings.TrimLeft(line[1:], " ")
	}
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return strings.TrimLeft(line[i+1:], " ")
	}
	return line
}

func focusContext(areas []string) string {
	if len(areas) == 0 {
		return ""
	}
	return fmt.Sprintf(" with particular focus on %s", strings.Join(areas, ", "))
}
