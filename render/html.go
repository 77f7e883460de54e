// Package render turns a report payload into the HTML document and the PDF
// artifact. Charts are embedded as self-contained snippets; the layout is
// fixed per report type so identical payloads render identical documents.
package render

import (
	"bytes"
	"html/template"

	"github.com/securecorp/secreport/model"
)

type chartView struct {
	HTML        template.HTML
	Explanation string
}

type reportView struct {
	model.ReportPayload
	Date     string
	Period   string
	ChartSet []chartView
}

// ReportHTML renders the payload as a complete standalone HTML document.
func ReportHTML(payload model.ReportPayload) (string, error) {
	views := make([]chartView, 0, len(payload.Charts))
	for _, spec := range payload.Charts {
		snippet, err := chartHTML(spec)
		if err != nil {
			return "", err
		}
		views = append(views, chartView{HTML: snippet, Explanation: spec.Explanation})
	}

	view := reportView{
		ReportPayload: payload,
		Date:          payload.GeneratedAt.Format("January 2, 2006"),
		Period: payload.Window.Start.Format("Jan 2, 2006") + " - " +
			payload.Window.End.Format("Jan 2, 2006"),
		ChartSet: views,
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, view); err != nil {
		return "", &model.RenderError{Err: err}
	}
	return buf.String(), nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.ReportTitle}}</title>
<style>
    body { font-family: 'Helvetica Neue', Arial, sans-serif; color: #1f2933; margin: 0; }
    .page { padding: 40px 48px; }
    .header { border-bottom: 3px solid #1e3a8a; padding-bottom: 16px; margin-bottom: 24px; }
    .header h1 { color: #1e3a8a; margin: 0 0 4px 0; font-size: 26px; }
    .header .meta { color: #52606d; font-size: 13px; }
    .kpi-grid { display: flex; flex-wrap: wrap; gap: 12px; margin: 24px 0; }
    .kpi-card { background: #f1f5f9; border-left: 4px solid #1e3a8a; border-radius: 4px;
                padding: 12px 18px; min-width: 150px; }
    .kpi-card .value { font-size: 22px; font-weight: 700; color: #1e3a8a; }
    .kpi-card .label { font-size: 12px; color: #52606d; text-transform: uppercase; }
    h2 { color: #1e3a8a; border-bottom: 1px solid #cbd5e1; padding-bottom: 6px;
         font-size: 18px; margin-top: 32px; }
    .summary { background: #f8fafc; border-radius: 4px; padding: 16px 20px;
               line-height: 1.6; font-size: 14px; }
    ul.findings li, ul.recommendations li { margin: 8px 0; line-height: 1.5; font-size: 14px; }
    .chart-block { margin: 24px 0; page-break-inside: avoid; }
    .chart-block .explanation { color: #52606d; font-size: 12px; font-style: italic; margin-top: 6px; }
    .chart-empty { background: #f8fafc; border: 1px dashed #cbd5e1; border-radius: 4px;
                   padding: 24px; text-align: center; color: #9aa5b1; }
    .focus-tag { display: inline-block; background: #dbeafe; color: #1e3a8a; border-radius: 10px;
                 padding: 2px 10px; font-size: 12px; margin-right: 6px; }
    .footer { margin-top: 40px; border-top: 1px solid #cbd5e1; padding-top: 12px;
              color: #9aa5b1; font-size: 11px; }
</style>
</head>
<body>
<div class="page">
    <div class="header">
        <h1>{{.ReportTitle}}</h1>
        <div class="meta">{{.CompanyName}} &middot; {{.PeriodDescription}} ({{.Period}}) &middot; Generated {{.Date}}</div>
        {{if .FocusAreas}}<div class="meta" style="margin-top:6px">
            {{range .FocusAreas}}<span class="focus-tag">{{.}}</span>{{end}}
        </div>{{end}}
    </div>

    <div class="kpi-grid">
        {{range .KPICards}}
        <div class="kpi-card">
            <div class="value">{{.Value}}</div>
            <div class="label">{{.Label}}</div>
        </div>
        {{end}}
    </div>

    <h2>Executive Summary</h2>
    <div class="summary">{{.Insights.ExecutiveSummary}}</div>

    <h2>Key Findings</h2>
    <ul class="findings">
        {{range .Insights.KeyFindings}}<li>{{.}}</li>{{end}}
    </ul>

    <h2>Analysis</h2>
    {{range .ChartSet}}
    <div class="chart-block">
        {{.HTML}}
        <div class="explanation">{{.Explanation}}</div>
    </div>
    {{end}}

    <h2>Recommendations</h2>
    <ul class="recommendations">
        {{range .Insights.Recommendations}}<li>{{.}}</li>{{end}}
    </ul>

    {{if .SpecificQuestions}}
    <h2>Requested Questions</h2>
    <div class="summary">{{.SpecificQuestions}}</div>
    {{end}}

    <div class="footer">
        Report {{.ReportID}} &middot; {{.CompanyName}} &middot; Confidential
    </div>
</div>
</body>
</html>`))
