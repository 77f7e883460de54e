package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	chartrender "github.com/go-echarts/go-echarts/v2/render"
	"github.com/securecorp/secreport/model"
)

const (
	chartWidth  = "760px"
	chartHeight = "420px"
)

// chartHTML renders one chart spec as an embeddable HTML snippet. A spec
// without data points renders as a placeholder block rather than an empty
// chart, so the report layout stays stable.
func chartHTML(spec model.ChartSpec) (template.HTML, error) {
	if spec.Empty() {
		return template.HTML(fmt.Sprintf(
			`<div class="chart-empty"><h3>%s</h3><p>No data available for this period.</p></div>`,
			template.HTMLEscapeString(spec.Title))), nil
	}

	switch spec.Kind {
	case model.ChartBar, model.ChartHistogram:
		return renderSnippet(barChart(spec))
	case model.ChartPie:
		return renderSnippet(pieChart(spec))
	case model.ChartLine:
		return renderSnippet(lineChart(spec))
	case model.ChartScatter:
		return renderSnippet(scatterChart(spec))
	default:
		return "", &model.RenderError{Err: fmt.Errorf("unknown chart kind %q", spec.Kind)}
	}
}

func renderSnippet(chart interface{ Validate() }) (template.HTML, error) {
	r := chartrender.NewChartRender(chart, chart.Validate)
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		return "", &model.RenderError{Err: fmt.Errorf("chart %w", err)}
	}
	return template.HTML(buf.String()), nil
}

func initOpts(title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
	}
}

// xLabels returns the category axis labels. Explicit labels win; otherwise
// they come from the first series.
func xLabels(spec model.ChartSpec) []string {
	if len(spec.XLabels) > 0 {
		return spec.XLabels
	}
	if len(spec.Series) == 0 {
		return nil
	}
	labels := make([]string, 0, len(spec.Series[0].Points))
	for _, p := range spec.Series[0].Points {
		labels = append(labels, p.Label)
	}
	return labels
}

func barChart(spec model.ChartSpec) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(initOpts(spec.Title)...)
	bar.SetXAxis(xLabels(spec))
	for _, s := range spec.Series {
		data := make([]opts.BarData, 0, len(s.Points))
		for _, p := range s.Points {
			data = append(data, opts.BarData{Value: p.Value})
		}
		bar.AddSeries(s.Name, data)
	}
	return bar
}

func pieChart(spec model.ChartSpec) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(initOpts(spec.Title)...)
	for _, s := range spec.Series {
		data := make([]opts.PieData, 0, len(s.Points))
		for _, p := range s.Points {
			data = append(data, opts.PieData{Name: p.Label, Value: p.Value})
		}
		pie.AddSeries(s.Name, data)
	}
	return pie
}

func lineChart(spec model.ChartSpec) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(initOpts(spec.Title)...)
	line.SetXAxis(xLabels(spec))
	for _, s := range spec.Series {
		data := make([]opts.LineData, 0, len(s.Points))
		for _, p := range s.Points {
			data = append(data, opts.LineData{Value: p.Value})
		}
		line.AddSeries(s.Name, data)
	}
	return line
}

func scatterChart(spec model.ChartSpec) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(initOpts(spec.Title)...)
	for _, s := range spec.Series {
		data := make([]opts.ScatterData, 0, len(s.Points))
		for _, p := range s.Points {
			data = append(data, opts.ScatterData{Value: []interface{}{p.Value, p.Y}})
		}
		scatter.AddSeries(s.Name, data)
	}
	return scatter
}
