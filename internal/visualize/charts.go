// Package visualize is stage 5: render the aggregates as static HTML
// charts. All interactivity comes from the charting library.
package visualize

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"jobtrack/internal/domain"
	"jobtrack/internal/stats"
	"jobtrack/internal/store"
)

var statusColors = map[domain.Status]string{
	domain.StatusApplied:   "#4ECDC4",
	domain.StatusInterview: "#96CEB4",
	domain.StatusOffer:     "#FFEAA7",
	domain.StatusRejected:  "#FF6B6B",
	domain.StatusOther:     "#DDA0DD",
}

// Run renders every chart and returns the files written.
func Run(st *store.Store) ([]string, error) {
	records, err := st.LoadRecords()
	if err != nil {
		return nil, err
	}
	sum := stats.Compute(records)

	if err := os.MkdirAll(st.VizDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create visualizations dir: %w", err)
	}

	var files []string

	p := filepath.Join(st.VizDir(), "status_distribution.html")
	if err := renderStatusPie(p, sum); err != nil {
		return files, err
	}
	files = append(files, p)

	p = filepath.Join(st.VizDir(), "applications_timeline.html")
	if err := renderTimeline(p, records); err != nil {
		return files, err
	}
	files = append(files, p)

	p = filepath.Join(st.VizDir(), "top_companies.html")
	if err := renderTopCompanies(p, sum); err != nil {
		return files, err
	}
	files = append(files, p)

	for _, f := range files {
		log.Printf("[visualize] wrote %s", f)
	}
	return files, nil
}

func renderStatusPie(path string, sum domain.StatsSummary) error {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Job Application Status Distribution",
			Width:     "800px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Job Application Status Distribution", Left: "center"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)

	var items []opts.PieData
	for _, s := range domain.StatusOrder {
		n := sum.ByStatus[s]
		if n == 0 {
			continue
		}
		items = append(items, opts.PieData{
			Name:      string(s),
			Value:     n,
			ItemStyle: &opts.ItemStyle{Color: statusColors[s]},
		})
	}

	pie.AddSeries("status", items).SetSeriesOptions(
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"30%", "65%"}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c} ({d}%)"}),
	)

	return renderTo(path, pie)
}

func renderTimeline(path string, records []domain.ApplicationRecord) error {
	// per-day counts, one series per status
	type key struct {
		date   string
		status domain.Status
	}
	counts := map[key]int{}
	dateSet := map[string]bool{}
	statusSet := map[domain.Status]bool{}

	for _, r := range records {
		if r.Date == "" || r.Status == "" {
			continue
		}
		counts[key{r.Date, r.Status}]++
		dateSet[r.Date] = true
		statusSet[r.Status] = true
	}

	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Job Applications Timeline",
			Width:     "1000px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Job Applications Timeline", Left: "center"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	line.SetXAxis(dates)

	for _, s := range domain.StatusOrder {
		if !statusSet[s] {
			continue
		}
		data := make([]opts.LineData, len(dates))
		for i, d := range dates {
			data[i] = opts.LineData{Value: counts[key{d, s}]}
		}
		line.AddSeries(string(s), data, charts.WithItemStyleOpts(opts.ItemStyle{Color: statusColors[s]}))
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	return renderTo(path, line)
}

func renderTopCompanies(path string, sum domain.StatsSummary) error {
	top := sum.Companies
	if len(top) > 10 {
		top = top[:10]
	}

	names := make([]string, len(top))
	data := make([]opts.BarData, len(top))
	for i, c := range top {
		names[i] = c.Company
		data[i] = opts.BarData{Value: c.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Top Companies Applied",
			Width:     "900px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Top Companies Applied", Left: "center"}),
	)
	bar.SetXAxis(names).AddSeries("applications", data)
	bar.XYReversal() // horizontal bars read better with long company names

	return renderTo(path, bar)
}

type renderer interface {
	Render(w io.Writer) error
}

func renderTo(path string, chart renderer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	if err := chart.Render(f); err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	return nil
}
