package report

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const maxBins = 200

// histogram bins values. Integer valued series with a narrow range get one
// bin per integer; everything else uses the Freedman-Diaconis width for the
// interquartile range iqr.
func histogram(values []float64, iqr float64) (labels []string, counts []int) {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]

	if isIntegral(sorted) && hi-lo < maxBins {
		n := int(hi-lo) + 1
		labels = make([]string, n)
		counts = make([]int, n)
		for i := range labels {
			labels[i] = fmt.Sprintf("%.0f", lo+float64(i))
		}
		for _, v := range sorted {
			counts[int(v-lo)]++
		}
		return labels, counts
	}

	nbins := freedmanDiaconisBins(len(sorted), hi-lo, iqr)
	width := (hi - lo) / float64(nbins)
	if width <= 0 {
		width = 1
	}
	labels = make([]string, nbins)
	counts = make([]int, nbins)
	for i := range labels {
		labels[i] = fmt.Sprintf("%.2f", lo+(float64(i)+0.5)*width)
	}
	for _, v := range sorted {
		idx := min(max(int((v-lo)/width), 0), nbins-1)
		counts[idx]++
	}
	return labels, counts
}

func isIntegral(xs []float64) bool {
	for _, v := range xs {
		if v != math.Trunc(v) {
			return false
		}
	}
	return true
}

func freedmanDiaconisBins(n int, span, iqr float64) int {
	if iqr == 0 {
		return min(n, maxBins)
	}
	bw := 2 * iqr * math.Pow(float64(n), -1.0/3.0)
	k := int(math.Ceil(span / bw))
	return min(max(k, 10), maxBins)
}

func newHistogramChart(title string, values []float64, st Summary) *charts.Bar {
	labels, counts := histogram(values, st.IQR)
	items := make([]opts.BarData, len(counts))
	for i, c := range counts {
		items[i] = opts.BarData{Value: c}
	}
	bar := charts.NewBar()
	subtitle := fmt.Sprintf("n=%d, mean=%.3f, std=%.3f, median=%.3f, IQR=%.3f", st.Count, st.Mean, st.Std, st.Median, st.IQR)
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "500px"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}, opts.DataZoom{Type: "slider"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("count", items).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	return bar
}

func (r *Report) timingChart() *charts.Bar {
	labels := make([]string, len(r.Timings))
	items := make([]opts.BarData, len(r.Timings))
	for i, t := range r.Timings {
		labels[i] = t.Label
		items[i] = opts.BarData{Value: meanMs(t)}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: r.Params + " timings", Subtitle: "mean milliseconds per call"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries("ms", items)
	return bar
}

// RenderHTML writes one page holding a histogram per series and a timing
// chart.
func (r *Report) RenderHTML(w io.Writer) error {
	page := components.NewPage()
	for _, s := range r.Series {
		page.AddCharts(newHistogramChart(fmt.Sprintf("%s %s", r.Params, s.Name), s.Values, r.Stats[s.Name]))
	}
	if len(r.Timings) > 0 {
		page.AddCharts(r.timingChart())
	}
	return page.Render(w)
}
