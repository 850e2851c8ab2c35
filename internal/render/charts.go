package render

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/rkaran/silverdash/internal/history"
	"github.com/rkaran/silverdash/internal/model"
	"github.com/rkaran/silverdash/internal/purchases"
)

// Chart colours.
const (
	HistoryColor    = "#FF6B6B"
	TopStatesColor  = "#4ECDC4"
	JanuaryColor    = "#95E1D3"
	CumulativeColor = "#FFB6C1"
	WeeklyColor     = "#667eea"
)

// TopStatesCount is how many states the top states chart shows.
const TopStatesCount = 5

const (
	chartWidth  = "900px"
	chartHeight = "420px"
)

func initOpts(title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: title,
		Width:     chartWidth,
		Height:    chartHeight,
	})
}

func axisTooltip() charts.GlobalOpts {
	return charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"})
}

// HistoryChart plots the price series for one bracket with points shown.
func HistoryChart(points []model.PricePoint, bracket history.Bracket) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts("Historical Silver Prices"),
		charts.WithTitleOpts(opts.Title{
			Title:    "Silver Price History (INR/kg)",
			Subtitle: bracket.Label(),
		}),
		axisTooltip(),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price (INR/kg)", Type: "value", Scale: opts.Bool(true)}),
	)

	dates := make([]string, len(points))
	data := make([]opts.LineData, len(points))
	for i, p := range points {
		dates[i] = p.Date.Format("2006-01-02")
		data[i] = opts.LineData{Value: p.PriceINRPerKg}
	}

	line.SetXAxis(dates).AddSeries("Price (INR/kg)", data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: HistoryColor}),
	)
	return line
}

// TopStatesChart is a horizontal bar chart of the largest purchasers, the
// largest at the top.
func TopStatesChart(rows []model.StatePurchase) *charts.Bar {
	top := purchases.Top(rows, TopStatesCount)

	// The category axis runs bottom-up once reversed.
	names := make([]string, len(top))
	data := make([]opts.BarData, len(top))
	for i, r := range top {
		j := len(top) - 1 - i
		names[j] = r.State
		data[j] = opts.BarData{Value: r.QuantityKg}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts("Top States"),
		charts.WithTitleOpts(opts.Title{Title: "Top " + strconv.Itoa(TopStatesCount) + " States by Silver Purchases"}),
		axisTooltip(),
		charts.WithXAxisOpts(opts.XAxis{Name: "Silver Purchased (kg)", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "State", Type: "category"}),
	)
	bar.SetXAxis(names).AddSeries("Silver Purchased (kg)", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: TopStatesColor}),
	)
	bar.XYReversal()
	return bar
}

// JanuaryChart plots daily January purchases.
func JanuaryChart(days []model.DailyPurchase) *charts.Line {
	labels := make([]string, len(days))
	data := make([]opts.LineData, len(days))
	for i, d := range days {
		labels[i] = strconv.Itoa(d.Day)
		data[i] = opts.LineData{Value: d.QuantityKg}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts("January Purchases"),
		charts.WithTitleOpts(opts.Title{Title: "Daily Silver Purchases - January"}),
		axisTooltip(),
		charts.WithXAxisOpts(opts.XAxis{Name: "Day of January", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Silver Purchased (kg)", Type: "value"}),
	)
	line.SetXAxis(labels).AddSeries("Silver Purchased (kg)", data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: JanuaryColor}),
	)
	return line
}

// CumulativeChart is an area chart of the January running total.
func CumulativeChart(points []model.CumulativePurchase) *charts.Line {
	labels := make([]string, len(points))
	data := make([]opts.LineData, len(points))
	for i, p := range points {
		labels[i] = strconv.Itoa(p.Day)
		data[i] = opts.LineData{Value: p.CumulativeKg}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts("Cumulative Purchases"),
		charts.WithTitleOpts(opts.Title{Title: "Cumulative Silver Purchases - January"}),
		axisTooltip(),
		charts.WithXAxisOpts(opts.XAxis{Name: "Day of January", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cumulative Purchases (kg)", Type: "value"}),
	)
	line.SetXAxis(labels).AddSeries("Cumulative (kg)", data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Color: CumulativeColor, Opacity: opts.Float(0.5)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: CumulativeColor}),
	)
	return line
}

// WeeklyChart is a bar chart of the January week buckets.
func WeeklyChart(weeks []model.WeeklyTotal) *charts.Bar {
	labels := make([]string, len(weeks))
	data := make([]opts.BarData, len(weeks))
	for i, w := range weeks {
		labels[i] = w.Label
		data[i] = opts.BarData{Value: w.TotalKg}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts("Weekly Purchases"),
		charts.WithTitleOpts(opts.Title{Title: "Weekly Silver Purchases - January"}),
		axisTooltip(),
		charts.WithXAxisOpts(opts.XAxis{Name: "Week", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Silver Purchased (kg)", Type: "value"}),
	)
	bar.SetXAxis(labels).AddSeries("Weekly total (kg)", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: WeeklyColor}),
	)
	return bar
}

// Dashboard is every chart on one page.
func Dashboard(points []model.PricePoint, bracket history.Bracket, rows []model.StatePurchase,
	days []model.DailyPurchase, cumulative []model.CumulativePurchase, weeks []model.WeeklyTotal) *components.Page {
	page := components.NewPage()
	page.SetPageTitle("Silver Price Calculator & Analysis Dashboard")
	page.AddCharts(
		HistoryChart(points, bracket),
		TopStatesChart(rows),
		JanuaryChart(days),
		CumulativeChart(cumulative),
		WeeklyChart(weeks),
	)
	return page
}

// Renderer is satisfied by go-echarts charts and pages.
type Renderer interface {
	Render(w io.Writer) error
}
