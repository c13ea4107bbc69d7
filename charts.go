package portal

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	printColor      = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	electronicColor = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	frenchColor     = color.RGBA{R: 178, G: 34, B: 34, A: 255}
)

// RenderResourceChart writes a grouped bar chart of the year's total
// resources by language and resource type. Fails with ErrInvalidYear for a
// year outside the dataset.
func (p *Portal) RenderResourceChart(year int, path string) error {
	if !p.data.SupportsYear(year) {
		return fmt.Errorf("%w: %d not in supported years %v", ErrInvalidYear, year, p.data.Years())
	}

	var trend ResourceTrend
	for _, t := range p.ResourceTrends() {
		if t.Year == year {
			trend = t
			break
		}
	}

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("Total Number of Resources by Language and Resource Type in %d", year)
	pl.Title.TextStyle.Font.Size = vg.Points(14)
	pl.X.Label.Text = "Language"
	pl.Y.Label.Text = "Number of Resources"

	w := vg.Points(22)

	printBars, err := plotter.NewBarChart(plotter.Values{
		float64(trend.Print.English),
		float64(trend.Print.French),
		float64(trend.Print.Other),
	}, w)
	if err != nil {
		return fmt.Errorf("building print bars: %w", err)
	}
	printBars.Color = printColor
	printBars.LineStyle.Width = vg.Length(0)
	printBars.Offset = -w / 2

	eBars, err := plotter.NewBarChart(plotter.Values{
		float64(trend.Electronic.English),
		float64(trend.Electronic.French),
		float64(trend.Electronic.Other),
	}, w)
	if err != nil {
		return fmt.Errorf("building e-resource bars: %w", err)
	}
	eBars.Color = electronicColor
	eBars.LineStyle.Width = vg.Length(0)
	eBars.Offset = w / 2

	pl.Add(printBars, eBars)
	pl.Legend.Add("Print Titles", printBars)
	pl.Legend.Add("E-book and E-audio Titles", eBars)
	pl.Legend.Top = true
	pl.NominalX("English", "French", "Other")

	if err := pl.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	return nil
}

// RenderTrendChart writes a line chart of per-language resource totals
// across every dataset year, one line per language/type combination.
func (p *Portal) RenderTrendChart(path string) error {
	trends := p.ResourceTrends()
	if len(trends) == 0 {
		return fmt.Errorf("dataset has no years to chart")
	}

	pl := plot.New()
	pl.Title.Text = "Trend of Total Number of Resources by Language and Type"
	pl.Title.TextStyle.Font.Size = vg.Points(14)
	pl.X.Label.Text = "Year"
	pl.Y.Label.Text = "Number of Resources"
	pl.Add(plotter.NewGrid())

	series := []struct {
		name   string
		color  color.RGBA
		dashed bool
		value  func(ResourceTrend) int64
	}{
		{"English Print", printColor, false, func(t ResourceTrend) int64 { return t.Print.English }},
		{"English E-resources", electronicColor, false, func(t ResourceTrend) int64 { return t.Electronic.English }},
		{"French Print", frenchColor, true, func(t ResourceTrend) int64 { return t.Print.French }},
		{"French E-resources", frenchColor, false, func(t ResourceTrend) int64 { return t.Electronic.French }},
	}

	for _, s := range series {
		pts := make(plotter.XYs, len(trends))
		for i, t := range trends {
			pts[i].X = float64(t.Year)
			pts[i].Y = float64(s.value(t))
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("building %s line: %w", s.name, err)
		}
		line.Color = s.color
		line.Width = vg.Points(2)
		if s.dashed {
			line.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		}
		pl.Add(line)
		pl.Legend.Add(s.name, line)
	}
	pl.Legend.Top = true

	if err := pl.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	return nil
}
