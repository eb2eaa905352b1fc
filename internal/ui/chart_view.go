package ui

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/ytdash/internal/exports"
)

// Chart drawing constants
const (
	chartHeightScale  float32 = 0.8
	chartTitleHeight  float32 = 28
	chartLegendHeight float32 = 22
	chartAxisGap      float32 = 6
	chartLabelChars           = 12
	barGapRatio       float32 = 0.2
	barModeRelative           = "relative"
)

// rect is an axis-aligned box in chart coordinates
type rect struct {
	X, Y, W, H float32
}

// NewChartView draws cfg with canvas primitives at the given width.
// Height follows cfg.Height scaled to the desktop window.
func NewChartView(cfg *exports.ChartConfig, width float32) fyne.CanvasObject {
	width = max(width, ChartMinWidth)
	height := float32(cfg.Height) * chartHeightScale
	if height <= 0 {
		height = float32(exports.ChartHeight) * chartHeightScale
	}

	title := canvas.NewText(cfg.Title, theme.Color(theme.ColorNameForeground))
	title.TextSize = ChartTitleSize
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Move(fyne.NewPos(ChartPadding/2, 4))
	objects := []fyne.CanvasObject{title}

	plot := rect{X: ChartPadding, Y: chartTitleHeight + ChartPadding/2, W: width - 1.5*ChartPadding, H: height - chartTitleHeight - 1.5*ChartPadding}
	if cfg.ShowLegend {
		plot.H -= chartLegendHeight
		objects = append(objects, drawLegend(cfg, ChartPadding, height-chartLegendHeight-4)...)
	}

	switch cfg.ChartType {
	case exports.ChartTreemap:
		objects = append(objects, drawTreemap(cfg, plot)...)
	case exports.ChartBar:
		if cfg.Horizontal {
			plot.X += ChartLabelWidth - ChartPadding
			plot.W -= ChartLabelWidth - ChartPadding
			objects = append(objects, drawHorizontalBars(cfg, plot)...)
		} else {
			objects = append(objects, drawVerticalBars(cfg, plot)...)
		}
	case exports.ChartLine:
		objects = append(objects, drawLines(cfg, plot)...)
	case exports.ChartScatter:
		objects = append(objects, drawScatter(cfg, plot)...)
	default:
		objects = append(objects, chartText("unsupported chart type: "+cfg.ChartType, plot.X, plot.Y))
	}

	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(width, height))
	return container.NewStack(spacer, container.NewWithoutLayout(objects...))
}

func drawTreemap(cfg *exports.ChartConfig, plot rect) []fyne.CanvasObject {
	if len(cfg.Series) == 0 {
		return nil
	}
	points := cfg.Series[0].Data
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}

	var objects []fyne.CanvasObject
	for i, r := range treemapLayout(values, plot) {
		tile := canvas.NewRectangle(paletteColor(cfg.Colors, i))
		tile.StrokeColor = theme.Color(theme.ColorNameBackground)
		tile.StrokeWidth = 1
		tile.Move(fyne.NewPos(r.X, r.Y))
		tile.Resize(fyne.NewSize(r.W, r.H))
		objects = append(objects, tile)

		if r.W < 40 || r.H < 30 {
			continue
		}
		p := points[i]
		objects = append(objects,
			chartDarkText(truncateLabel(p.Label, int(r.W/7)), r.X+4, r.Y+4),
			chartDarkText(fmt.Sprintf(MoneyFormat, p.Value), r.X+4, r.Y+4+ChartTextSize+2),
		)
		if p.Share > 0 && r.H > 50 {
			objects = append(objects, chartDarkText(fmt.Sprintf("%.1f%%", p.Share), r.X+4, r.Y+4+2*(ChartTextSize+2)))
		}
	}
	return objects
}

func drawHorizontalBars(cfg *exports.ChartConfig, plot rect) []fyne.CanvasObject {
	labels := seriesLabels(cfg)
	if len(labels) == 0 {
		return nil
	}
	lo, hi := barExtent(cfg)
	objects := axisFrame(plot, cfg.XAxis, "")

	slot := plot.H / float32(len(labels))
	barH := slot * (1 - barGapRatio)
	zero := scaleValue(0, lo, hi, plot.X, plot.X+plot.W)
	for i, label := range labels {
		// first label at the bottom so ascending input puts the largest on top
		y := plot.Y + plot.H - float32(i+1)*slot + slot*barGapRatio/2
		objects = append(objects, chartText(truncateLabel(label, chartLabelChars), plot.X-ChartLabelWidth+ChartPadding-chartAxisGap+4, y+barH/2-ChartTextSize/2))
		for s, series := range cfg.Series {
			if i >= len(series.Data) {
				continue
			}
			end := scaleValue(series.Data[i].Value, lo, hi, plot.X, plot.X+plot.W)
			bar := canvas.NewRectangle(seriesColor(cfg, s))
			bar.Move(fyne.NewPos(min(zero, end), y))
			bar.Resize(fyne.NewSize(abs32(end-zero), barH))
			objects = append(objects, bar)
		}
	}
	objects = append(objects,
		chartText(formatAxisValue(lo), plot.X, plot.Y+plot.H+chartAxisGap),
		chartText(formatAxisValue(hi), plot.X+plot.W-40, plot.Y+plot.H+chartAxisGap),
	)
	return objects
}

func drawVerticalBars(cfg *exports.ChartConfig, plot rect) []fyne.CanvasObject {
	labels := seriesLabels(cfg)
	if len(labels) == 0 {
		return nil
	}
	lo, hi := barExtent(cfg)
	objects := axisFrame(plot, cfg.XAxis, cfg.YAxis)

	slot := plot.W / float32(len(labels))
	barW := slot * (1 - barGapRatio)
	zero := scaleValue(0, lo, hi, plot.Y+plot.H, plot.Y)
	objects = append(objects, gridLine(plot.X, zero, plot.X+plot.W, zero))

	relative := cfg.BarMode == barModeRelative
	for i, label := range labels {
		x := plot.X + float32(i)*slot + slot*barGapRatio/2
		objects = append(objects, chartText(truncateLabel(label, int(slot/7)), x, plot.Y+plot.H+chartAxisGap))

		pos, neg := 0.0, 0.0
		for s, series := range cfg.Series {
			if i >= len(series.Data) {
				continue
			}
			v := series.Data[i].Value
			base := 0.0
			w, off := barW, float32(0)
			if relative {
				if v >= 0 {
					base, pos = pos, pos+v
				} else {
					base, neg = neg, neg+v
				}
			} else {
				w = barW / float32(len(cfg.Series))
				off = w * float32(s)
			}
			y0 := scaleValue(base, lo, hi, plot.Y+plot.H, plot.Y)
			y1 := scaleValue(base+v, lo, hi, plot.Y+plot.H, plot.Y)
			bar := canvas.NewRectangle(seriesColor(cfg, s))
			bar.Move(fyne.NewPos(x+off, min(y0, y1)))
			bar.Resize(fyne.NewSize(w, abs32(y1-y0)))
			objects = append(objects, bar)
		}
	}
	objects = append(objects,
		chartText(formatAxisValue(hi), plot.X-ChartPadding+2, plot.Y),
		chartText(formatAxisValue(lo), plot.X-ChartPadding+2, plot.Y+plot.H-ChartTextSize),
	)
	return objects
}

func drawLines(cfg *exports.ChartConfig, plot rect) []fyne.CanvasObject {
	minX, maxX, _, maxY := pointExtent(cfg)
	minY := math.Min(0, minYValue(cfg))
	objects := axisFrame(plot, cfg.XAxis, cfg.YAxis)

	for s, series := range cfg.Series {
		c := seriesColor(cfg, s)
		var prev *fyne.Position
		for _, p := range series.Data {
			pos := fyne.NewPos(
				scaleValue(p.X, minX, maxX, plot.X, plot.X+plot.W),
				scaleValue(p.Value, minY, maxY, plot.Y+plot.H, plot.Y),
			)
			if prev != nil {
				line := canvas.NewLine(c)
				line.StrokeWidth = 2
				line.Position1 = *prev
				line.Position2 = pos
				objects = append(objects, line)
			}
			dot := canvas.NewCircle(c)
			dot.Move(fyne.NewPos(pos.X-ChartPointRadius, pos.Y-ChartPointRadius))
			dot.Resize(fyne.NewSize(2*ChartPointRadius, 2*ChartPointRadius))
			objects = append(objects, dot)
			prev = &pos
		}
	}
	objects = append(objects,
		chartText(formatAxisValue(maxY), plot.X-ChartPadding+2, plot.Y),
		chartText(formatAxisValue(minY), plot.X-ChartPadding+2, plot.Y+plot.H-ChartTextSize),
		chartText(strconv.Itoa(int(minX)), plot.X, plot.Y+plot.H+chartAxisGap),
		chartText(strconv.Itoa(int(maxX)), plot.X+plot.W-30, plot.Y+plot.H+chartAxisGap),
	)
	return objects
}

func drawScatter(cfg *exports.ChartConfig, plot rect) []fyne.CanvasObject {
	minX, maxX, minY, maxY := pointExtent(cfg)
	padX, padY := (maxX-minX)*0.1, (maxY-minY)*0.1
	minX, maxX, minY, maxY = minX-padX, maxX+padX, minY-padY, maxY+padY
	objects := axisFrame(plot, cfg.XAxis, cfg.YAxis)

	for _, ref := range cfg.ReferenceLines {
		c := parseHexColor(ref.Color)
		if ref.Axis == "x" {
			x := scaleValue(ref.Value, minX, maxX, plot.X, plot.X+plot.W)
			objects = append(objects, coloredLine(c, x, plot.Y, x, plot.Y+plot.H))
		} else {
			y := scaleValue(ref.Value, minY, maxY, plot.Y+plot.H, plot.Y)
			objects = append(objects, coloredLine(c, plot.X, y, plot.X+plot.W, y))
		}
	}

	minSize, maxSize := sizeExtent(cfg)
	for _, series := range cfg.Series {
		for _, p := range series.Data {
			r := scaleValue(p.Size, minSize, maxSize, ChartBubbleMin, ChartBubbleMax) / 2
			level := int(scaleValue(p.Size, minSize, maxSize, 0, float32(len(cfg.Colors)-1)) + 0.5)
			x := scaleValue(p.X, minX, maxX, plot.X, plot.X+plot.W)
			y := scaleValue(p.Value, minY, maxY, plot.Y+plot.H, plot.Y)

			bubble := canvas.NewCircle(withAlpha(paletteColor(cfg.Colors, level), 200))
			bubble.Move(fyne.NewPos(x-r, y-r))
			bubble.Resize(fyne.NewSize(2*r, 2*r))
			objects = append(objects, bubble, chartText(truncateLabel(p.Label, chartLabelChars), x+r+2, y-ChartTextSize/2))
		}
	}
	return objects
}

func drawLegend(cfg *exports.ChartConfig, x, y float32) []fyne.CanvasObject {
	var objects []fyne.CanvasObject
	for i, series := range cfg.Series {
		swatch := canvas.NewRectangle(seriesColor(cfg, i))
		swatch.Move(fyne.NewPos(x, y+3))
		swatch.Resize(fyne.NewSize(10, 10))
		label := chartText(series.Name, x+14, y)
		objects = append(objects, swatch, label)
		x += 14 + label.MinSize().Width + 12
	}
	return objects
}

func axisFrame(plot rect, xAxis, yAxis string) []fyne.CanvasObject {
	objects := []fyne.CanvasObject{
		gridLine(plot.X, plot.Y+plot.H, plot.X+plot.W, plot.Y+plot.H),
		gridLine(plot.X, plot.Y, plot.X, plot.Y+plot.H),
	}
	if xAxis != "" {
		objects = append(objects, chartText(xAxis, plot.X+plot.W/2-float32(len(xAxis))*3, plot.Y+plot.H+chartAxisGap+ChartTextSize+4))
	}
	if yAxis != "" {
		objects = append(objects, chartText(yAxis, plot.X+chartAxisGap, plot.Y-ChartTextSize-6))
	}
	return objects
}

// treemapLayout splits area into one tile per value, with tile areas
// proportional to the values. Values are expected in descending order.
func treemapLayout(values []float64, area rect) []rect {
	out := make([]rect, len(values))
	splitTiles(values, 0, len(values), area, out)
	return out
}

func splitTiles(values []float64, lo, hi int, area rect, out []rect) {
	switch hi - lo {
	case 0:
		return
	case 1:
		out[lo] = area
		return
	}

	total := sumPositive(values[lo:hi])
	mid := hi - 1
	acc := 0.0
	for i := lo; i < hi-1; i++ {
		acc += math.Max(values[i], 0)
		if acc >= total/2 {
			mid = i + 1
			break
		}
	}

	frac := float32(mid-lo) / float32(hi-lo)
	if total > 0 {
		frac = float32(sumPositive(values[lo:mid]) / total)
	}

	var first, second rect
	if area.W >= area.H {
		w := area.W * frac
		first = rect{X: area.X, Y: area.Y, W: w, H: area.H}
		second = rect{X: area.X + w, Y: area.Y, W: area.W - w, H: area.H}
	} else {
		h := area.H * frac
		first = rect{X: area.X, Y: area.Y, W: area.W, H: h}
		second = rect{X: area.X, Y: area.Y + h, W: area.W, H: area.H - h}
	}
	splitTiles(values, lo, mid, first, out)
	splitTiles(values, mid, hi, second, out)
}

func sumPositive(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += math.Max(v, 0)
	}
	return total
}

// scaleValue maps v from [lo,hi] to [outLo,outHi]; a degenerate range maps to the midpoint
func scaleValue(v, lo, hi float64, outLo, outHi float32) float32 {
	if hi == lo {
		return (outLo + outHi) / 2
	}
	return outLo + float32((v-lo)/(hi-lo))*(outHi-outLo)
}

// seriesLabels returns the category labels of the first series
func seriesLabels(cfg *exports.ChartConfig) []string {
	if len(cfg.Series) == 0 {
		return nil
	}
	labels := make([]string, 0, len(cfg.Series[0].Data))
	for _, p := range cfg.Series[0].Data {
		labels = append(labels, p.Label)
	}
	return labels
}

// barExtent returns the value range a bar chart must show, always including
// zero. Relative mode stacks positives and negatives per category.
func barExtent(cfg *exports.ChartConfig) (float64, float64) {
	lo, hi := 0.0, 0.0
	if cfg.BarMode == barModeRelative {
		for i := range seriesLabels(cfg) {
			pos, neg := 0.0, 0.0
			for _, s := range cfg.Series {
				if i >= len(s.Data) {
					continue
				}
				if v := s.Data[i].Value; v >= 0 {
					pos += v
				} else {
					neg += v
				}
			}
			hi, lo = math.Max(hi, pos), math.Min(lo, neg)
		}
		return lo, hi
	}
	for _, s := range cfg.Series {
		for _, p := range s.Data {
			hi, lo = math.Max(hi, p.Value), math.Min(lo, p.Value)
		}
	}
	return lo, hi
}

func pointExtent(cfg *exports.ChartConfig) (minX, maxX, minY, maxY float64) {
	first := true
	for _, s := range cfg.Series {
		for _, p := range s.Data {
			if first {
				minX, maxX, minY, maxY = p.X, p.X, p.Value, p.Value
				first = false
				continue
			}
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Value), math.Max(maxY, p.Value)
		}
	}
	return minX, maxX, minY, maxY
}

func minYValue(cfg *exports.ChartConfig) float64 {
	_, _, minY, _ := pointExtent(cfg)
	return minY
}

func sizeExtent(cfg *exports.ChartConfig) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range cfg.Series {
		for _, p := range s.Data {
			lo, hi = math.Min(lo, p.Size), math.Max(hi, p.Size)
		}
	}
	if math.IsInf(lo, 0) {
		return 0, 0
	}
	return lo, hi
}

func seriesColor(cfg *exports.ChartConfig, i int) color.Color {
	if i < len(cfg.Series) && cfg.Series[i].Color != "" {
		return parseHexColor(cfg.Series[i].Color)
	}
	return paletteColor(cfg.Colors, i)
}

func paletteColor(colors []string, i int) color.Color {
	if len(colors) == 0 {
		return theme.Color(theme.ColorNamePrimary)
	}
	return parseHexColor(colors[i%len(colors)])
}

// parseHexColor parses "#RRGGBB"; anything else yields gray
func parseHexColor(s string) color.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.Gray{Y: 128}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.Gray{Y: 128}
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func withAlpha(c color.Color, a uint8) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = a
	return n
}

func formatAxisValue(v float64) string {
	if math.Abs(v) >= 100 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func truncateLabel(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func chartText(s string, x, y float32) *canvas.Text {
	t := canvas.NewText(s, theme.Color(theme.ColorNameForeground))
	t.TextSize = ChartTextSize
	t.Move(fyne.NewPos(x, y))
	return t
}

// chartDarkText is used on light palette fills regardless of theme variant
func chartDarkText(s string, x, y float32) *canvas.Text {
	t := canvas.NewText(s, color.NRGBA{R: 33, G: 33, B: 33, A: 255})
	t.TextSize = ChartTextSize
	t.Move(fyne.NewPos(x, y))
	return t
}

func gridLine(x1, y1, x2, y2 float32) *canvas.Line {
	return coloredLine(theme.Color(ColorNameChartGrid), x1, y1, x2, y2)
}

func coloredLine(c color.Color, x1, y1, x2, y2 float32) *canvas.Line {
	l := canvas.NewLine(c)
	l.StrokeWidth = 1
	l.Position1 = fyne.NewPos(x1, y1)
	l.Position2 = fyne.NewPos(x2, y2)
	return l
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
