package ui

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytdash/internal/exports"
	"github.com/ytget/ytdash/internal/model"
)

// Export view constants
const (
	exportLoadTimeout = 30 * time.Second
	latestYearOption  = "Latest"
	tableColumnWidth  = 170
)

// ExportData is the export-data module as seen by the dashboard
type ExportData interface {
	Summary(ctx context.Context) (exports.Summary, *model.Dataset, error)
	Table(ctx context.Context, name string, year int) (*exports.Table, *model.Dataset, error)
	Chart(ctx context.Context, name string, year int) (*exports.ChartConfig, *model.Dataset, error)
	Refresh(ctx context.Context) (*model.Dataset, error)
}

// ExportsView is the Uruguay Export Data section: headline metrics, a chart
// picker and a table that can be saved as CSV or JSON
type ExportsView struct {
	window       fyne.Window
	data         ExportData
	localization *Localization

	metrics      *fyne.Container
	sourceLabel  *widget.Label
	chartSelect  *widget.Select
	yearSelect   *widget.Select
	chartArea    *fyne.Container
	tableSelect  *widget.Select
	table        *widget.Table
	currentTable *exports.Table
	status       *widget.Label

	content fyne.CanvasObject
}

// NewExportsView builds the section; data loads in the background
func NewExportsView(window fyne.Window, data ExportData, localization *Localization) *ExportsView {
	v := &ExportsView{window: window, data: data, localization: localization}
	v.build()
	v.reload(false)
	return v
}

// Content returns the section's root object
func (v *ExportsView) Content() fyne.CanvasObject {
	return v.content
}

func (v *ExportsView) build() {
	l := v.localization

	v.metrics = container.NewAdaptiveGrid(4)
	v.sourceLabel = widget.NewLabel("")
	v.sourceLabel.TextStyle = fyne.TextStyle{Italic: true}
	v.status = widget.NewLabel(l.GetText(KeyLoadingData))

	v.chartSelect = widget.NewSelect(exports.ChartNames, func(string) { v.loadChart() })
	v.yearSelect = widget.NewSelect([]string{latestYearOption}, func(string) {
		v.loadChart()
		v.loadTable()
	})
	refreshBtn := widget.NewButton(l.GetText(KeyRefresh), func() { v.reload(true) })

	v.chartArea = container.NewStack()

	v.tableSelect = widget.NewSelect(exports.TableNames, func(string) { v.loadTable() })
	v.table = widget.NewTable(v.tableSize, v.newTableCell, v.updateTableCell)
	saveCSV := widget.NewButton(l.GetText(KeySaveCSV), func() { v.saveTable(exports.WriteCSV, ".csv") })
	saveJSON := widget.NewButton(l.GetText(KeySaveJSON), func() { v.saveTable(exports.WriteJSON, ".json") })

	controls := container.NewHBox(
		widget.NewLabel(IconChart+" "+l.GetText(KeyChart)), v.chartSelect,
		widget.NewLabel(l.GetText(KeyYear)), v.yearSelect,
		refreshBtn,
	)
	tableControls := container.NewHBox(widget.NewLabel(l.GetText(KeyDataset)), v.tableSelect, saveCSV, saveJSON)

	tableBox := container.NewGridWrap(fyne.NewSize(ChartMinWidth+ChartPadding*4, 320), v.table)
	body := container.NewVBox(
		v.metrics,
		v.sourceLabel,
		widget.NewSeparator(),
		controls,
		v.chartArea,
		widget.NewSeparator(),
		tableControls,
		tableBox,
	)
	v.content = container.NewBorder(v.status, nil, nil, nil, container.NewVScroll(body))
}

// reload fetches the summary and then the selected chart and table.
// force drops the dataset cache first.
func (v *ExportsView) reload(force bool) {
	v.status.SetText(v.localization.GetText(KeyLoadingData))
	v.status.Show()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), exportLoadTimeout)
		defer cancel()

		if force {
			if _, err := v.data.Refresh(ctx); err != nil {
				log.Printf("Export data refresh failed: %v", err)
			}
		}
		summary, ds, err := v.data.Summary(ctx)
		fyne.Do(func() {
			if err != nil {
				log.Printf("Export data unavailable: %v", err)
				v.status.SetText(fmt.Sprintf("%s: %v", v.localization.GetText(KeyDataError), err))
				return
			}
			v.status.Hide()
			v.showSummary(summary, ds)
			if v.chartSelect.Selected == "" {
				v.chartSelect.SetSelected(exports.ChartNameTreemap)
			} else {
				v.loadChart()
			}
			if v.tableSelect.Selected == "" {
				v.tableSelect.SetSelected(exports.TableExports)
			} else {
				v.loadTable()
			}
		})
	}()
}

func (v *ExportsView) showSummary(s exports.Summary, ds *model.Dataset) {
	l := v.localization
	balance := widget.NewLabelWithStyle(fmt.Sprintf(MoneyFormat+" (%s)", s.TradeBalance, s.BalanceLabel), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	if s.TradeBalance >= 0 {
		balance.Importance = widget.SuccessImportance
	} else {
		balance.Importance = widget.DangerImportance
	}

	v.metrics.RemoveAll()
	v.metrics.Add(metricCard(fmt.Sprintf("%s (%d)", l.GetText(KeyTotalExports), s.LatestYear), fmt.Sprintf(MoneyFormat, s.TotalExports)))
	v.metrics.Add(metricCard(l.GetText(KeyTopProduct), s.TopProduct))
	v.metrics.Add(metricCard(l.GetText(KeyTopPartner), s.TopPartner))
	v.metrics.Add(widget.NewCard(l.GetText(KeyTradeBalance), "", balance))

	v.sourceLabel.SetText(fmt.Sprintf("%s: %s%s%s", l.GetText(KeyDataSource), ds.Source, MiddleDotSeparator, ds.LoadedAt.Format(time.DateTime)))

	options := []string{latestYearOption}
	for _, y := range exports.Years(ds.Exports) {
		options = append(options, strconv.Itoa(y))
	}
	v.yearSelect.SetOptions(options)
	if v.yearSelect.Selected == "" {
		v.yearSelect.Selected = latestYearOption
		v.yearSelect.Refresh()
	}
}

func metricCard(title, value string) *widget.Card {
	return widget.NewCard(title, "", widget.NewLabelWithStyle(value, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
}

// selectedYear maps the year picker to a year; 0 means latest
func selectedYear(option string) int {
	year, err := strconv.Atoi(option)
	if err != nil {
		return 0
	}
	return year
}

func (v *ExportsView) loadChart() {
	name := v.chartSelect.Selected
	if name == "" {
		return
	}
	year := selectedYear(v.yearSelect.Selected)
	width := max(v.window.Canvas().Size().Width-2*ChartPadding, ChartMinWidth)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), exportLoadTimeout)
		defer cancel()
		cfg, _, err := v.data.Chart(ctx, name, year)
		fyne.Do(func() {
			v.chartArea.RemoveAll()
			if err != nil {
				v.chartArea.Add(widget.NewLabel(err.Error()))
				return
			}
			v.chartArea.Add(NewChartView(cfg, width))
		})
	}()
}

func (v *ExportsView) loadTable() {
	name := v.tableSelect.Selected
	if name == "" {
		return
	}
	year := selectedYear(v.yearSelect.Selected)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), exportLoadTimeout)
		defer cancel()
		t, _, err := v.data.Table(ctx, name, year)
		fyne.Do(func() {
			if err != nil {
				log.Printf("Failed to build table %s: %v", name, err)
				return
			}
			v.currentTable = t
			for i := range t.Columns {
				v.table.SetColumnWidth(i, tableColumnWidth)
			}
			v.table.Refresh()
		})
	}()
}

func (v *ExportsView) tableSize() (int, int) {
	if v.currentTable == nil {
		return 0, 0
	}
	return len(v.currentTable.Rows) + 1, len(v.currentTable.Columns)
}

func (v *ExportsView) newTableCell() fyne.CanvasObject {
	label := widget.NewLabel("")
	label.Truncation = fyne.TextTruncateEllipsis
	return label
}

func (v *ExportsView) updateTableCell(id widget.TableCellID, obj fyne.CanvasObject) {
	label, ok := obj.(*widget.Label)
	if !ok || v.currentTable == nil {
		return
	}
	label.SetText(tableCell(v.currentTable, id.Row, id.Col))
	label.TextStyle = fyne.TextStyle{Bold: id.Row == 0}
}

// tableCell returns the header for row 0 and formatted data below it
func tableCell(t *exports.Table, row, col int) string {
	if row == 0 {
		if col < len(t.Columns) {
			return t.Columns[col]
		}
		return ""
	}
	if row-1 < len(t.Rows) && col < len(t.Rows[row-1]) {
		return t.Rows[row-1][col]
	}
	return ""
}

func (v *ExportsView) saveTable(write func(io.Writer, *exports.Table) error, ext string) {
	t := v.currentTable
	if t == nil {
		return
	}

	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		defer w.Close()
		if err := write(w, t); err != nil {
			dialog.ShowError(err, v.window)
			return
		}
		log.Printf("Saved %s table to %s", t.Name, w.URI().Path())
		dialog.ShowInformation(v.localization.GetText(KeyExportSaved), w.URI().Path(), v.window)
	}, v.window)
	save.SetFileName(exportFileName(t.Name, ext))
	save.Show()
}

// exportFileName is the suggested name, e.g. uruguay_partners_20250101.csv
func exportFileName(table, ext string) string {
	return fmt.Sprintf("uruguay_%s_%s%s", table, time.Now().Format("20060102"), ext)
}
