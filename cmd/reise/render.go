package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"reise/internal/normalize"
	"reise/internal/stopcache"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderPlaces shows every search candidate, stop or not, with stable
// indices. Only stop rows are selectable; the others give context.
func renderPlaces(w io.Writer, places []stopcache.Place) {
	rows := make([][]string, 0, len(places))
	for i, p := range places {
		stop := ""
		if p.IsStop {
			stop = "stop"
		}
		rows = append(rows, []string{fmt.Sprint(i), p.Name, p.County, p.Label, stop})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"#", "Name", "County", "Label", ""},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
	))
}

// modeColors maps canonical transport modes to the colors of the departure
// board. The mapping follows the transport branding: buses red, metro
// orange, trams blue.
var modeColors = map[string]text.Colors{
	"bus":   {text.FgWhite, text.BgRed},
	"metro": {text.FgBlack, text.BgHiYellow},
	"tram":  {text.FgWhite, text.BgBlue},
	"train": {text.FgWhite, text.BgHiBlue},
	"ferry": {text.FgWhite, text.BgMagenta},
	"air":   {text.FgBlack, text.BgCyan},
}

func colorizeLine(line, mode string, colorize bool) string {
	if !colorize {
		return line
	}
	colors, ok := modeColors[normalize.Mode(mode)]
	if !ok {
		return line
	}
	return colors.Sprintf(" %s ", line)
}

func formatDepartureTime(t time.Time) string {
	return t.Local().Format("15:04:05")
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
