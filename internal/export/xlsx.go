package export

import (
	"fmt"

	"github.com/kartoza/rf-radar/internal/chart"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the data and the chart.
const SheetName = "Radar"

// seriesColumns are the worksheet columns holding each series' radii.
var seriesColumns = [2]string{"B", "C"}

// XLSX writes the figure's samples to a workbook with a native radar chart.
// Rows are not closed; spreadsheet radar charts close the polygon themselves.
func XLSX(fig *chart.Figure) ([]byte, error) {
	if fig == nil || fig.Samples() == 0 {
		return nil, fmt.Errorf("export: nothing to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []interface{}{"Angle", fig.Series[0].Label, fig.Series[1].Label}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	n := fig.Samples()
	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{fig.Series[0].ThetaLabels[i], fig.Series[0].R[i], fig.Series[1].R[i]}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	series := make([]excelize.ChartSeries, 0, len(fig.Series))
	for i, s := range fig.Series {
		col := seriesColumns[i]
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", SheetName, col),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", SheetName, n+1),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", SheetName, col, col, n+1),
			Fill: excelize.Fill{
				Type:    "pattern",
				Pattern: 1,
				Color:   []string{lookupColor(s.Color).hex},
			},
		})
	}

	if err := f.AddChart(SheetName, "E2", &excelize.Chart{
		Type:   excelize.Radar,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: fig.Title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}); err != nil {
		return nil, fmt.Errorf("failed to add chart: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
