package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"kite-forecast/internal/models"
)

var (
	reportRefresh  bool
	reportDaylight bool
	reportLimit    int
	reportNoColor  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetch the feeds once and print the forecast as a table.",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportRefresh, "refresh", false, "bypass the payload cache")
	reportCmd.Flags().BoolVar(&reportDaylight, "daylight", false, "only show daylight windows")
	reportCmd.Flags().IntVarP(&reportLimit, "limit", "n", 0, "maximum number of rows (0 for all)")
	reportCmd.Flags().BoolVar(&reportNoColor, "no-color", false, "disable colored output")
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := setup(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	d, err := rt.service.Refresh(ctx, reportRefresh)
	if err != nil {
		return err
	}

	if reportNoColor {
		color.NoColor = true
	}
	return printReport(os.Stdout, d, reportOptions{Daylight: reportDaylight, Limit: reportLimit})
}

type reportOptions struct {
	Daylight bool
	Limit    int
}

var (
	epicColor = color.New(color.FgGreen, color.Bold)
	goodColor = color.New(color.FgYellow)
	flatColor = color.New(color.FgHiBlack)
)

// printReport writes the header lines and one table row per window from
// the current one onwards.
func printReport(w io.Writer, d *models.Dashboard, opts reportOptions) error {
	if _, err := fmt.Fprintf(w, "%s  %s\n", d.Location.Name, d.Summary); err != nil {
		return err
	}
	if d.TideCoverage.Description != "" {
		if _, err := fmt.Fprintln(w, d.TideCoverage.Description); err != nil {
			return err
		}
	}
	names := make([]string, 0, len(d.Feeds))
	for name, st := range d.Feeds {
		if !st.Available {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s unavailable: %s\n", name, d.Feeds[name].Error); err != nil {
			return err
		}
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Time", "KI", "Temp", "Wind", "Dir", "Rain", "Sky", "Waves", "Tide", "Moon"})

	var data [][]string
	for _, r := range reportRows(d, opts) {
		data = append(data, []string{
			r.Time.Format("Mon 15:04"),
			rating(r.Score),
			formatValue(r.Temperature, "%.0f°"),
			wind(r),
			r.Compass,
			formatValue(r.Precipitation, "%.1f"),
			r.Sky,
			waves(r),
			tideText(r),
			r.Moon.Icon,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func reportRows(d *models.Dashboard, opts reportOptions) []models.ForecastRow {
	var rows []models.ForecastRow
	if d.NowIndex < len(d.Rows) {
		rows = d.Rows[d.NowIndex:]
	}

	var out []models.ForecastRow
	for _, r := range rows {
		if opts.Daylight && !r.Daylight {
			continue
		}
		out = append(out, r)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out
}

func rating(s models.ScoreResult) string {
	text := fmt.Sprintf("%.2f %s", s.Index, strings.Repeat("★", s.Stars))
	switch {
	case s.Stars >= 4:
		return epicColor.Sprint(text)
	case s.Stars >= 2:
		return goodColor.Sprint(text)
	default:
		return flatColor.Sprint(text)
	}
}

func wind(r models.ForecastRow) string {
	if r.WindSpeed == nil {
		return "—"
	}
	if r.WindGusts == nil {
		return fmt.Sprintf("%.0f", *r.WindSpeed)
	}
	return fmt.Sprintf("%.0f→%.0f", *r.WindSpeed, *r.WindGusts)
}

func waves(r models.ForecastRow) string {
	if r.WaveHeight == nil {
		return "—"
	}
	if r.WavePeriod == nil {
		return fmt.Sprintf("%.1fm", *r.WaveHeight)
	}
	return fmt.Sprintf("%.1fm %.0fs", *r.WaveHeight, *r.WavePeriod)
}

func tideText(r models.ForecastRow) string {
	if r.TideText != "" {
		return r.TideText
	}
	if r.Tide != nil {
		return fmt.Sprintf("%.2f", r.Tide.Height)
	}
	return "—"
}

func formatValue(v *float64, format string) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf(format, *v)
}
