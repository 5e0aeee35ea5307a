package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"trendboard/internal/analytics"
	"trendboard/internal/corpus"
	"trendboard/internal/models"
	"trendboard/internal/validation"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the KPI summary for a selection",
	Long: `Loads the dataset and prints the same KPIs the dashboard shows.

Lists are comma-separated. An omitted flag uses the dashboard default; an
empty value selects nothing.

Example:
  trendboard report --products CheckSuit,TrenchCoat --from 2024-01-01`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	addSelectionFlags(reportCmd)
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().String(validation.ParamProducts, "", "products to include")
	cmd.Flags().String(validation.ParamCategories, "", "categories to include")
	cmd.Flags().String(validation.ParamLocations, "", "locations to include")
	cmd.Flags().String(validation.ParamFrom, "", "first day, YYYY-MM-DD")
	cmd.Flags().String(validation.ParamTo, "", "last day, YYYY-MM-DD")
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle   = lipgloss.NewStyle().Faint(true)
	valueStyle   = lipgloss.NewStyle().Bold(true)
	upStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	downStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	kpiBox       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginRight(1)
)

func runReport(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	ds, err := corpus.New(catalog, logger).Load(cmd.Context(), cfg.DataRoot)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if ds.Empty() {
		fmt.Fprintln(out, warningStyle.Render("No data available."))
		return nil
	}

	flags := cmd.Flags()
	in := validation.InputFrom(func(key string) (string, bool) {
		if !flags.Changed(key) {
			return "", false
		}
		v, err := flags.GetString(key)
		return v, err == nil
	})
	resolved, err := validation.Resolve(in, validation.OptionsFrom(ds), validation.Defaults{
		Products:  cfg.DefaultProducts,
		Locations: cfg.DefaultLocations,
	})
	if err != nil {
		return err
	}

	policy := analytics.GrowthPolicy{MinBase: cfg.GrowthMinBase, Cap: cfg.GrowthCap}
	summary, err := analytics.Aggregate(ds.Records, resolved.Selection(), policy)
	if errors.Is(err, analytics.ErrEmptyView) {
		fmt.Fprintln(out, warningStyle.Render("No data matches the selected filters."))
		return nil
	}
	if err != nil {
		return err
	}

	renderReport(out, ds, resolved, summary)
	return nil
}

// renderReport writes the styled summary for one selection.
func renderReport(w io.Writer, ds *corpus.Dataset, sel validation.Resolved, s *analytics.Summary) {
	fmt.Fprintln(w, titleStyle.Render(cfg.SiteTitle))
	fmt.Fprintf(w, "%s %s to %s, %d record(s) from %d file(s)\n\n",
		labelStyle.Render("Selection:"),
		sel.From.Format(models.DateLayout), sel.To.Format(models.DateLayout),
		s.Records, ds.Files)

	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
		kpi("Total mentions", humanize.Comma(s.TotalMentions)),
		kpi("Top growing", mover(s.TopGrowing)),
		kpi("Top declining", mover(s.TopDeclining)),
		kpi("Top location", s.TopLocation),
	))

	fmt.Fprintln(w, titleStyle.Render("Mentions by city and product"))
	fmt.Fprintln(w, gridTable("Location", s.CityProduct.Rows, s.CityProduct.Columns, func(i, j int) string {
		return humanize.Comma(s.CityProduct.Cells[i][j])
	}))

	fmt.Fprintln(w, titleStyle.Render("Category share by city"))
	fmt.Fprintln(w, gridTable("Location", s.CityCategory.Rows, s.CityCategory.Columns, func(i, j int) string {
		return fmt.Sprintf("%.1f%%", s.CityCategory.Cells[i][j])
	}))

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Top %d products per city", analytics.TopN)))
	for _, city := range s.TopPerCity {
		names := make([]string, len(city.Top))
		for i, r := range city.Top {
			names[i] = fmt.Sprintf("%s (%s)", r.Product, humanize.Comma(r.Mentions))
		}
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(city.Location+":"), strings.Join(names, ", "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Growth by product"))
	fmt.Fprintln(w, growthTable(s.Growth))

	fmt.Fprintln(w, titleStyle.Render("Weekly mentions"))
	weeks := make([]string, len(s.Weekly.Weeks))
	for i, wk := range s.Weekly.Weeks {
		weeks[i] = wk.Format(models.DateLayout)
	}
	fmt.Fprintln(w, gridTable("Week ending", weeks, s.Weekly.Products, func(i, j int) string {
		return humanize.Comma(s.Weekly.Cells[i][j])
	}))

	if len(ds.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("%d file(s) skipped while loading", len(ds.Warnings))))
		for _, warn := range ds.Warnings {
			fmt.Fprintf(w, "  %s: %s\n", warn.Path, warn.Message)
		}
	}
}

func kpi(label, value string) string {
	return kpiBox.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

func mover(g *analytics.ProductGrowth) string {
	if g == nil {
		return "-"
	}
	pct := fmt.Sprintf("%+.1f%%", g.Percent)
	if g.Percent < 0 {
		pct = downStyle.Render(pct)
	} else {
		pct = upStyle.Render(pct)
	}
	return g.Product + " " + pct
}

func growthTable(growth []analytics.ProductGrowth) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Product", "First day", "Last day", "Growth")
	for _, g := range growth {
		t.Row(g.Product, humanize.Comma(g.Start), humanize.Comma(g.End), fmt.Sprintf("%+.1f%%", g.Percent))
	}
	return t.String()
}

func gridTable(corner string, rows, cols []string, cell func(i, j int) string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(append([]string{corner}, cols...)...)
	for i, row := range rows {
		line := []string{row}
		for j := range cols {
			line = append(line, cell(i, j))
		}
		t.Row(line...)
	}
	return t.String()
}
