package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/unbound-force/elemviz/internal/aggregate"
	"github.com/unbound-force/elemviz/internal/ptable"
	"github.com/unbound-force/elemviz/internal/render"
	"github.com/unbound-force/elemviz/internal/stats"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "elemviz",
		Short: "Elemviz — periodic-table visualizations for materials data",
		Long: `Elemviz renders element data (composition formulas, symbol or
atomic-number counts) as periodic-table heatmaps, prevalence
histograms, and parity plots with MAE/R² summary statistics.`,
		Version: version,
	}

	root.AddCommand(newHeatmapCmd())
	root.AddCommand(newRatioCmd())
	root.AddCommand(newHistCmd())
	root.AddCommand(newParityCmd())
	root.AddCommand(newCrystalCmd())
	root.AddCommand(newSchemaCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseLabels validates the --labels flag.
func parseLabels(s string) (render.HeatLabels, error) {
	switch render.HeatLabels(s) {
	case render.LabelsValue, render.LabelsFraction, render.LabelsPercent, render.LabelsNone:
		return render.HeatLabels(s), nil
	}
	return "", fmt.Errorf("invalid labels %q: must be 'value', 'fraction', 'percent', or 'none'", s)
}

// heatmapParams holds the parsed flags for the heatmap command.
type heatmapParams struct {
	path        string
	format      string
	log         bool
	labels      string
	cmap        string
	precision   string
	cbarTitle   string
	cbarMax     *float64
	out         string
	interactive bool
	stdout      io.Writer
	stderr      io.Writer
}

// runHeatmap is the extracted, testable body of the heatmap command.
func runHeatmap(p heatmapParams) error {
	if p.format != "svg" && p.format != "text" && p.format != "json" {
		return fmt.Errorf("invalid format %q: must be 'svg', 'text', or 'json'", p.format)
	}
	labels, err := parseLabels(p.labels)
	if err != nil {
		return err
	}

	in, err := readInput(p.path)
	if err != nil {
		return err
	}
	v, err := aggregate.Count(in)
	if err != nil {
		return err
	}

	opts := render.DefaultHeatmapOptions()
	opts.Log = p.log
	opts.HeatLabels = labels
	opts.CbarMax = p.cbarMax
	if p.cmap != "" {
		opts.Cmap = p.cmap
	}
	if p.precision != "" {
		opts.Precision = p.precision
	}
	if p.cbarTitle != "" {
		opts.CbarTitle = p.cbarTitle
	}

	logger.Info("rendering heatmap", "input", p.path, "format", p.format)

	if p.interactive {
		g, err := render.Grid(v, render.GridOptions{
			HeatLabels: labels,
			Precision:  p.precision,
			HoverProps: []string{"atomic_number", "atomic_mass"},
			ShowScale:  true,
		})
		if err != nil {
			return err
		}
		return runInteractiveGrid(g, opts.CbarTitle)
	}

	w, closeOut, err := openOutput(p.out, p.stdout)
	if err != nil {
		return err
	}
	defer closeOut()

	switch p.format {
	case "json":
		g, err := render.Grid(v, render.GridOptions{
			HeatLabels: labels,
			Precision:  p.precision,
			ShowScale:  true,
		})
		if err != nil {
			return err
		}
		return render.WriteJSON(w, g)
	case "text":
		return render.WriteText(w, v, opts)
	default:
		return render.Heatmap(w, v, opts)
	}
}

func newHeatmapCmd() *cobra.Command {
	var (
		format      string
		log         bool
		labels      string
		cmap        string
		precision   string
		cbarTitle   string
		cbarMax     float64
		out         string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "heatmap [data file]",
		Short: "Render element data as a periodic-table heatmap",
		Long: `Render a data file (composition formulas, or symbol,value /
number,value CSV rows) as a periodic-table heatmap. Output is an
SVG by default; --format selects terminal or JSON grid output, and
--interactive opens a browsable grid in the terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfigOrWarn()
			var max *float64
			if cmd.Flags().Changed("cbar-max") {
				max = &cbarMax
			}
			return runHeatmap(heatmapParams{
				path:        args[0],
				format:      resolve(cmd, "format", format, cfg.Format),
				log:         log,
				labels:      resolve(cmd, "labels", labels, cfg.Labels),
				cmap:        resolve(cmd, "cmap", cmap, cfg.Cmap),
				precision:   resolve(cmd, "precision", precision, cfg.Precision),
				cbarTitle:   cbarTitle,
				cbarMax:     max,
				out:         out,
				interactive: interactive,
				stdout:      os.Stdout,
				stderr:      os.Stderr,
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "svg",
		"output format: svg, text, or json")
	cmd.Flags().BoolVar(&log, "log", false,
		"use a logarithmic color scale")
	cmd.Flags().StringVar(&labels, "labels", "value",
		"tile labels: value, fraction, percent, or none")
	cmd.Flags().StringVar(&cmap, "cmap", "",
		"color palette (default: summer_r)")
	cmd.Flags().StringVar(&precision, "precision", "",
		"fmt verb for tile labels, e.g. %.2f")
	cmd.Flags().StringVar(&cbarTitle, "cbar-title", "",
		"color-scale legend title")
	cmd.Flags().Float64Var(&cbarMax, "cbar-max", 0,
		"cap the color scale's upper bound")
	cmd.Flags().StringVarP(&out, "out", "o", "",
		"write output to a file instead of stdout")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"browse the heatmap interactively in the terminal")

	return cmd
}

// ratioParams holds the parsed flags for the ratio command.
type ratioParams struct {
	numPath   string
	denomPath string
	format    string
	normalize bool
	log       bool
	cmap      string
	precision string
	cbarTitle string
	out       string
	stdout    io.Writer
	stderr    io.Writer
}

// runRatio is the extracted, testable body of the ratio command.
func runRatio(p ratioParams) error {
	if p.format != "svg" && p.format != "text" {
		return fmt.Errorf("invalid format %q: must be 'svg' or 'text'", p.format)
	}

	num, err := readInput(p.numPath)
	if err != nil {
		return err
	}
	denom, err := readInput(p.denomPath)
	if err != nil {
		return err
	}

	opts := render.DefaultRatioOptions()
	opts.Normalize = p.normalize
	opts.Heatmap.Log = p.log
	if p.cmap != "" {
		opts.Heatmap.Cmap = p.cmap
	}
	if p.precision != "" {
		opts.Heatmap.Precision = p.precision
	}
	if p.cbarTitle != "" {
		opts.Heatmap.CbarTitle = p.cbarTitle
	}

	logger.Info("rendering ratio heatmap", "numerator", p.numPath, "denominator", p.denomPath)

	w, closeOut, err := openOutput(p.out, p.stdout)
	if err != nil {
		return err
	}
	defer closeOut()

	if p.format == "text" {
		v, err := aggregate.Ratio(num, denom)
		if err != nil {
			return err
		}
		if p.normalize {
			v = v.Normalize()
		}
		h := opts.Heatmap
		h.ZeroColor = opts.NotInNumerator.Color
		h.InftyColor = opts.NotInDenominator.Color
		h.NaColor = opts.NotInEither.Color
		return render.WriteText(w, v, h)
	}
	return render.HeatmapRatio(w, num, denom, opts)
}

func newRatioCmd() *cobra.Command {
	var (
		format    string
		normalize bool
		log       bool
		cmap      string
		precision string
		cbarTitle string
		out       string
	)

	cmd := &cobra.Command{
		Use:   "ratio [numerator file] [denominator file]",
		Short: "Render the elementwise ratio of two data files",
		Long: `Aggregate two data files, divide their element counts and render
the quotient as a periodic-table heatmap. Elements missing from the
numerator, denominator, or both are tiled in distinct colors with a
matching legend.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfigOrWarn()
			return runRatio(ratioParams{
				numPath:   args[0],
				denomPath: args[1],
				format:    resolve(cmd, "format", format, cfg.Format),
				normalize: normalize,
				log:       log,
				cmap:      resolve(cmd, "cmap", cmap, cfg.Cmap),
				precision: resolve(cmd, "precision", precision, cfg.Precision),
				cbarTitle: cbarTitle,
				out:       out,
				stdout:    os.Stdout,
				stderr:    os.Stderr,
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "svg",
		"output format: svg or text")
	cmd.Flags().BoolVar(&normalize, "normalize", false,
		"rescale finite ratios to sum to 1")
	cmd.Flags().BoolVar(&log, "log", false,
		"use a logarithmic color scale")
	cmd.Flags().StringVar(&cmap, "cmap", "",
		"color palette (default: summer_r)")
	cmd.Flags().StringVar(&precision, "precision", "",
		"fmt verb for tile labels (default: %.1f)")
	cmd.Flags().StringVar(&cbarTitle, "cbar-title", "",
		"color-scale legend title (default: Element Ratio)")
	cmd.Flags().StringVarP(&out, "out", "o", "",
		"write output to a file instead of stdout")

	return cmd
}

// histParams holds the parsed flags for the hist command.
type histParams struct {
	path      string
	format    string
	topN      int
	log       bool
	barValues string
	barColor  string
	out       string
	stdout    io.Writer
	stderr    io.Writer
}

// runHist is the extracted, testable body of the hist command.
func runHist(p histParams) error {
	if p.format != "svg" && p.format != "text" {
		return fmt.Errorf("invalid format %q: must be 'svg' or 'text'", p.format)
	}
	switch render.BarValues(p.barValues) {
	case render.BarPercent, render.BarCount, render.BarNone:
	default:
		return fmt.Errorf("invalid bar values %q: must be 'percent', 'count', or 'none'", p.barValues)
	}

	in, err := readInput(p.path)
	if err != nil {
		return err
	}

	opts := render.DefaultHistOptions()
	opts.TopN = p.topN
	opts.Log = p.log
	opts.BarValues = render.BarValues(p.barValues)
	if p.barColor != "" {
		opts.BarColor = p.barColor
	}

	logger.Info("rendering prevalence histogram", "input", p.path, "format", p.format)

	w, closeOut, err := openOutput(p.out, p.stdout)
	if err != nil {
		return err
	}
	defer closeOut()

	if p.format == "text" {
		v, err := aggregate.Count(in)
		if err != nil {
			return err
		}
		return render.WriteHistText(w, v, opts)
	}
	return render.Hist(w, in, opts)
}

func newHistCmd() *cobra.Command {
	var (
		format    string
		topN      int
		log       bool
		barValues string
		barColor  string
		out       string
	)

	cmd := &cobra.Command{
		Use:   "hist [data file]",
		Short: "Render an element prevalence histogram",
		Long: `Aggregate a data file and render the nonzero element counts as a
bar chart, sorted descending. --top keeps only the most prevalent
elements.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfigOrWarn()
			return runHist(histParams{
				path:      args[0],
				format:    resolve(cmd, "format", format, cfg.Format),
				topN:      topN,
				log:       log,
				barValues: barValues,
				barColor:  resolve(cmd, "bar-color", barColor, cfg.BarColor),
				out:       out,
				stdout:    os.Stdout,
				stderr:    os.Stderr,
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "svg",
		"output format: svg or text")
	cmd.Flags().IntVar(&topN, "top", 0,
		"keep only the n most prevalent elements (0 = all)")
	cmd.Flags().BoolVar(&log, "log", false,
		"use a logarithmic count axis")
	cmd.Flags().StringVar(&barValues, "bar-values", "percent",
		"bar labels: percent, count, or none")
	cmd.Flags().StringVar(&barColor, "bar-color", "",
		"bar fill color")
	cmd.Flags().StringVarP(&out, "out", "o", "",
		"write output to a file instead of stdout")

	return cmd
}

// parityParams holds the parsed flags for the parity command.
type parityParams struct {
	path       string
	xLabel     string
	yLabel     string
	loc        string
	pointColor string
	out        string
	stdout     io.Writer
	stderr     io.Writer
}

// runParity is the extracted, testable body of the parity command.
func runParity(p parityParams) error {
	loc := stats.Anchor(p.loc)
	switch loc {
	case "", stats.AnchorLowerRight, stats.AnchorLowerLeft,
		stats.AnchorUpperRight, stats.AnchorUpperLeft:
	default:
		return fmt.Errorf("invalid location %q: must be 'lower right', 'lower left', 'upper right', or 'upper left'", p.loc)
	}

	xs, ys, err := readPairs(p.path)
	if err != nil {
		return err
	}

	logger.Info("rendering parity plot", "input", p.path, "pairs", len(xs))

	w, closeOut, err := openOutput(p.out, p.stdout)
	if err != nil {
		return err
	}
	defer closeOut()

	return stats.Parity(w, xs, ys, stats.ParityOptions{
		XLabel:     p.xLabel,
		YLabel:     p.yLabel,
		Loc:        loc,
		PointColor: p.pointColor,
	})
}

func newParityCmd() *cobra.Command {
	var (
		xLabel     string
		yLabel     string
		loc        string
		pointColor string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "parity [pairs file]",
		Short: "Render a parity plot with MAE and R² annotations",
		Long: `Read a two-column x,y CSV file (actual vs predicted values) and
render a scatter parity plot with an identity line and a boxed
MAE/R² summary.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParity(parityParams{
				path:       args[0],
				xLabel:     xLabel,
				yLabel:     yLabel,
				loc:        loc,
				pointColor: pointColor,
				out:        out,
				stdout:     os.Stdout,
				stderr:     os.Stderr,
			})
		},
	}

	cmd.Flags().StringVar(&xLabel, "xlabel", "Actual",
		"x-axis label")
	cmd.Flags().StringVar(&yLabel, "ylabel", "Predicted",
		"y-axis label")
	cmd.Flags().StringVar(&loc, "loc", "",
		"metrics box anchor (default: lower right)")
	cmd.Flags().StringVar(&pointColor, "point-color", "",
		"scatter point fill color")
	cmd.Flags().StringVarP(&out, "out", "o", "",
		"write output to a file instead of stdout")

	return cmd
}

// runCrystal is the extracted, testable body of the crystal command.
func runCrystal(spg string, stdout io.Writer) error {
	n, err := strconv.Atoi(spg)
	if err != nil {
		return fmt.Errorf("invalid space group %q: must be an integer", spg)
	}
	system, err := ptable.CrystalSystem(n)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, system)
	return err
}

func newCrystalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crystal [space group]",
		Short: "Print the crystal system of a space group number",
		Long: `Map an international space group number (1-230) to its crystal
system (triclinic, monoclinic, orthorhombic, tetragonal, trigonal,
hexagonal, or cubic).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrystal(args[0], cmd.OutOrStdout())
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for grid output",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of elemviz heatmap --format=json output. Useful for
validating output or generating client types.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), render.Schema)
			return err
		},
	}
}
