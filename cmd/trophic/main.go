package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/ecosim/trophic/internal/config"
	"github.com/ecosim/trophic/internal/dataset"
	"github.com/ecosim/trophic/internal/foodweb"
	"github.com/ecosim/trophic/internal/sweep"
	"github.com/ecosim/trophic/internal/tui"
)

var (
	configFile string
	outputPath string
	workers    int
	seed       int64
	live       bool

	qmin   float64
	qmax   float64
	qsteps int

	steplength float64
	analyzeTS  float64
	uniqueOut  bool
	maxOut     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trophic",
		Short: "food-chain and food-web bifurcation sweeps",
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a q-sweep",
	}
	addSweepFlags(sweepCmd)

	chainCmd := &cobra.Command{
		Use:   "chain",
		Short: "3-species chain: bifurcation extrema per species",
		RunE:  runChain,
	}
	webCmd := &cobra.Command{
		Use:   "web",
		Short: "10-species web: surviving-species counts",
		RunE:  runWeb,
	}
	sweepCmd.AddCommand(chainCmd, webCmd)

	plotCmd := &cobra.Command{
		Use:   "plot [csv]",
		Short: "quick-look plot of a sweep output table",
		Args:  cobra.ExactArgs(1),
		RunE:  plotTable,
	}

	topoCmd := &cobra.Command{
		Use:   "topology",
		Short: "print the web diet structure and trophic levels",
		RunE:  showTopology,
	}

	rootCmd.AddCommand(sweepCmd, plotCmd, topoCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func addSweepFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "sweep config file (yaml)")
	cmd.PersistentFlags().StringVar(&outputPath, "out", "", "output directory")
	cmd.PersistentFlags().IntVar(&workers, "workers", 0, "worker count (0 = 3/4 of CPUs)")
	cmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = wall clock)")
	cmd.PersistentFlags().BoolVar(&live, "live", false, "live progress view")
	cmd.PersistentFlags().Float64Var(&qmin, "qmin", 0, "sweep start")
	cmd.PersistentFlags().Float64Var(&qmax, "qmax", 0, "sweep end")
	cmd.PersistentFlags().IntVar(&qsteps, "qsteps", 0, "number of sweep points")
	cmd.PersistentFlags().Float64Var(&steplength, "steplength", 0, "nominal step size")
	cmd.PersistentFlags().Float64Var(&analyzeTS, "analyze", 0, "trailing fraction analyzed, (0,1]")
	cmd.PersistentFlags().BoolVar(&uniqueOut, "unique", true, "dedupe extrema per q-value")
	cmd.PersistentFlags().IntVar(&maxOut, "maxout", -1, "cap on extrema per q-value (0 = unbounded)")
}

// loadConfig resolves the effective sweep config: file values first,
// then only the flags the user actually set. Flags whose zero value is
// meaningful (seed, unique, qmin, qmax) are guarded by Changed so a
// config file's values survive when the flag is absent.
func loadConfig(cmd *cobra.Command) (*config.Sweep, error) {
	cfg := config.Default()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if outputPath != "" {
		cfg.OutputPath = outputPath
	}
	if workers > 0 {
		cfg.NoC = workers
	}
	if flags.Changed("qmin") {
		cfg.QMin = qmin
	}
	if flags.Changed("qmax") {
		cfg.QMax = qmax
	}
	if qsteps > 0 {
		cfg.QSteps = qsteps
	}
	if steplength > 0 {
		cfg.Steplength = steplength
	}
	if analyzeTS > 0 {
		cfg.AnalyzeTS = analyzeTS
	}
	if maxOut >= 0 {
		cfg.MaxOut = maxOut
	}
	if flags.Changed("unique") {
		cfg.UniqueOut = uniqueOut
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return cfg, nil
}

func runChain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(false); err != nil {
		return err
	}

	orch := sweep.New(cfg)
	start := time.Now()

	var res *sweep.ChainResult
	err = withProgress(orch, "chain", len(cfg.Qs()), func(ctx context.Context) error {
		var runErr error
		res, runErr = orch.RunChain(ctx)
		return runErr
	})
	if errors.Is(err, tui.ErrAborted) {
		fmt.Println(tui.Warn.Render("sweep aborted, no output written"))
		return nil
	}
	if err != nil {
		return err
	}

	files := map[string]*dataset.Table{
		"basal.csv":        res.Basal,
		"intermediate.csv": res.Intermediate,
		"top.csv":          res.Top,
	}
	for name, table := range files {
		if err := table.WriteCSV(filepath.Join(cfg.OutputPath, name)); err != nil {
			return err
		}
	}

	fmt.Println(tui.Title.Render("chain sweep complete"))
	fmt.Printf("  %s q-values   %s rows (basal/intermediate/top: %d/%d/%d)\n",
		tui.Value.Render(fmt.Sprintf("%d", len(cfg.Qs()))),
		tui.Value.Render(fmt.Sprintf("%d", res.Basal.Len()+res.Intermediate.Len()+res.Top.Len())),
		res.Basal.Len(), res.Intermediate.Len(), res.Top.Len())
	fmt.Printf("  wrote %s in %s\n", cfg.OutputPath, time.Since(start).Round(time.Millisecond))
	return nil
}

func runWeb(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(true); err != nil {
		return err
	}

	orch := sweep.New(cfg)
	start := time.Now()

	var res *sweep.WebResult
	err = withProgress(orch, "web", len(cfg.Qs()), func(ctx context.Context) error {
		var runErr error
		res, runErr = orch.RunWeb(ctx)
		return runErr
	})
	if errors.Is(err, tui.ErrAborted) {
		fmt.Println(tui.Warn.Render("sweep aborted, no output written"))
		return nil
	}
	if err != nil {
		return err
	}

	if err := res.Diversity.WriteCSV(filepath.Join(cfg.OutputPath, "diversity.csv")); err != nil {
		return err
	}

	fmt.Println(tui.Title.Render("web sweep complete"))
	fmt.Printf("  %s q-values   wrote %s in %s\n",
		tui.Value.Render(fmt.Sprintf("%d", res.Diversity.Len())),
		cfg.OutputPath, time.Since(start).Round(time.Millisecond))
	return nil
}

// withProgress runs fn, surfacing progress either through the live TUI
// or as plain prints. Quitting the live view cancels fn's context and
// reports tui.ErrAborted after the workers unwind.
func withProgress(orch *sweep.Orchestrator, name string, total int, fn func(context.Context) error) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan sweep.Progress, total)
	orch.Notify(events)

	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
		close(done)
		close(events)
	}()

	if live {
		m, err := tea.NewProgram(tui.NewModel(name, events, done, cancel)).Run()
		if err != nil {
			return err
		}
		if uiErr := m.(tui.Model).Err(); uiErr != nil {
			if errors.Is(uiErr, tui.ErrAborted) {
				<-done // barrier: canceled workers finish before we return
			}
			return uiErr
		}
		return nil
	}

	for p := range events {
		fmt.Printf("\r%d/%d q-values done (q=%g)        ", p.Done, p.Total, p.Q)
	}
	fmt.Println()
	return <-done
}

func plotTable(cmd *cobra.Command, args []string) error {
	t, err := dataset.ReadCSV(args[0])
	if err != nil {
		return err
	}
	if t.Len() == 0 || len(t.Columns()) < 2 {
		return fmt.Errorf("%s: not a sweep output table", args[0])
	}

	t.Sort(0)
	data := t.Column(1)

	graph := asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s vs %s (sorted by %s)", t.Columns()[1], t.Columns()[0], t.Columns()[0])),
	)
	fmt.Println(graph)
	return nil
}

func showTopology(cmd *cobra.Command, args []string) error {
	top := foodweb.WebTopology()
	fmt.Println(tui.Title.Render("10-species web topology"))
	for i := 0; i < foodweb.WebSize; i++ {
		if top.Basal(i) {
			fmt.Printf("  %2d  level %.2f  basal\n", i, top.Levels[i])
			continue
		}
		fmt.Printf("  %2d  level %.2f  eats", i, top.Levels[i])
		for _, l := range top.Diet[i] {
			fmt.Printf("  %d (%.0f%%)", l.Resource, 100*l.Fraction)
		}
		fmt.Println()
	}
	return nil
}
