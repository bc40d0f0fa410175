package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/insightout11/cracked-ice/internal/combos"
	"github.com/insightout11/cracked-ice/internal/config"
	"github.com/insightout11/cracked-ice/internal/excel"
	"github.com/insightout11/cracked-ice/internal/httpapi"
	"github.com/insightout11/cracked-ice/internal/mcp"
	"github.com/insightout11/cracked-ice/internal/outwriter"
	"github.com/insightout11/cracked-ice/internal/parquet"
	"github.com/insightout11/cracked-ice/internal/setmath"
	"github.com/insightout11/cracked-ice/internal/strategy"
	"github.com/insightout11/cracked-ice/internal/tiers"
	"github.com/insightout11/cracked-ice/internal/validator"
)

type windowFlags struct {
	start, end string
}

func (f *windowFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "First date of the window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "Last date of the window (YYYY-MM-DD)")
}

func (f windowFlags) window() (setmath.Window, error) {
	w := setmath.Window{Start: f.start, End: f.end}
	if err := w.Validate(); err != nil {
		return setmath.Window{}, err
	}
	return w, nil
}

type tierFlags struct {
	playoffStart string
	playoffWeek  int
	strategy     string
	offNight     float64
	gameVolume   float64
}

func (f *tierFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.playoffStart, "playoff-start", "", "First day of the fantasy playoffs (YYYY-MM-DD)")
	cmd.Flags().IntVar(&f.playoffWeek, "playoff-week", 0, "Fantasy week the playoffs start in, counted from tiers.season_start")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "Weighting preset: balanced or off_night or volume")
	cmd.Flags().Float64Var(&f.offNight, "off-night-weight", 0, "Weight of the off-night share")
	cmd.Flags().Float64Var(&f.gameVolume, "game-volume-weight", 0, "Weight of the game count")
}

// explicit reports whether the command names its own playoff boundary.
func (f tierFlags) explicit() bool {
	return f.playoffStart != "" || f.playoffWeek != 0
}

type exportFlags struct {
	tiers      tierFlags
	xlsx       string
	parquetDir string
}

func (f *exportFlags) register(cmd *cobra.Command) {
	f.tiers.register(cmd)
	cmd.Flags().StringVarP(&f.xlsx, "output", "o", "cracked-ice.xlsx", "Output Excel file path")
	cmd.Flags().StringVar(&f.parquetDir, "parquet-dir", "", "Also write Parquet files into this directory")
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(config.Template), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

func runValidate(path string) error {
	violations, err := validator.ValidateFile(path)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errCount := 0
	warnings := 0
	for _, v := range violations {
		switch v.Type {
		case validator.Error:
			errCount++
			fmt.Printf("✗ %s\n", v.Message)
		case validator.Warning:
			warnings++
			fmt.Printf("⚠ %s\n", v.Message)
		}
	}

	fmt.Printf("\nValidation complete: %d errors, %d warnings\n", errCount, warnings)
	if errCount > 0 {
		return fmt.Errorf("%d errors found in %s", errCount, path)
	}
	fmt.Printf("✓ %s is usable\n", path)
	return nil
}

func (a *app) runComplements(seed string, wf windowFlags) error {
	w, err := wf.window()
	if err != nil {
		return err
	}
	results, err := a.eng.RankComplements(seed, w)
	if err != nil {
		return err
	}
	return outwriter.WriteComplements(os.Stdout, seed, results, a.out)
}

func (a *app) runAddedStarts(rosterCodes []string, candidate string, wf windowFlags) error {
	w, err := wf.window()
	if err != nil {
		return err
	}
	result, err := a.eng.AddedStarts(rosterCodes, candidate, w, 0)
	if err != nil {
		return err
	}
	return outwriter.WriteAddedStarts(os.Stdout, result, a.out)
}

func (a *app) runAddedStartsBulk(rosterCodes []string, wf windowFlags) error {
	w, err := wf.window()
	if err != nil {
		return err
	}
	rows, err := a.eng.AddedStartsBulk(rosterCodes, w, 0)
	if err != nil {
		return err
	}
	return outwriter.WriteAddedStartsBulk(os.Stdout, rosterCodes, rows, a.out)
}

func (a *app) runBest(arg string, wf windowFlags) error {
	k, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("%w: got %q", combos.ErrInvalidSize, arg)
	}
	w, err := wf.window()
	if err != nil {
		return err
	}
	entries, err := a.eng.BestMatches(k, w, 0)
	if err != nil {
		return err
	}
	return outwriter.WriteBestMatches(os.Stdout, k, entries, a.out)
}

// tierInputs resolves the playoff start and weights for one command,
// starting from the config and applying any flags the user changed.
func (a *app) tierInputs(cmd *cobra.Command, tf tierFlags) (string, tiers.Weights, error) {
	boundary, err := a.cfg.Boundary()
	if err != nil {
		return "", tiers.Weights{}, err
	}
	start, err := boundary.Resolve(tf.playoffStart, tf.playoffWeek)
	if err != nil {
		return "", tiers.Weights{}, err
	}

	weights, err := a.cfg.TierWeights()
	if err != nil {
		return "", tiers.Weights{}, err
	}
	if tf.strategy != "" {
		s, err := strategy.Get(tf.strategy)
		if err != nil {
			return "", tiers.Weights{}, err
		}
		weights = s.Weights
	}

	settings := make(map[string]float64)
	if cmd.Flags().Changed("off-night-weight") {
		settings[tiers.OffNightWeightKey] = tf.offNight
	}
	if cmd.Flags().Changed("game-volume-weight") {
		settings[tiers.GameVolumeWeightKey] = tf.gameVolume
	}
	for key, v := range settings {
		if v < 0 {
			return "", tiers.Weights{}, fmt.Errorf("%s must not be negative, got %v", key, v)
		}
	}
	return start, weights.With(settings), nil
}

func (a *app) runTiers(cmd *cobra.Command, tf tierFlags) error {
	start, weights, err := a.tierInputs(cmd, tf)
	if err != nil {
		return err
	}
	report, err := a.eng.TeamTiers(start, weights)
	if err != nil {
		return err
	}
	return outwriter.WriteTiers(os.Stdout, report, a.out)
}

func (a *app) runExport(cmd *cobra.Command, ef exportFlags) error {
	store, err := a.eng.Store()
	if err != nil {
		return err
	}

	best := make(map[int][]combos.Entry, len(combos.Sizes))
	for _, k := range combos.Sizes {
		entries, err := a.eng.BestMatches(k, setmath.Window{}, 0)
		if err != nil {
			return fmt.Errorf("best matches of %d: %w", k, err)
		}
		best[k] = entries
	}

	var report *tiers.Report
	start, weights, err := a.tierInputs(cmd, ef.tiers)
	switch {
	case err == nil:
		if report, err = a.eng.TeamTiers(start, weights); err != nil {
			return err
		}
	case errors.Is(err, tiers.ErrInvalidPlayoffStart) && !ef.tiers.explicit():
		fmt.Fprintf(os.Stderr, "⚠ Skipping tiers: %v\n", err)
	default:
		return err
	}

	f, err := excel.Generate(excel.Input{Store: store, Tiers: report, Best: best})
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(ef.xlsx); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	fmt.Printf("✓ Workbook saved to %s\n", ef.xlsx)

	if ef.parquetDir == "" {
		return nil
	}
	var tierRows []parquet.TierRow
	if report != nil {
		tierRows = parquet.TierRows(report)
	}
	paths, err := parquet.Export(ef.parquetDir, parquet.BestMatchRows(store.Meta().Season, a.eng.SlotsPerDay(), best), tierRows)
	if err != nil {
		return fmt.Errorf("exporting parquet: %w", err)
	}
	for _, p := range paths {
		fmt.Printf("✓ Wrote %s\n", p)
	}
	return nil
}

// tierDefaults returns the boundary and weights the servers fall back on.
func (a *app) tierDefaults() (tiers.Boundary, tiers.Weights, error) {
	boundary, err := a.cfg.Boundary()
	if err != nil {
		return tiers.Boundary{}, tiers.Weights{}, err
	}
	weights, err := a.cfg.TierWeights()
	if err != nil {
		return tiers.Boundary{}, tiers.Weights{}, err
	}
	return boundary, weights, nil
}

func runServe() error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	if err := a.eng.Err(); err != nil {
		a.log.WithError(err).Warn("serving without schedule data")
	}
	boundary, weights, err := a.tierDefaults()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: a.cfg.Server.Addr,
		Handler: httpapi.NewRouter(a.eng, httpapi.Options{
			CORSOrigins: a.cfg.Server.CORSOrigins,
			Logger:      a.log,
			Boundary:    boundary,
			Weights:     weights,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("✓ crackedice listening on %s\n", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server: %w", err)

	case sig := <-shutdown:
		fmt.Printf("\n⚠ Received signal: %v\n", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	fmt.Println("✓ Shutdown complete")
	return nil
}

func runMCP() error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	if err := a.eng.Err(); err != nil {
		a.log.WithError(err).Warn("serving tools without schedule data")
	}
	boundary, weights, err := a.tierDefaults()
	if err != nil {
		return err
	}
	return mcp.Serve(a.eng, mcp.Options{
		Version:  version,
		Boundary: boundary,
		Weights:  weights,
		Logger:   a.log,
	})
}
