// Command stress-report trains the wearable stress-scoring artifact from a
// multi-subject physiological dataset: it extracts per-window features from
// each subject's recordings, computes baseline priors, fits a weight vector,
// and writes the combined JSON artifact for the downstream scoring app.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/wearlab-data/stress.report/internal/config"
	"github.com/wearlab-data/stress.report/internal/dataset"
	"github.com/wearlab-data/stress.report/internal/model"
	"github.com/wearlab-data/stress.report/internal/report"
	"github.com/wearlab-data/stress.report/internal/store"
	"github.com/wearlab-data/stress.report/internal/version"
	"github.com/wearlab-data/stress.report/internal/wesad"
)

var (
	rootDir    = flag.String("root", "", "Dataset root containing S2/, S3/, ... subject folders")
	subjects   = flag.String("subjects", "", "Comma-separated subject IDs (e.g. S2,S3); empty = auto-detect")
	windowS    = flag.Float64("window-s", 60.0, "Window length in seconds")
	strideS    = flag.Float64("stride-s", 60.0, "Window stride in seconds")
	weightMode = flag.String("weight-mode", "effect_size", "Weighting strategy: effect_size or linear")
	outPath    = flag.String("out", "priors.json", "Output artifact path")
	dbPath     = flag.String("db", "", "Optional SQLite path for run/row persistence")
	reportPath = flag.String("report", "", "Optional HTML dataset report path")
	configPath = flag.String("config", "", "Optional JSON config file; explicit flags take precedence")
	showVer    = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("stress-report %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *rootDir == "" {
		log.Fatal("missing -root: dataset root directory is required")
	}

	cfg, err := resolveConfig()
	if err != nil {
		log.Fatalf("Failed to resolve configuration: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Training failed: %v", err)
	}
}

// runConfig is the fully resolved configuration for one training run.
type runConfig struct {
	root       string
	subjects   []string
	out        string
	dbPath     string
	reportPath string

	assembler dataset.AssemblerConfig
	fitter    model.FitterConfig
}

// resolveConfig merges defaults, the optional JSON config file, and CLI
// flags, with explicitly set flags winning.
func resolveConfig() (runConfig, error) {
	fileCfg := &config.TrainingConfig{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return runConfig{}, err
		}
		fileCfg = loaded
	}

	flagSet := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { flagSet[f.Name] = true })

	window := fileCfg.GetWindowSecs()
	if flagSet["window-s"] {
		window = *windowS
	}
	stride := fileCfg.GetStrideSecs()
	if flagSet["stride-s"] {
		stride = *strideS
	}
	mode := fileCfg.GetWeightMode()
	if flagSet["weight-mode"] {
		mode = *weightMode
	}
	if mode != string(model.ModeEffectSize) && mode != string(model.ModeLinear) {
		return runConfig{}, fmt.Errorf("invalid weight mode %q", mode)
	}

	var ids []string
	for _, s := range strings.Split(*subjects, ",") {
		if s = strings.TrimSpace(s); s != "" {
			ids = append(ids, s)
		}
	}

	asm := dataset.DefaultAssemblerConfig()
	asm.WindowSecs = window
	asm.StrideSecs = stride
	asm.MinRows = fileCfg.GetMinRows()
	asm.Workers = fileCfg.GetWorkers()

	newton := model.DefaultNewtonConfig()
	newton.L2 = fileCfg.GetL2Penalty()

	return runConfig{
		root:       *rootDir,
		subjects:   ids,
		out:        *outPath,
		dbPath:     *dbPath,
		reportPath: *reportPath,
		assembler:  asm,
		fitter: model.FitterConfig{
			Mode:                model.WeightMode(mode),
			Newton:              newton,
			FlipSign:            fileCfg.GetFlipSign(),
			TargetProjectionStd: fileCfg.GetTargetProjectionStd(),
		},
	}, nil
}

func run(cfg runConfig) error {
	ids := cfg.subjects
	if len(ids) == 0 {
		discovered, err := wesad.DiscoverSubjects(cfg.root)
		if err != nil {
			return err
		}
		ids = discovered
	}
	if len(ids) == 0 {
		return fmt.Errorf("no subjects found under %s", cfg.root)
	}
	log.Printf("Training from %d subject(s) under %s", len(ids), cfg.root)

	sessions := wesad.LoadSubjects(cfg.root, ids, func(id string, err error) {
		log.Printf("[skip] %s: %v", id, err)
	})

	assembler := dataset.NewAssembler(cfg.assembler)
	ds, err := assembler.Assemble(sessions)
	if err != nil {
		return err
	}

	baselineRows, stressRows := 0, 0
	for _, r := range ds.Rows {
		if r.Label == 1 {
			stressRows++
		} else {
			baselineRows++
		}
	}
	log.Printf("Dataset assembled: %d rows (%d baseline, %d stress)", len(ds.Rows), baselineRows, stressRows)

	priors := model.EstimatePriors(ds)
	fitted, err := model.NewFitter(cfg.fitter).Fit(ds, priors)
	if err != nil {
		return err
	}

	notes := "Signals from per-device CSV exports aligned to the label track. " +
		"HR/HRV estimated from the chest signal via FFT bandpass + peak detection. " +
		fmt.Sprintf("Weights fitted with the %s strategy.", cfg.fitter.Mode)
	artifact := model.NewArtifact("WESAD", notes, cfg.assembler.WindowSecs, cfg.assembler.StrideSecs, priors, fitted)

	if err := artifact.WriteFile(cfg.out); err != nil {
		return err
	}
	log.Printf("Wrote %s", cfg.out)

	if cfg.dbPath != "" {
		if err := persistRun(cfg, ds, artifact, baselineRows, stressRows); err != nil {
			return err
		}
	}
	if cfg.reportPath != "" {
		if err := report.WriteHTML(cfg.reportPath, ds); err != nil {
			return err
		}
		log.Printf("Wrote %s", cfg.reportPath)
	}
	return nil
}

// persistRun records the run, its accepted rows, and the final artifact.
func persistRun(cfg runConfig, ds *dataset.Dataset, artifact *model.Artifact, baselineRows, stressRows int) error {
	st, err := store.Open(cfg.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	run := &store.TrainingRun{
		RunID:        artifact.Meta.RunID,
		Source:       artifact.Meta.Source,
		WindowSecs:   cfg.assembler.WindowSecs,
		StrideSecs:   cfg.assembler.StrideSecs,
		WeightMode:   string(cfg.fitter.Mode),
		RowCount:     len(ds.Rows),
		BaselineRows: baselineRows,
		StressRows:   stressRows,
	}
	if err := st.InsertRun(run); err != nil {
		return err
	}
	if err := st.InsertRows(run.RunID, ds.Rows); err != nil {
		return err
	}

	artifactJSON, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("marshal artifact for store: %w", err)
	}
	if err := st.SetArtifact(run.RunID, artifactJSON); err != nil {
		return err
	}
	log.Printf("Recorded run %s in %s", run.RunID, cfg.dbPath)
	return nil
}
