// Command packbatch solves 2D rectangle packing problems, either a
// single problem given on the command line or a batch imported from a
// CSV/Excel file, and writes the results to CSV, Excel, PDF, and DXF.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chahal-neema/2D-Packing/internal/engine"
	"github.com/chahal-neema/2D-Packing/internal/export"
	"github.com/chahal-neema/2D-Packing/internal/importer"
	"github.com/chahal-neema/2D-Packing/internal/model"
	"github.com/chahal-neema/2D-Packing/internal/project"
)

func main() {
	var (
		inputPath   = flag.String("input", "", "batch file to import (.csv or .xlsx)")
		container   = flag.String("container", "", "single-problem container size as WxH, e.g. 20x20")
		tile        = flag.String("tile", "", "single-problem tile size as WxH, e.g. 10x10")
		rotate      = flag.Bool("rotate", true, "allow 90-degree tile rotation")
		center      = flag.Bool("center", false, "center the final arrangement in the container")
		allOptimal  = flag.Bool("all", false, "enumerate all distinct optimal arrangements (single problem)")
		compareFlag = flag.Bool("compare", false, "compare what-if scenario variations (single problem)")
		timeLimit   = flag.Duration("time-limit", 0, "overall solve budget per problem (default from config)")
		outDir      = flag.String("out", ".", "output directory for exported results")
		formats     = flag.String("formats", "csv", "comma-separated export formats: csv,xlsx,pdf,dxf")
		sessionPath = flag.String("session", "", "session file for resumable batch runs")
		configPath  = flag.String("config", project.DefaultConfigPath(), "application config file")
		verbose     = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	config, err := project.LoadAppConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("cannot load config")
	}
	settings := config.Settings()
	if *timeLimit > 0 {
		settings.TimeLimit = *timeLimit
	}

	switch {
	case *inputPath != "":
		runBatch(log, config, *configPath, settings, *inputPath, *sessionPath, *outDir, *formats)
	case *container != "" && *tile != "":
		runSingle(log, settings, *container, *tile, *rotate, *center, *allOptimal, *compareFlag, *outDir, *formats)
	default:
		fmt.Fprintln(os.Stderr, "either -input or both -container and -tile are required")
		flag.Usage()
		os.Exit(2)
	}
}

// runSingle solves one problem given on the command line.
func runSingle(log zerolog.Logger, settings model.SolveSettings, container, tile string, rotate, center, allOptimal, compare bool, outDir, formats string) {
	cw, ch, err := parseSize(container)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -container")
	}
	tw, th, err := parseSize(tile)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -tile")
	}

	problem, err := model.NewProblem(cw, ch, tw, th, rotate)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid problem")
	}
	problem.RequireCentering = center

	solver := engine.NewHybridSolver(settings, log)

	if compare {
		results := engine.CompareScenarios(engine.BuildDefaultScenarios(problem, settings), log)
		for _, r := range results {
			fmt.Printf("%-24s tiles=%d efficiency=%.1f%% centered=%t\n",
				r.Scenario.Name, r.Tiles, r.Efficiency, r.Centered)
		}
		return
	}

	var items []export.Item
	if allOptimal {
		solutions := solver.SolveAllOptimal(problem, settings.MaxSolutions)
		log.Info().Int("count", len(solutions)).Msg("distinct optimal arrangements")
		for _, sol := range solutions {
			items = append(items, export.Item{Problem: problem, Solution: sol})
		}
	} else {
		sol := solver.Solve(problem)
		fmt.Printf("tiles=%d efficiency=%.1f%% solver=%s time=%.3fs\n",
			sol.NumTiles(), sol.Efficiency(), sol.SolverName, sol.SolveTime.Seconds())
		items = []export.Item{{Problem: problem, Solution: sol}}
	}

	if err := writeExports(outDir, formats, items); err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}
}

// runBatch imports a batch file, solves each row (skipping rows already
// recorded in the session), and exports the combined results.
func runBatch(log zerolog.Logger, config project.AppConfig, configPath string, settings model.SolveSettings, inputPath, sessionPath, outDir, formats string) {
	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".xlsx", ".xlsm":
		result = importer.ImportExcel(inputPath)
	default:
		result = importer.ImportCSV(inputPath)
	}
	for _, w := range result.Warnings {
		log.Warn().Msg(w)
	}
	for _, e := range result.Errors {
		log.Error().Msg(e)
	}
	if len(result.Problems) == 0 {
		log.Fatal().Msg("no usable problems in batch file")
	}
	log.Info().Int("problems", len(result.Problems)).Str("file", inputPath).Msg("batch imported")

	session := project.NewSession(inputPath)
	if sessionPath != "" {
		loaded, err := project.LoadOrCreateSession(sessionPath, inputPath)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot load session")
		}
		if done := len(loaded.CompletedRows()); done > 0 {
			log.Info().Int("completed", done).Msg("resuming session")
		}
		session = loaded
	}

	solver := engine.NewHybridSolver(settings, log)
	for i, problem := range result.Problems {
		if session.IsComplete(i) {
			continue
		}
		sol := solver.Solve(problem)
		session.Complete(i, problem, sol)
		log.Info().
			Int("row", i+1).
			Int("tiles", sol.NumTiles()).
			Float64("efficiency", sol.Efficiency()).
			Msg("row solved")

		if sessionPath != "" {
			if err := project.SaveSession(sessionPath, session); err != nil {
				log.Fatal().Err(err).Msg("cannot save session")
			}
		}
	}

	items := make([]export.Item, 0, len(result.Problems))
	for _, row := range session.CompletedRows() {
		r := session.Results[row]
		items = append(items, export.Item{Problem: r.Problem, Solution: r.Record.Solution()})
	}
	if err := writeExports(outDir, formats, items); err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}

	config.RememberFile(inputPath)
	if err := project.SaveAppConfig(configPath, config); err != nil {
		log.Warn().Err(err).Msg("cannot save config")
	}
}

// writeExports writes the requested formats into outDir. DXF output gets
// one file per result since the format carries a single layout.
func writeExports(outDir, formats string, items []export.Item) error {
	if len(items) == 0 {
		return nil
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	for _, format := range strings.Split(formats, ",") {
		switch strings.TrimSpace(strings.ToLower(format)) {
		case "":
			continue
		case "csv":
			if err := export.ExportCSV(filepath.Join(outDir, "results.csv"), items); err != nil {
				return err
			}
		case "xlsx":
			if err := export.ExportExcel(filepath.Join(outDir, "results.xlsx"), items); err != nil {
				return err
			}
		case "pdf":
			if err := export.ExportPDF(filepath.Join(outDir, "results.pdf"), items); err != nil {
				return err
			}
		case "dxf":
			for i, item := range items {
				name := fmt.Sprintf("layout_%03d.dxf", i+1)
				if err := export.ExportDXF(filepath.Join(outDir, name), item); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("unknown export format %q", format)
		}
	}
	return nil
}

// parseSize parses a WxH size argument.
func parseSize(s string) (w, h int, err error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected WxH, got %q", s)
	}
	w, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width %q", parts[0])
	}
	h, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height %q", parts[1])
	}
	return w, h, nil
}
