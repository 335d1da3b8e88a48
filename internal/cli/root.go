// Package cli defines Cobra command definitions for the echoes CLI.
// This file contains the root command, which launches the timer TUI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pharloom/echoes/internal/api"
	"github.com/pharloom/echoes/internal/app"
	"github.com/pharloom/echoes/internal/config"
	"github.com/pharloom/echoes/internal/domain"
	"github.com/pharloom/echoes/internal/media"
	"github.com/pharloom/echoes/internal/plan"
	"github.com/pharloom/echoes/internal/store"
	"github.com/pharloom/echoes/internal/timer"
)

var (
	flagMinutes   int
	flagSeconds   int
	flagAreas     []string
	flagBreakMin  int
	flagBreakSec  int
	flagSegments  int
	flagRandomize bool
	flagPlanFile  string
	flagStateDir  string
	flagAutostart bool

	version = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "echoes",
	Short: "Ambient focus timer with looping area soundscapes",
	Long: `Echoes runs a focus session as a sequence of timed segments, each
bound to a study area whose background video and audio loop while the
countdown runs. Breaks between segments pause the media; completed
sessions feed a local history with daily and focus streaks.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runRoot,
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().IntVar(&flagMinutes, "minutes", 0, "Total session length in minutes")
	rootCmd.Flags().IntVar(&flagSeconds, "seconds", 0, "Total session length in seconds (overrides --minutes)")
	rootCmd.Flags().StringSliceVar(&flagAreas, "areas", nil, "Ordered area ids to split the session across")
	rootCmd.Flags().IntVar(&flagBreakMin, "break", 0, "Break between segments in minutes")
	rootCmd.Flags().IntVar(&flagBreakSec, "break-seconds", 0, "Break between segments in seconds (overrides --break)")
	rootCmd.Flags().IntVar(&flagSegments, "segments", 0, "Segment count for --randomize")
	rootCmd.Flags().BoolVar(&flagRandomize, "randomize", false, "Pick areas at random")
	rootCmd.Flags().StringVar(&flagPlanFile, "plan-file", "", "Read the session plan from a JSON file")
	rootCmd.Flags().BoolVar(&flagAutostart, "autostart", false, "Start the countdown immediately")
	rootCmd.PersistentFlags().StringVar(&flagStateDir, "state-dir", "", "State directory (default ~/.echoes)")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(areasCmd)
}

func configDir() string {
	if flagStateDir != "" {
		return flagStateDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".echoes"
	}
	return filepath.Join(home, ".echoes")
}

// newLogger writes structured logs to a file in the state directory. The
// terminal belongs to the TUI.
func newLogger(dir string) *slog.Logger {
	f, err := os.OpenFile(filepath.Join(dir, "echoes.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(f, nil))
}

func runRoot(cmd *cobra.Command, args []string) error {
	dir := configDir()
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	if cfg.StateDir != "" && flagStateDir == "" {
		dir = cfg.StateDir
	}

	states, err := store.NewStateFiles(dir)
	if err != nil {
		return err
	}
	logger := newLogger(dir)

	breakSet := cmd.Flags().Changed("break") || cmd.Flags().Changed("break-seconds")
	resolved, raw, explicit, err := resolvePlan(cfg, states, breakSet)
	if err != nil {
		return err
	}

	sessions, err := store.NewSessionStore(filepath.Join(dir, "sessions.db"))
	if err != nil {
		return err
	}
	defer func() { _ = sessions.Close() }()

	var remote store.Remote
	if client := api.NewClient(cfg.API.BaseURL, cfg.API.Token); client.Configured() {
		remote = client
	}
	recorder := store.NewRecorder(sessions, states, remote, logger)

	ctrl := media.NewController(cfg.Media.MpvPath, logger, nil)
	ctrl.Start(cmd.Context())
	ctrl.SetVolume(cfg.Media.Volume)
	if area, ok := cfg.AreaByID(resolved.Segments[0].Area); ok {
		ctrl.LoadArea(area)
	}

	// An explicitly authored plan replaces whatever was pending, invalidates
	// the old snapshot, and starts ticking right away.
	if explicit {
		if err := states.SavePendingPlan(raw); err != nil {
			logger.Warn("pending plan not persisted", "error", err)
		}
		if err := states.ClearSnapshot(); err != nil {
			logger.Warn("snapshot not cleared", "error", err)
		}
	}

	autostart := explicit || flagAutostart || states.Autostart()
	if err := states.SetAutostart(false); err != nil {
		logger.Warn("autostart flag not cleared", "error", err)
	}

	model := app.New(app.Options{
		Config:    cfg,
		Plan:      resolved,
		RawPlan:   raw,
		Engine:    timer.New(resolved),
		Media:     ctrl,
		Recorder:  recorder,
		Snapshots: states,
		Logger:    logger,
		Autostart: autostart,
	})

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(), // focus loss feeds the session event log
	)

	_, err = program.Run()
	return err
}

// resolvePlan turns flags, the pending authored plan, and the persisted
// snapshot into the plan to run, in that priority order. explicit reports
// whether flags authored the plan.
func resolvePlan(cfg *config.Config, states *store.StateFiles, breakSet bool) (plan.Plan, domain.SessionPlan, bool, error) {
	def := plan.Defaults{
		Area:        cfg.DefaultArea,
		DurationSec: cfg.Timer.DefaultDurationSec,
		BreakSec:    cfg.Timer.BreakDurationSec,
	}

	raw, explicit, err := planFromFlags(cfg, breakSet)
	if err != nil {
		return plan.Plan{}, domain.SessionPlan{}, false, err
	}

	var resolved plan.Plan
	secondsMode := flagSeconds > 0 || flagBreakSec > 0
	if explicit {
		resolved, err = plan.Normalize(raw, def)
		if err != nil {
			return plan.Plan{}, domain.SessionPlan{}, false, err
		}
	} else {
		pending := states.LoadPendingPlan()
		snap := states.LoadSnapshot()
		resolved = plan.Resolve(pending, snap, def)
		if pending != nil {
			raw = *pending
		} else {
			raw = domain.SessionPlan{Segments: resolved.Segments}
		}
		// A snapshot-derived plan can carry odd second counts.
		secondsMode = true
	}

	if ok, msg := plan.ValidateSegments(resolved, secondsMode); !ok {
		return plan.Plan{}, domain.SessionPlan{}, false, fmt.Errorf("%s", msg)
	}
	if ok, msg := plan.ValidateBreak(resolved.BreakDurationSec, secondsMode); !ok {
		return plan.Plan{}, domain.SessionPlan{}, false, fmt.Errorf("%s", msg)
	}

	for _, seg := range resolved.Segments {
		if _, ok := cfg.AreaByID(seg.Area); !ok {
			return plan.Plan{}, domain.SessionPlan{}, false, fmt.Errorf("%w: %s", domain.ErrUnknownArea, seg.Area)
		}
	}

	return resolved, raw, explicit, nil
}

// planFromFlags builds the authored plan when any plan flag was given.
// explicit is false when no flag was set, which means the stored pending
// plan or snapshot decides instead.
func planFromFlags(cfg *config.Config, breakSet bool) (raw domain.SessionPlan, explicit bool, err error) {
	if flagPlanFile != "" {
		raw, err = readPlanFile(flagPlanFile)
		return raw, true, err
	}

	explicit = flagMinutes > 0 || flagSeconds > 0 || len(flagAreas) > 0 || flagRandomize
	if !explicit {
		return domain.SessionPlan{}, false, nil
	}

	totalSec := flagSeconds
	if totalSec == 0 {
		totalSec = flagMinutes * 60
	}
	if totalSec == 0 {
		totalSec = cfg.Timer.DefaultDurationSec
	}

	// An explicit zero break means no breaks; an unset flag falls back to
	// the configured default.
	breakSec := flagBreakSec
	if breakSec == 0 {
		breakSec = flagBreakMin * 60
	}
	if !breakSet {
		breakSec = cfg.Timer.BreakDurationSec
	}

	if flagRandomize {
		pool := flagAreas
		if len(pool) == 0 {
			pool = cfg.AreaIDs()
		}
		count := flagSegments
		if count == 0 {
			count = len(pool)
		}
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		p := plan.Randomize(pool, totalSec, count, breakSec, rng)
		return domain.SessionPlan{Segments: p.Segments, BreakDurationSec: &breakSec}, true, nil
	}

	areas := flagAreas
	if len(areas) == 0 {
		areas = []string{cfg.DefaultArea}
	}

	return domain.SessionPlan{
		Unit:             unitForFlags(),
		TotalDurationSec: totalSec,
		Areas:            areas,
		BreakDurationSec: &breakSec,
	}, true, nil
}

func unitForFlags() string {
	if flagSeconds > 0 {
		return "seconds"
	}
	return "minutes"
}

func readPlanFile(path string) (domain.SessionPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SessionPlan{}, fmt.Errorf("read plan file: %w", err)
	}
	var raw domain.SessionPlan
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.SessionPlan{}, fmt.Errorf("parse plan file: %w", err)
	}
	return raw, nil
}
