package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumipallolabs/diskusage/internal/config"
	"github.com/lumipallolabs/diskusage/internal/core"
	"github.com/lumipallolabs/diskusage/internal/logging"
	"github.com/lumipallolabs/diskusage/internal/report"
	"github.com/lumipallolabs/diskusage/internal/ui"
)

func main() {
	// Enable CPU profiling if CPUPROFILE env var is set
	if cpuProfile := os.Getenv("CPUPROFILE"); cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  = flag.String("config", "", "Path to a JSON config file")
		dir         = flag.String("dir", "", "Root directory to scan (default \"/\")")
		home        = flag.Bool("home", false, "Scan the user's home directory")
		ignore      = flag.String("ignore", "", "Glob of absolute paths to skip, e.g. **/.git")
		reclaimable = flag.String("reclaimable", "", "Glob of regenerable directories (default \"**/node_modules\")")
		hidden      = flag.Bool("hidden", false, "Include hidden files and directories")
		topN        = flag.Int("top", 0, "Number of largest files to keep (default 100)")
		threshold   = flag.Int64("threshold", 0, "Minimum size in bytes for the largest files (default 50 MiB)")
		plain       = flag.Bool("plain", false, "Print a text report instead of the interactive view")
		limit       = flag.Int("limit", 20, "Entries per list in the text report (0 = all)")
		logPath     = flag.String("log", "", "Write debug logs to this file")
	)
	flag.Parse()

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log %s: %w", *logPath, err)
		}
		defer f.Close()
		logging.SetOutput(f)
	}

	raw := config.Default()
	if path, ok := config.Resolve(*configPath); ok {
		loaded, err := config.Load(path, raw)
		if err != nil {
			return err
		}
		raw = loaded
		logging.Debug.Printf("loaded config %s", path)
	}

	// Explicitly set flags override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			raw.Root = *dir
		case "ignore":
			raw.Ignore = *ignore
		case "reclaimable":
			raw.Reclaimable = *reclaimable
		case "hidden":
			raw.Hidden = *hidden
		case "top":
			raw.TopN = *topN
		case "threshold":
			raw.LargeThreshold = *threshold
		}
	})
	if flag.NArg() > 0 {
		raw.Root = flag.Arg(0)
	}
	if *home {
		h, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		raw.Root = h
	}

	settings, err := config.New(raw)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctrl := core.NewController()

	if *plain {
		snap, err := ctrl.RunScan(ctx, settings)
		if err != nil {
			return err
		}
		ctrl.Wait()
		v := snap.View()
		if err := report.Write(os.Stdout, v, *limit); err != nil {
			return err
		}
		return v.Err
	}

	p := tea.NewProgram(
		ui.NewApp(ctrl, settings),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	ctrl.Stop()
	return err
}
