// Command gruptree extracts the time-dependent well/group hierarchy
// from a simulation deck and writes it as CSV, a pretty-printed forest,
// or rows in a Postgres table.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dd0wney/gruptree/pkg/config"
	"github.com/dd0wney/gruptree/pkg/gruptree"
	"github.com/dd0wney/gruptree/pkg/logging"
	"github.com/dd0wney/gruptree/pkg/metrics"
	"github.com/dd0wney/gruptree/pkg/simfiles"
	"github.com/dd0wney/gruptree/pkg/sink"
)

var dateHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#00FFFF"))

func main() {
	var (
		output      = flag.String("o", "", "Name of output CSV file, \"-\" for stdout. No CSV dump if empty")
		prettyPrint = flag.Bool("p", false, "Pretty-print the tree structure per date")
		dateSpec    = flag.String("date", "", "Limit pretty-printing to one snapshot date: \"first\", \"last\" or YYYY-MM-DD")
		startDate   = flag.String("startdate", "", "First schedule date if not defined in input file, YYYY-MM-DD")
		_           = flag.Bool("v", false, "Be verbose")
		configFile  = flag.String("config", "", "YAML configuration file")
		databaseURL = flag.String("db", "", "Postgres URL to load the table into")
		useCache    = flag.Bool("cache", false, "Reuse cached results when the deck is unchanged")
		metricsFile = flag.String("metrics", "", "Write prometheus metrics to this file after the run")
		zoneMapFile = flag.String("zonemap", "", "Zone-mapping file, relative to the deck")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] DATAFILE\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	dataFile := flag.Arg(0)

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			cfg.Output = *output
		case "p":
			cfg.PrettyPrint = *prettyPrint
		case "date":
			cfg.Date = *dateSpec
		case "startdate":
			cfg.StartDate = *startDate
		case "db":
			cfg.DatabaseURL = *databaseURL
		case "cache":
			cfg.Cache = *useCache
		case "zonemap":
			cfg.ZoneMapFile = *zoneMapFile
		case "v":
			cfg.LogLevel = "info"
		}
	})
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	log := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel))
	reg := metrics.NewRegistry()

	if err := run(dataFile, cfg, log, reg); err != nil {
		fatal(err)
	}

	if *metricsFile != "" {
		if err := prometheus.WriteToTextfile(*metricsFile, reg.Gatherer()); err != nil {
			fatal(fmt.Errorf("writing metrics: %w", err))
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func run(dataFile string, cfg *config.Config, log logging.Logger, reg *metrics.Registry) error {
	files := simfiles.New(dataFile, log)

	if cfg.ZoneMapFile != "" {
		zonemap, err := files.ZoneMap(cfg.ZoneMapFile)
		if err != nil {
			return err
		}
		log.Info("zone map loaded", logging.Int("layers", len(zonemap)))
	}

	table, err := extract(files, cfg, log, reg)
	if err != nil {
		return err
	}

	if cfg.PrettyPrint {
		dates, err := selectDates(table, cfg.Date)
		if err != nil {
			return err
		}
		for _, date := range dates {
			fmt.Println(dateHeaderStyle.Render("Date: " + date.Format("2006-01-02")))
			for _, root := range table.ForestAt(date) {
				fmt.Print(root.Render())
			}
			fmt.Println()
		}
	}

	if cfg.Output != "" {
		if err := sink.WriteCSV(table, cfg.Output); err != nil {
			return err
		}
		if cfg.Output != "-" {
			fmt.Println("Wrote to " + cfg.Output)
		}
	}

	if cfg.DatabaseURL != "" {
		ctx := context.Background()
		store, err := sink.NewPGStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()
		deckName := filepath.Base(files.Base())
		if err := store.InsertTable(ctx, deckName, table); err != nil {
			return err
		}
		log.Info("table loaded into database",
			logging.String("deck", deckName),
			logging.Int("rows", len(table.Rows)))
	}
	return nil
}

func extract(files *simfiles.SimFiles, cfg *config.Config, log logging.Logger, reg *metrics.Registry) (*gruptree.Table, error) {
	modTime := deckModTime(files)
	if cfg.Cache && !modTime.IsZero() {
		table, ok, err := sink.LoadCache(files.CachePath(), modTime)
		if err != nil {
			log.Warn("ignoring unreadable cache", logging.Err(err))
		} else if ok {
			log.Info("using cached extraction", logging.String("path", files.CachePath()))
			return table, nil
		}
	}

	d, err := files.Deck()
	if err != nil {
		return nil, err
	}
	startDate, err := cfg.StartDateTime()
	if err != nil {
		return nil, err
	}
	table, err := gruptree.Extract(d, gruptree.Options{
		StartDate:    startDate,
		SkipWelspecs: cfg.SkipWelspecs,
		Logger:       log,
		Metrics:      reg,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Cache && !modTime.IsZero() {
		if err := sink.SaveCache(files.CachePath(), modTime, table); err != nil {
			log.Warn("could not write cache", logging.Err(err))
		}
	}
	return table, nil
}

// selectDates resolves the -date argument against the table: empty
// means every snapshot date, "first" and "last" dispatch to the table's
// endpoints, anything else must be a YYYY-MM-DD snapshot date.
func selectDates(t *gruptree.Table, spec string) ([]time.Time, error) {
	switch spec {
	case "":
		return t.Dates(), nil
	case "first":
		if date, ok := t.FirstDate(); ok {
			return []time.Time{date}, nil
		}
		return nil, nil
	case "last":
		if date, ok := t.LastDate(); ok {
			return []time.Time{date}, nil
		}
		return nil, nil
	}
	date, err := time.ParseInLocation("2006-01-02", spec, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("bad date %q: want \"first\", \"last\" or YYYY-MM-DD", spec)
	}
	return []time.Time{date}, nil
}

// deckModTime returns the deck file's modification time, or the zero
// time when the file cannot be stat'ed (caching is skipped then).
func deckModTime(files *simfiles.SimFiles) time.Time {
	info, err := os.Stat(files.DataFile())
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "gruptree: %v\n", err)
	os.Exit(1)
}
