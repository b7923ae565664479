// Package simfiles resolves a simulation case on disk: the deck file
// itself plus optional sibling inputs such as zone-mapping files.
// Loading is lazy and cached per instance.
package simfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dd0wney/gruptree/pkg/deck"
	"github.com/dd0wney/gruptree/pkg/logging"
)

// DefaultZoneMapFile is looked up next to the deck when no zone-map
// file is named explicitly.
const DefaultZoneMapFile = "zones.lyr"

// SimFiles holds one simulation case.
type SimFiles struct {
	base string
	deck *deck.Deck
	log  logging.Logger
}

// New creates a case from a deck path. A trailing ".DATA" suffix (or a
// trailing dot) is stripped so both "CASE" and "CASE.DATA" resolve to
// the same case.
func New(path string, log logging.Logger) *SimFiles {
	if log == nil {
		log = logging.Nop()
	}
	base := rreplace(".DATA", "", path)
	base = rreplace(".", "", base)
	return &SimFiles{base: base, log: log}
}

// Base returns the case path without the .DATA suffix.
func (s *SimFiles) Base() string {
	return s.base
}

// DataFile returns the deck file path: base+".DATA" when that file
// exists, otherwise the base path itself.
func (s *SimFiles) DataFile() string {
	withSuffix := s.base + ".DATA"
	if _, err := os.Stat(withSuffix); err == nil {
		return withSuffix
	}
	return s.base
}

// Dir returns the directory holding the deck file.
func (s *SimFiles) Dir() string {
	abs, err := filepath.Abs(s.base)
	if err != nil {
		return filepath.Dir(s.base)
	}
	return filepath.Dir(abs)
}

// CachePath returns where cached extraction results for this case live.
func (s *SimFiles) CachePath() string {
	return s.base + ".gruptree"
}

// Deck parses the deck file, caching the result for later calls.
func (s *SimFiles) Deck() (*deck.Deck, error) {
	if s.deck != nil {
		return s.deck, nil
	}
	path := s.DataFile()
	s.log.Info("parsing deck file", logging.String("path", path))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening deck: %w", err)
	}
	defer f.Close()
	d, err := deck.Read(f)
	if err != nil {
		return nil, err
	}
	s.deck = d
	return d, nil
}

// ZoneMap loads a layer-to-zone mapping from a file of lines like
//
//	'ZoneA' 1-4
//	'ZoneB' 5-10
//
// Relative filenames resolve against the deck directory. An empty
// filename means the default zones.lyr, whose absence is not worth a
// warning; a named file that is missing warns and yields an empty map.
func (s *SimFiles) ZoneMap(filename string) (map[int]string, error) {
	defaulted := filename == ""
	if defaulted {
		filename = DefaultZoneMapFile
	}
	if !filepath.IsAbs(filename) {
		filename = filepath.Join(s.Dir(), filename)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			if !defaulted {
				s.log.Warn("zone-map file not found, ignoring", logging.String("path", filename))
			}
			return map[int]string{}, nil
		}
		return nil, fmt.Errorf("reading zone map: %w", err)
	}

	zonemap := make(map[int]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") || strings.HasPrefix(line, "#") {
			continue
		}
		name, interval, err := splitZoneLine(line)
		if err != nil {
			return nil, fmt.Errorf("zone map %s: %w", filename, err)
		}
		var k0, k1 int
		if _, err := fmt.Sscanf(interval, "%d-%d", &k0, &k1); err != nil {
			return nil, fmt.Errorf("zone map %s: bad interval %q", filename, interval)
		}
		for k := k0; k <= k1; k++ {
			zonemap[k] = name
		}
	}
	return zonemap, nil
}

// splitZoneLine splits a zone-map line into name and interval; the name
// may be single-quoted to allow spaces.
func splitZoneLine(line string) (string, string, error) {
	if strings.HasPrefix(line, "'") {
		end := strings.IndexByte(line[1:], '\'')
		if end < 0 {
			return "", "", fmt.Errorf("unterminated quote in %q", line)
		}
		name := line[1 : 1+end]
		interval := strings.TrimSpace(line[end+2:])
		if interval == "" {
			return "", "", fmt.Errorf("missing interval in %q", line)
		}
		return name, interval, nil
	}
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return "", "", fmt.Errorf("want name and interval, got %q", line)
	}
	return fields[0], fields[1], nil
}

// rreplace replaces pat with sub only at the end of the string.
func rreplace(pat, sub, s string) string {
	if strings.HasSuffix(s, pat) {
		return s[:len(s)-len(pat)] + sub
	}
	return s
}
