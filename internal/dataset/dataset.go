// Package dataset loads the rule, lookup, mapping and catalog files that
// note generation runs against.
package dataset

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/depotnotes/internal/catalog"
	"github.com/alexanderramin/depotnotes/internal/rules"
	"golang.org/x/sync/errgroup"
)

// File stems within a data directory.
const (
	RulesStem    = "rules"
	LookupStem   = "notes_lookup"
	MappingsStem = "mappings"
	SectionsFile = "sections_source.txt"
)

var structuredExts = []string{".json", ".yaml", ".yml"}

//go:embed defaults
var defaults embed.FS

// ErrMissing is returned when a required data file is absent.
var ErrMissing = errors.New("missing data file")

// Default returns the bundle compiled into the binary.
func Default() (*rules.Bundle, error) {
	sub, err := fs.Sub(defaults, "defaults")
	if err != nil {
		return nil, fmt.Errorf("opening embedded dataset: %w", err)
	}
	return LoadFS(context.Background(), sub)
}

// Load reads a bundle from a directory on disk.
func Load(ctx context.Context, dir string) (*rules.Bundle, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening data dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening data dir: %s is not a directory", dir)
	}
	return LoadFS(ctx, os.DirFS(dir))
}

// LoadFS reads the four data files concurrently. Rules and the notes lookup
// are required; mappings and the section catalog default to empty.
//
// A file that does not parse fails the load. A single group inside a file
// that does not decode is dropped and recorded in Bundle.Problems.
func LoadFS(ctx context.Context, fsys fs.FS) (*rules.Bundle, error) {
	var (
		rs           rules.RuleSet
		lk           rules.Lookup
		maps         rules.Mappings
		cat          *catalog.Catalog
		rsDoc, lkDoc *document
		mapsDoc      *document
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rsDoc, err = decodeStem(ctx, fsys, RulesStem, true)
		rs = decodeRuleSet(rsDoc)
		return err
	})
	g.Go(func() (err error) {
		lkDoc, err = decodeStem(ctx, fsys, LookupStem, true)
		lk = decodeLookup(lkDoc)
		return err
	})
	g.Go(func() (err error) {
		mapsDoc, err = decodeStem(ctx, fsys, MappingsStem, false)
		maps = decodeMappings(mapsDoc)
		return err
	})
	g.Go(func() error {
		data, err := readFile(ctx, fsys, SectionsFile)
		if errors.Is(err, fs.ErrNotExist) {
			cat = catalog.New(nil)
			return nil
		}
		if err != nil {
			return err
		}
		cat, err = catalog.Parse(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("%s: %w", SectionsFile, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var problems []error
	for _, d := range []*document{rsDoc, lkDoc, mapsDoc} {
		problems = append(problems, d.dropped()...)
	}
	return &rules.Bundle{Rules: &rs, Lookup: &lk, Mappings: &maps, Catalog: cat, Problems: problems}, nil
}

// Paths lists the data files present in dir, for watching.
func Paths(dir string) []string {
	fsys := os.DirFS(dir)
	var out []string
	for _, stem := range []string{RulesStem, LookupStem, MappingsStem} {
		if name, ok := findStem(fsys, stem); ok {
			out = append(out, filepath.Join(dir, name))
		}
	}
	if _, err := fs.Stat(fsys, SectionsFile); err == nil {
		out = append(out, filepath.Join(dir, SectionsFile))
	}
	return out
}

// IsDataFile reports whether a base file name is one the loader reads.
func IsDataFile(name string) bool {
	if name == SectionsFile {
		return true
	}
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem != RulesStem && stem != LookupStem && stem != MappingsStem {
		return false
	}
	for _, e := range structuredExts {
		if e == ext {
			return true
		}
	}
	return false
}

func decodeStem(ctx context.Context, fsys fs.FS, stem string, required bool) (*document, error) {
	name, ok := findStem(fsys, stem)
	if !ok {
		if required {
			return nil, fmt.Errorf("%w: %s.{json,yaml,yml}", ErrMissing, stem)
		}
		return nil, nil
	}
	data, err := readFile(ctx, fsys, name)
	if err != nil {
		return nil, err
	}
	return parseDocument(name, data)
}

func findStem(fsys fs.FS, stem string) (string, bool) {
	for _, ext := range structuredExts {
		name := stem + ext
		if _, err := fs.Stat(fsys, name); err == nil {
			return name, true
		}
	}
	return "", false
}

func readFile(ctx context.Context, fsys fs.FS, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

func decodeRuleSet(d *document) rules.RuleSet {
	var rs rules.RuleSet
	group(d, "boiler_transitions", &rs.BoilerTransitions)
	group(d, "cylinder_transitions", &rs.CylinderTransitions)
	group(d, "flue_transitions", &rs.FlueTransitions)
	group(d, "flue_overrides", &rs.FlueOverrides)
	group(d, "context_flags", &rs.ContextFlags)
	group(d, "essentialiser", &rs.Essentialiser)
	group(d, "section_aliases", &rs.SectionAliases)

	// Sections are kept or dropped one by one.
	if sd := d.sub("sections"); sd != nil {
		rs.Sections = make(map[string][]rules.SectionRule)
		for _, name := range sd.keys() {
			var list []rules.SectionRule
			if group(sd, name, &list) {
				rs.Sections[name] = list
			}
		}
	}
	return rs
}

func decodeLookup(d *document) rules.Lookup {
	var lk rules.Lookup
	group(d, "notes", &lk.Notes)
	group(d, "boiler_notes", &lk.BoilerNotes)
	group(d, "flue_notes", &lk.FlueNotes)
	return lk
}

func decodeMappings(d *document) rules.Mappings {
	var m rules.Mappings
	group(d, "boiler_mappings", &m.Boiler)
	group(d, "flue_mappings", &m.Flue)
	return m
}
