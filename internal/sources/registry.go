// Package sources holds the static feed registry and the location lexicon.
//
// A Registry is built once at startup and never modified afterwards, so it is
// safe to share between concurrent requests.
package sources

import (
	"fmt"
	"strings"
)

// Category groups feeds by coverage.
type Category string

const (
	CategoryNational Category = "national"
	CategoryGlobal   Category = "global"
	CategoryLocal    Category = "local"
	CategorySpecific Category = "location-specific"
)

// Entry is one feed in the registry.
type Entry struct {
	ID       string
	URL      string
	Category Category
	City     string // set for local and location-specific entries
}

// Coverage tells the pipeline how a location was resolved.
type Coverage int

const (
	// CoverageGeneral means no city was requested.
	CoverageGeneral Coverage = iota
	// CoverageLocal means the city has a curated local bundle.
	CoverageLocal
	// CoverageFallback means the city is uncurated and needs lenient matching.
	CoverageFallback
)

func (c Coverage) String() string {
	switch c {
	case CoverageLocal:
		return "local"
	case CoverageFallback:
		return "fallback"
	default:
		return "general"
	}
}

// Resolution is the outcome of Registry.Resolve.
type Resolution struct {
	City     string
	Coverage Coverage
	Sources  []Entry
}

// Region maps cities to country/region keywords for the uncurated fallback.
// A city matches when it contains any of Match.
type Region struct {
	Match    []string `yaml:"match"`
	Keywords []string `yaml:"keywords"`
}

// Registry is the immutable source and lexicon table.
type Registry struct {
	national []Entry
	global   []Entry
	local    map[string][]Entry
	specific map[string]Entry
	lexicon  map[string][]string
	regions  []Region
}

// Definition is the serialisable form of a Registry.
type Definition struct {
	National []FeedDef           `yaml:"national"`
	Global   []FeedDef           `yaml:"global"`
	Local    map[string][]string `yaml:"local"`
	Specific map[string]string   `yaml:"specific"`
	Lexicon  map[string][]string `yaml:"lexicon"`
	Regions  []Region            `yaml:"regions"`
}

// FeedDef is a named feed URL.
type FeedDef struct {
	ID  string `yaml:"id"`
	URL string `yaml:"url"`
}

// NormalizeCity lower-cases a city name and collapses whitespace.
func NormalizeCity(city string) string {
	return strings.Join(strings.Fields(strings.ToLower(city)), " ")
}

// New builds a Registry from a definition, rejecting duplicate ids and empty URLs.
func New(def Definition) (*Registry, error) {
	r := &Registry{
		local:    make(map[string][]Entry, len(def.Local)),
		specific: make(map[string]Entry, len(def.Specific)),
		lexicon:  make(map[string][]string, len(def.Lexicon)),
	}
	seen := make(map[string]struct{})

	add := func(e Entry) error {
		if strings.TrimSpace(e.URL) == "" {
			return fmt.Errorf("source %q has no url", e.ID)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("duplicate source id %q", e.ID)
		}
		seen[e.ID] = struct{}{}
		return nil
	}

	for _, f := range def.National {
		e := Entry{ID: f.ID, URL: f.URL, Category: CategoryNational}
		if err := add(e); err != nil {
			return nil, err
		}
		r.national = append(r.national, e)
	}
	for _, f := range def.Global {
		e := Entry{ID: f.ID, URL: f.URL, Category: CategoryGlobal}
		if err := add(e); err != nil {
			return nil, err
		}
		r.global = append(r.global, e)
	}
	for city, urls := range def.Local {
		key := NormalizeCity(city)
		bundle := make([]Entry, 0, len(urls))
		for i, u := range urls {
			e := Entry{
				ID:       fmt.Sprintf("%s_local_%d", idPart(key), i),
				URL:      u,
				Category: CategoryLocal,
				City:     key,
			}
			if err := add(e); err != nil {
				return nil, err
			}
			bundle = append(bundle, e)
		}
		r.local[key] = bundle
	}
	for city, u := range def.Specific {
		key := NormalizeCity(city)
		e := Entry{
			ID:       idPart(key) + "_specific",
			URL:      u,
			Category: CategorySpecific,
			City:     key,
		}
		if err := add(e); err != nil {
			return nil, err
		}
		r.specific[key] = e
	}
	for city, words := range def.Lexicon {
		r.lexicon[NormalizeCity(city)] = orderedSet(words)
	}
	for _, reg := range def.Regions {
		r.regions = append(r.regions, Region{
			Match:    orderedSet(reg.Match),
			Keywords: orderedSet(reg.Keywords),
		})
	}

	return r, nil
}

// Resolve picks the feed set for a city. A blank city resolves to the
// national and global feeds, as does an uncurated one. A curated city gets
// the national and global feeds followed by its local bundle and, when
// registered, its location-specific feed; the bundle alone is not returned.
func (r *Registry) Resolve(city string) Resolution {
	key := NormalizeCity(city)
	base := make([]Entry, 0, len(r.national)+len(r.global))
	base = append(base, r.national...)
	base = append(base, r.global...)

	if key == "" {
		return Resolution{Coverage: CoverageGeneral, Sources: base}
	}

	bundle, ok := r.local[key]
	if !ok {
		return Resolution{City: key, Coverage: CoverageFallback, Sources: base}
	}

	out := append(base, bundle...)
	if spec, ok := r.specific[key]; ok {
		out = append(out, spec)
	}
	return Resolution{City: key, Coverage: CoverageLocal, Sources: out}
}

// IsCurated reports whether the city has a dedicated local bundle.
func (r *Registry) IsCurated(city string) bool {
	_, ok := r.local[NormalizeCity(city)]
	return ok
}

// Keywords returns the lexicon entry for a city, or the city itself when absent.
func (r *Registry) Keywords(city string) []string {
	key := NormalizeCity(city)
	if key == "" {
		return nil
	}
	if words, ok := r.lexicon[key]; ok {
		return append([]string(nil), words...)
	}
	return []string{key}
}

// RegionKeywords returns the fallback keywords of the first region whose
// match list hits the city, or nil.
func (r *Registry) RegionKeywords(city string) []string {
	key := NormalizeCity(city)
	if key == "" {
		return nil
	}
	for _, reg := range r.regions {
		for _, m := range reg.Match {
			if strings.Contains(key, m) {
				return append([]string(nil), reg.Keywords...)
			}
		}
	}
	return nil
}

// Cities lists the cities with curated bundles.
func (r *Registry) Cities() []string {
	out := make([]string, 0, len(r.local))
	for city := range r.local {
		out = append(out, city)
	}
	return out
}

// Size returns the total number of feeds in the registry.
func (r *Registry) Size() int {
	n := len(r.national) + len(r.global) + len(r.specific)
	for _, bundle := range r.local {
		n += len(bundle)
	}
	return n
}

func idPart(city string) string {
	return strings.ReplaceAll(city, " ", "_")
}

// orderedSet lower-cases and trims words, dropping blanks and repeats.
func orderedSet(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
