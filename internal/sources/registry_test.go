package sources_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deusflow/newsagent/internal/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(entries []sources.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestResolveWithoutCity(t *testing.T) {
	reg := sources.Default()

	res := reg.Resolve("  ")
	require.Equal(t, sources.CoverageGeneral, res.Coverage)
	require.Len(t, res.Sources, 24)
	require.Equal(t, "times_of_india", res.Sources[0].ID)
	require.Equal(t, sources.CategoryNational, res.Sources[0].Category)
	require.Equal(t, "usa_today", res.Sources[len(res.Sources)-1].ID)
}

func TestResolveCuratedCity(t *testing.T) {
	reg := sources.Default()

	res := reg.Resolve("Kanpur")
	require.Equal(t, sources.CoverageLocal, res.Coverage)
	require.Equal(t, "kanpur", res.City)

	got := ids(res.Sources)
	require.Len(t, got, 24+9+1)
	require.Equal(t, "kanpur_local_0", got[24])
	require.Equal(t, "kanpur_local_8", got[32])
	require.Equal(t, "kanpur_specific", got[33])
	require.Equal(t, sources.CategorySpecific, res.Sources[33].Category)
}

func TestResolveCuratedCityWithoutSpecificFeed(t *testing.T) {
	res := sources.Default().Resolve("hyderabad")
	require.Equal(t, sources.CoverageLocal, res.Coverage)
	require.Len(t, res.Sources, 24+4)
	for _, e := range res.Sources {
		assert.NotEqual(t, sources.CategorySpecific, e.Category)
	}
}

func TestResolveUncuratedCity(t *testing.T) {
	reg := sources.Default()

	res := reg.Resolve("Santa   Clara")
	require.Equal(t, sources.CoverageFallback, res.Coverage)
	require.Equal(t, "santa clara", res.City)
	require.Equal(t, ids(reg.Resolve("").Sources), ids(res.Sources))
}

func TestResolveReturnsCopies(t *testing.T) {
	reg := sources.Default()
	first := reg.Resolve("")
	first.Sources[0].URL = "http://mutated"

	second := reg.Resolve("")
	require.NotEqual(t, "http://mutated", second.Sources[0].URL)
}

func TestKeywords(t *testing.T) {
	reg := sources.Default()

	require.Equal(t, []string{"kanpur", "kanpur nagar", "uttar pradesh", "up"}, reg.Keywords("KANPUR"))
	require.Equal(t, []string{"springfield"}, reg.Keywords(" Springfield "))
	require.Nil(t, reg.Keywords(""))
}

func TestIsCurated(t *testing.T) {
	reg := sources.Default()
	require.True(t, reg.IsCurated("Mumbai"))
	require.False(t, reg.IsCurated("santa clara"))
	require.False(t, reg.IsCurated("lucknow"))
}

func TestRegionKeywords(t *testing.T) {
	reg := sources.Default()

	require.Equal(t, []string{"california", "us", "usa", "united states", "america"}, reg.RegionKeywords("santa clara"))
	require.Equal(t, []string{"london", "england", "uk", "britain", "united kingdom"}, reg.RegionKeywords("Greater London"))
	require.Nil(t, reg.RegionKeywords("springfield"))
}

func TestNewRejectsDuplicatesAndEmptyURLs(t *testing.T) {
	_, err := sources.New(sources.Definition{
		National: []sources.FeedDef{{ID: "a", URL: "http://a"}, {ID: "a", URL: "http://b"}},
	})
	require.Error(t, err)

	_, err = sources.New(sources.Definition{
		Global: []sources.FeedDef{{ID: "a", URL: " "}},
	})
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	data := `
national:
  - id: local_paper
    url: http://paper.example/rss
global:
  - id: wire
    url: http://wire.example/rss
local:
  Springfield:
    - http://springfield.example/rss
lexicon:
  springfield: [Springfield, Illinois, Illinois]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	reg, err := sources.Load(path)
	require.NoError(t, err)

	res := reg.Resolve("springfield")
	require.Equal(t, sources.CoverageLocal, res.Coverage)
	require.Equal(t, []string{"local_paper", "wire", "springfield_local_0"}, ids(res.Sources))
	require.Equal(t, []string{"springfield", "illinois"}, reg.Keywords("springfield"))
	require.Equal(t, 3, reg.Size())
}

func TestLoadFileRequiresBaseFeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lexicon: {}\n"), 0o644))

	_, err := sources.LoadFile(path)
	require.Error(t, err)
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	reg, err := sources.Load("")
	require.NoError(t, err)
	require.True(t, reg.IsCurated("delhi"))
}
