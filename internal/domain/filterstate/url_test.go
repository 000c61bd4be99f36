package filterstate

import (
	"net/url"
	"testing"

	"github.com/outrun/memeverse/internal/domain/catalog"
	"github.com/stretchr/testify/require"
)

func TestParseURLParams(t *testing.T) {
	values, err := url.ParseQuery("chain=base&stage=locked&mode=flash&sort=stakingAPY&direction=ASC&search=pepe&page=3&listed=1")
	require.NoError(t, err)

	p := ParseURLParams(values)
	require.Equal(t, URLParams{
		Chain:     "base",
		Stage:     "locked",
		Mode:      "flash",
		Sort:      "stakingAPY",
		Direction: "asc",
		Search:    "pepe",
		Page:      3,
		Listed:    true,
	}, p)
}

func TestParseURLParams_Malformed(t *testing.T) {
	values, err := url.ParseQuery("page=two&listed=maybe")
	require.NoError(t, err)

	p := ParseURLParams(values)
	require.Zero(t, p.Page)
	require.False(t, p.Listed)
	require.Equal(t, Default(), normalize(p.State(), discardLogger()))
}

func TestEncodeURL_OmitsDefaults(t *testing.T) {
	require.Empty(t, EncodeURL(Default()))

	s := Default()
	s.Stage = "unlocked"
	s.SortOption = catalog.SortVolume
	s.CurrentPage = 2
	require.Equal(t, "page=2&sort=volume&stage=unlocked", EncodeURL(s).Encode())
}

func TestURLRoundTrip(t *testing.T) {
	s := Default()
	s.Chain = "base"
	s.Stage = "locked"
	s.Search = "frog"
	s.SortOption = catalog.SortTreasuryValue
	s.SortDirection = catalog.Asc
	s.CurrentPage = 4

	back := normalize(ParseURLParams(EncodeURL(s)).State(), discardLogger())
	require.Equal(t, s, back)
}
