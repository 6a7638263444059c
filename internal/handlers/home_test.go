package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cultr.xyz/cultr-web/internal/content"
	"cultr.xyz/cultr-web/internal/landing"
	"cultr.xyz/cultr-web/internal/market"
	"cultr.xyz/cultr-web/internal/seo"
)

func TestBuildHomeData(t *testing.T) {
	t.Parallel()

	site, err := content.Default()
	require.NoError(t, err)
	st := landing.State{Active: landing.SectionArt, MenuOpen: true}

	vm, err := BuildHomeData(st, site, market.Quote{Symbol: "CULTR"}, seo.ForSite(site, ""), Analytics{})
	require.NoError(t, err)
	require.Equal(t, "/live?menu=1&section=art", vm.LiveURL)
	require.Len(t, vm.JSONLD, 3)
	require.True(t, strings.Contains(string(vm.Body), `id="site-header"`))
	require.False(t, vm.Analytics.Enabled())
}
