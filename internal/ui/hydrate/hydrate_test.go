package hydrate

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

func TestEveryFamilyHasAModule(t *testing.T) {
	assets := FS()
	for _, f := range Families {
		data, err := fs.ReadFile(assets, string(f)+".js")
		require.NoError(t, err, "missing module for %s", f)
		if f != Core {
			assert.Contains(t, string(data), "HPH.register('"+string(f)+"'")
		}
	}
}

func TestCollector_OrdersFamiliesWithCoreFirst(t *testing.T) {
	ctx, c := WithCollector(context.Background())
	Require(ctx, Map, Modal, Modal, Cards)

	assert.Equal(t, []Family{Core, Modal, Cards, Map}, c.Families())
}

func TestCollector_EmptyAndMissing(t *testing.T) {
	_, c := WithCollector(context.Background())
	assert.Nil(t, c.Families())

	// no collector: Require is a no-op
	Require(context.Background(), Modal)
	assert.Nil(t, FromContext(context.Background()))
}

func TestScripts_EmitsCollectedModules(t *testing.T) {
	ctx, _ := WithCollector(context.Background())
	Require(ctx, Chart)

	out, err := html.Render(ctx, Scripts("/assets/hydrate/"))
	require.NoError(t, err)

	core := strings.Index(out, `/assets/hydrate/core.js`)
	vendor := strings.Index(out, ChartScript)
	module := strings.Index(out, `/assets/hydrate/chart.js`)
	assert.True(t, core >= 0 && vendor > core && module > vendor, out)
}

func TestScripts_NothingRequired(t *testing.T) {
	ctx, _ := WithCollector(context.Background())
	out, err := html.Render(ctx, Scripts("/assets/hydrate"))
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = html.Render(context.Background(), Scripts("/assets/hydrate"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestScriptsFor(t *testing.T) {
	out, err := html.Render(context.Background(), ScriptsFor("/js", Map))
	require.NoError(t, err)
	assert.Contains(t, out, MapboxStylesheet)
	assert.Contains(t, out, `<script src="/js/core.js" defer></script>`)
	assert.Contains(t, out, `<script src="/js/map.js" defer></script>`)
}

func TestContextScript_EscapesPayload(t *testing.T) {
	out, err := html.Render(context.Background(), ContextScript(Context{
		AjaxURL:           "/api",
		MapboxAccessToken: "pk.</script><script>alert(1)",
	}))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<script>window.hphContext = {"))
	assert.Equal(t, 1, strings.Count(out, "</script>"))
	assert.Contains(t, out, `"ajaxUrl":"/api"`)
}

func TestMark(t *testing.T) {
	attrs := Mark(html.NewAttrs(), Modal, map[string]bool{"static": true})
	assert.Equal(t, ` data-hph-component="modal" data-hph-options="{&#34;static&#34;:true}"`, attrs.Render())
}
