package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeRedirects struct {
	dest string
	err  error

	calls []string
}

func (f *fakeRedirects) Resolve(_ context.Context, rawURL string) (string, error) {
	f.calls = append(f.calls, rawURL)

	if f.err != nil {
		return "", f.err
	}

	return f.dest, nil
}

func newTestEngine(redirects RedirectResolver) *Engine {
	logger := zerolog.Nop()

	return NewEngine(redirects, &logger)
}

func TestResolveNoMatch(t *testing.T) {
	redirects := &fakeRedirects{}
	engine := newTestEngine(redirects)

	got := engine.Resolve(context.Background(), "https://example.com/foo", Preferences{})

	assert.Equal(t, Skip, got)
	assert.Empty(t, redirects.calls)
}

func TestResolveDisabledExtractor(t *testing.T) {
	engine := newTestEngine(&fakeRedirects{})

	prefs := Preferences{DisabledExtractors: []string{"youtube"}}
	got := engine.Resolve(context.Background(), "https://www.youtube.com/watch?v=abc", prefs)

	assert.Equal(t, Skip, got)
}

func TestResolveDisabledShortLinkSkipsBeforeRedirect(t *testing.T) {
	redirects := &fakeRedirects{dest: "https://www.tiktok.com/@user/video/1"}
	engine := newTestEngine(redirects)

	prefs := Preferences{DisabledExtractors: []string{"tiktok_vm"}}
	got := engine.Resolve(context.Background(), "https://vm.tiktok.com/ZMabc123/", prefs)

	assert.Equal(t, Skip, got)
	assert.Empty(t, redirects.calls, "redirect resolver must not be called for disabled extractors")
}

func TestResolvePlainDescriptorKeepsURL(t *testing.T) {
	redirects := &fakeRedirects{}
	engine := newTestEngine(redirects)

	got := engine.Resolve(context.Background(), "https://soundcloud.com/artist/track", Preferences{})

	assert.Equal(t, Outcome{Proceed: true, ExtractorID: "soundcloud", URL: "https://soundcloud.com/artist/track"}, got)
	assert.Empty(t, redirects.calls)
}

func TestResolveShortLinkUsesDestinationVerbatim(t *testing.T) {
	redirects := &fakeRedirects{dest: "https://www.tiktok.com/@user/video/12345"}
	engine := newTestEngine(redirects)

	got := engine.Resolve(context.Background(), "https://vm.tiktok.com/ZMabc123/", Preferences{})

	// The destination is not re-matched: the short link's id is kept.
	assert.Equal(t, Outcome{Proceed: true, ExtractorID: "tiktok_vm", URL: "https://www.tiktok.com/@user/video/12345"}, got)
	assert.Equal(t, []string{"https://vm.tiktok.com/ZMabc123/"}, redirects.calls)
}

func TestResolveRedirectFailureFallsBackToOriginalURL(t *testing.T) {
	redirects := &fakeRedirects{err: errors.New("timeout")}
	engine := newTestEngine(redirects)

	got := engine.Resolve(context.Background(), "https://vm.tiktok.com/ZMabc123/", Preferences{})

	assert.Equal(t, Outcome{Proceed: true, ExtractorID: "tiktok_vm", URL: "https://vm.tiktok.com/ZMabc123/"}, got)
}

func TestResolveStaleDisabledIDIsHarmless(t *testing.T) {
	engine := newTestEngine(&fakeRedirects{})

	prefs := Preferences{DisabledExtractors: []string{"vimeo_legacy"}}
	got := engine.Resolve(context.Background(), "https://9gag.com/gag/abc", prefs)

	assert.Equal(t, Outcome{Proceed: true, ExtractorID: "ninegag", URL: "https://9gag.com/gag/abc"}, got)
}
