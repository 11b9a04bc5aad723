package extractor

import (
	"context"

	"github.com/rs/zerolog"
)

// RedirectResolver follows a short link to its destination URL.
type RedirectResolver interface {
	Resolve(ctx context.Context, rawURL string) (string, error)
}

// Preferences is the slice of a chat's configuration that resolution
// depends on.
type Preferences struct {
	DisabledExtractors []string
}

// Disabled reports whether the chat opted out of the given extractor.
func (p Preferences) Disabled(id string) bool {
	for _, d := range p.DisabledExtractors {
		if d == id {
			return true
		}
	}

	return false
}

// Outcome is the result of resolving one URL against the registry and a
// chat's preferences.
type Outcome struct {
	Proceed     bool
	ExtractorID string

	// URL is the address the download should act on: the input URL, or the
	// redirect destination for short-link descriptors.
	URL string
}

// Skip is the zero Outcome.
var Skip = Outcome{}

// Engine decides whether a URL should be dispatched for download.
type Engine struct {
	redirects RedirectResolver
	logger    *zerolog.Logger
}

func NewEngine(redirects RedirectResolver, logger *zerolog.Logger) *Engine {
	return &Engine{redirects: redirects, logger: logger}
}

// Resolve matches the URL against the registry, applies the chat's
// disabled set, and follows redirects for short-link descriptors.
//
// The redirect destination is used verbatim and is not re-matched: the
// short link's own id stays the extractor of record so it remains
// independently toggle-able. A failed redirect degrades to the original
// URL rather than aborting; if the download cannot handle the unresolved
// link it fails with its own error downstream.
func (e *Engine) Resolve(ctx context.Context, rawURL string, prefs Preferences) Outcome {
	desc := Match(rawURL)
	if desc == nil {
		return Skip
	}

	if prefs.Disabled(desc.ID) {
		return Skip
	}

	finalURL := rawURL

	if desc.RequiresRedirect {
		resolved, err := e.redirects.Resolve(ctx, rawURL)
		if err != nil {
			e.logger.Warn().Err(err).Str("url", rawURL).Str("extractor", desc.ID).Msg("redirect resolution failed, using original URL")
		} else {
			finalURL = resolved
		}
	}

	return Outcome{Proceed: true, ExtractorID: desc.ID, URL: finalURL}
}
