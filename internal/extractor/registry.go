// Package extractor holds the catalog of supported media sources and the
// logic that decides, for a URL and a chat's preferences, whether and how
// it should be processed.
package extractor

import "regexp"

// Descriptor describes one recognized media source. The table below is
// scanned in declaration order and the first matching descriptor wins, so
// short-link variants must stay in front of nothing — their patterns are
// disjoint from the general ones by host.
type Descriptor struct {
	ID          string
	DisplayName string
	Hosts       []string
	Pattern     *regexp.Regexp

	// Hidden descriptors are matchable and can be disabled per chat, but
	// never show up in user-facing listings.
	Hidden bool

	// RequiresRedirect marks short-link front-ends whose URL must be
	// followed to its destination before the download runs.
	RequiresRedirect bool
}

func pattern(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + expr)
}

var descriptors = []Descriptor{
	{
		ID:          "tiktok",
		DisplayName: "TikTok",
		Hosts:       []string{"tiktok.com"},
		Pattern:     pattern(`https?://(www\.)?tiktok\.com/`),
	},
	{
		ID:               "tiktok_vm",
		DisplayName:      "TikTok (vm)",
		Hosts:            []string{"vm.tiktok.com"},
		Pattern:          pattern(`https?://vm\.tiktok\.com/`),
		Hidden:           true,
		RequiresRedirect: true,
	},
	{
		ID:          "soundcloud",
		DisplayName: "SoundCloud",
		Hosts:       []string{"soundcloud.com"},
		Pattern:     pattern(`https?://(www\.)?soundcloud\.com/`),
	},
	{
		ID:               "soundcloud_short",
		DisplayName:      "SoundCloud (on.soundcloud)",
		Hosts:            []string{"on.soundcloud.com"},
		Pattern:          pattern(`https?://on\.soundcloud\.com/`),
		Hidden:           true,
		RequiresRedirect: true,
	},
	{
		ID:          "twitter",
		DisplayName: "X / Twitter",
		Hosts:       []string{"x.com", "twitter.com"},
		Pattern:     pattern(`https?://(www\.)?(x|twitter)\.com/`),
	},
	{
		ID:               "twitter_short",
		DisplayName:      "t.co",
		Hosts:            []string{"t.co"},
		Pattern:          pattern(`https?://t\.co/`),
		Hidden:           true,
		RequiresRedirect: true,
	},
	{
		ID:          "instagram",
		DisplayName: "Instagram",
		Hosts:       []string{"instagram.com"},
		Pattern:     pattern(`https?://(www\.)?instagram\.com/`),
	},
	{
		ID:          "instagram_stories",
		DisplayName: "Instagram Stories",
		Hosts:       []string{"instagram.com"},
		Pattern:     pattern(`https?://(www\.)?instagram\.com/stories/`),
		Hidden:      true,
	},
	{
		ID:               "instagram_share",
		DisplayName:      "Instagram Share",
		Hosts:            []string{"instagram.com"},
		Pattern:          pattern(`https?://(www\.)?instagram\.com/share/`),
		Hidden:           true,
		RequiresRedirect: true,
	},
	{
		ID:          "ninegag",
		DisplayName: "9GAG",
		Hosts:       []string{"9gag.com"},
		Pattern:     pattern(`https?://(www\.)?9gag\.com/`),
	},
	{
		ID:          "youtube",
		DisplayName: "YouTube",
		Hosts:       []string{"youtube.com", "youtu.be"},
		Pattern:     pattern(`https?://(www\.)?(youtube\.com|youtu\.be)/`),
	},
	{
		ID:          "pinterest",
		DisplayName: "Pinterest",
		Hosts:       []string{"pinterest.com"},
		Pattern:     pattern(`https?://(www\.)?pinterest\.com/`),
	},
	{
		ID:               "pinterest_short",
		DisplayName:      "Pinterest (pin.it)",
		Hosts:            []string{"pin.it"},
		Pattern:          pattern(`https?://pin\.it/`),
		Hidden:           true,
		RequiresRedirect: true,
	},
	{
		ID:          "reddit",
		DisplayName: "Reddit",
		Hosts:       []string{"reddit.com"},
		Pattern:     pattern(`https?://(www\.)?reddit\.com/`),
	},
	{
		ID:               "reddit_short",
		DisplayName:      "Reddit (redd.it)",
		Hosts:            []string{"redd.it"},
		Pattern:          pattern(`https?://redd\.it/`),
		Hidden:           true,
		RequiresRedirect: true,
	},
	{
		ID:          "threads",
		DisplayName: "Threads",
		Hosts:       []string{"threads.net"},
		Pattern:     pattern(`https?://(www\.)?threads\.net/`),
	},
}

// Match returns the first descriptor whose pattern accepts the URL, or nil
// when the URL belongs to no known source.
func Match(url string) *Descriptor {
	for i := range descriptors {
		if descriptors[i].Pattern.MatchString(url) {
			return &descriptors[i]
		}
	}

	return nil
}

// ListVisible returns the non-hidden descriptors in table order. Used for
// display only, never for matching.
func ListVisible() []Descriptor {
	visible := make([]Descriptor, 0, len(descriptors))

	for _, d := range descriptors {
		if !d.Hidden {
			visible = append(visible, d)
		}
	}

	return visible
}

// ByID returns the descriptor with the given id, or nil. Stale ids from
// removed descriptors resolve to nil and are treated as no-ops by callers.
func ByID(id string) *Descriptor {
	for i := range descriptors {
		if descriptors[i].ID == id {
			return &descriptors[i]
		}
	}

	return nil
}

// IsKnown reports whether id names a registered descriptor.
func IsKnown(id string) bool {
	return ByID(id) != nil
}
