package extractor

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
	}{
		{name: "tiktok", url: "https://www.tiktok.com/@user/video/12345", wantID: "tiktok"},
		{name: "tiktok short link", url: "https://vm.tiktok.com/ZMabc123/", wantID: "tiktok_vm"},
		{name: "soundcloud", url: "https://soundcloud.com/artist/track", wantID: "soundcloud"},
		{name: "soundcloud short link", url: "https://on.soundcloud.com/abc", wantID: "soundcloud_short"},
		{name: "twitter", url: "https://twitter.com/user/status/1", wantID: "twitter"},
		{name: "x dot com", url: "https://x.com/user/status/1", wantID: "twitter"},
		{name: "t.co short link", url: "https://t.co/abc123", wantID: "twitter_short"},
		{name: "instagram post", url: "https://www.instagram.com/p/abc/", wantID: "instagram"},
		{name: "instagram story matches general entry first", url: "https://www.instagram.com/stories/user/1/", wantID: "instagram"},
		{name: "ninegag", url: "https://9gag.com/gag/abc", wantID: "ninegag"},
		{name: "youtube", url: "https://www.youtube.com/watch?v=abc", wantID: "youtube"},
		{name: "youtu.be", url: "https://youtu.be/abc", wantID: "youtube"},
		{name: "pinterest", url: "https://www.pinterest.com/pin/1/", wantID: "pinterest"},
		{name: "pin.it short link", url: "https://pin.it/abc", wantID: "pinterest_short"},
		{name: "reddit", url: "https://reddit.com/r/golang/comments/1/", wantID: "reddit"},
		{name: "redd.it short link", url: "https://redd.it/abc", wantID: "reddit_short"},
		{name: "threads", url: "https://www.threads.net/@user/post/1", wantID: "threads"},
		{name: "uppercase scheme and host", url: "HTTPS://WWW.TIKTOK.COM/@user", wantID: "tiktok"},
		{name: "unknown host", url: "https://example.com/foo", wantID: ""},
		{name: "host without path", url: "https://tiktok.com", wantID: ""},
		{name: "not a url", url: "tiktok.com/@user", wantID: ""},
		{name: "known host in query of unknown url", url: "https://example.com/?u=https://tiktok.com/x", wantID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.url)
			if tt.wantID == "" {
				if got != nil {
					t.Fatalf("Match(%q) = %q, want no match", tt.url, got.ID)
				}

				return
			}

			if got == nil {
				t.Fatalf("Match(%q) = nil, want %q", tt.url, tt.wantID)
			}

			if got.ID != tt.wantID {
				t.Errorf("Match(%q) = %q, want %q", tt.url, got.ID, tt.wantID)
			}
		})
	}
}

func TestMatchReturnsFirstDescriptorInTableOrder(t *testing.T) {
	// Both the general instagram entry and the hidden stories/share entries
	// accept these URLs; table order makes the general entry win.
	for _, url := range []string{
		"https://instagram.com/stories/user/123/",
		"https://instagram.com/share/abc",
	} {
		got := Match(url)
		if got == nil || got.ID != "instagram" {
			t.Errorf("Match(%q) = %v, want instagram", url, got)
		}
	}
}

func TestListVisible(t *testing.T) {
	visible := ListVisible()

	for _, d := range visible {
		if d.Hidden {
			t.Errorf("ListVisible returned hidden descriptor %q", d.ID)
		}
	}

	// Visible entries keep table order.
	wantOrder := []string{"tiktok", "soundcloud", "twitter", "instagram", "ninegag", "youtube", "pinterest", "reddit", "threads"}
	if len(visible) != len(wantOrder) {
		t.Fatalf("ListVisible returned %d descriptors, want %d", len(visible), len(wantOrder))
	}

	for i, id := range wantOrder {
		if visible[i].ID != id {
			t.Errorf("ListVisible[%d] = %q, want %q", i, visible[i].ID, id)
		}
	}
}

func TestByID(t *testing.T) {
	if d := ByID("tiktok_vm"); d == nil || !d.Hidden || !d.RequiresRedirect {
		t.Errorf("ByID(tiktok_vm) = %+v, want hidden redirect descriptor", d)
	}

	if d := ByID("gone"); d != nil {
		t.Errorf("ByID(gone) = %+v, want nil", d)
	}

	if IsKnown("gone") {
		t.Error("IsKnown(gone) = true, want false")
	}
}

func TestDescriptorIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)

	for _, d := range descriptors {
		if seen[d.ID] {
			t.Errorf("duplicate descriptor id %q", d.ID)
		}

		seen[d.ID] = true
	}
}
