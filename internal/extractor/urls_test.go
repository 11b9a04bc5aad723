package extractor

import (
	"reflect"
	"testing"
)

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "no urls",
			text: "just some text",
			want: nil,
		},
		{
			name: "single url",
			text: "look at this https://vm.tiktok.com/ZMabc123/",
			want: []string{"https://vm.tiktok.com/ZMabc123/"},
		},
		{
			name: "trailing punctuation trimmed",
			text: "have you seen https://youtu.be/abc?!",
			want: []string{"https://youtu.be/abc"},
		},
		{
			name: "multiple urls keep order",
			text: "https://reddit.com/r/golang and https://9gag.com/gag/x",
			want: []string{"https://reddit.com/r/golang", "https://9gag.com/gag/x"},
		},
		{
			name: "duplicates collapse",
			text: "https://x.com/a/1 https://x.com/a/1",
			want: []string{"https://x.com/a/1"},
		},
		{
			name: "http scheme accepted",
			text: "old link http://example.com/page",
			want: []string{"http://example.com/page"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractURLs(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractURLs(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
