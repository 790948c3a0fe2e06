package parser

import (
	"reflect"
	"testing"
)

func TestExtractLinksOrderAndNormalization(t *testing.T) {
	links := ExtractLinks("see https://x.test/a and www.y.test")

	want := []string{"https://x.test/a", "https://www.y.test"}
	if !reflect.DeepEqual(links, want) {
		t.Errorf("expected %v, got %v", want, links)
	}
}

func TestExtractLinksKeepsDuplicates(t *testing.T) {
	links := ExtractLinks("https://x.test twice: https://x.test")

	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d: %v", len(links), links)
	}
	if links[0] != links[1] {
		t.Errorf("expected duplicate links preserved, got %v", links)
	}
}

func TestExtractLinksTrimsTrailingPunctuation(t *testing.T) {
	links := ExtractLinks("deployed (see https://x.test/build).")

	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d: %v", len(links), links)
	}
	if links[0] != "https://x.test/build" {
		t.Errorf("expected trailing punctuation trimmed, got %q", links[0])
	}
}

func TestExtractLinksSchemes(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"plain http://x.test link", "http://x.test"},
		{"secure https://x.test link", "https://x.test"},
		{"bare www.x.test link", "https://www.x.test"},
		{"uppercase HTTPS://X.TEST link", "HTTPS://X.TEST"},
	}

	for _, tt := range tests {
		links := ExtractLinks(tt.text)
		if len(links) != 1 || links[0] != tt.want {
			t.Errorf("ExtractLinks(%q) = %v, want [%s]", tt.text, links, tt.want)
		}
	}
}

func TestExtractLinksNoMatch(t *testing.T) {
	if links := ExtractLinks("nothing to see here"); links != nil {
		t.Errorf("expected nil for text without links, got %v", links)
	}
}
