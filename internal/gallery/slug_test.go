package gallery

import (
	"path/filepath"
	"testing"
)

func TestSlugFromPath(t *testing.T) {
	cases := []struct {
		path     string
		expected string
	}{
		{"/music/the-beatles", "the-beatles"},
		{"/music/the-beatles/", "the-beatles"},
		{"//music//Pink Floyd//", "pink-floyd"},
		{"/music/AC_DC!!", "ac-dc"},
		{"/", ""},
		{"", ""},
		{"/music/--odd--", "odd"},
		{"/music/sigur-rós", "sigur-r-s"},
	}

	for _, tc := range cases {
		if got := SlugFromPath(tc.path); got != tc.expected {
			t.Errorf("SlugFromPath(%q) = %q, expected %q", tc.path, got, tc.expected)
		}
	}
}

func TestSlugToFolderName(t *testing.T) {
	cases := []struct {
		slug     string
		expected string
	}{
		{"", ""},
		{"the-beatles", "The-Beatles"},
		{"THE--BEATLES-", "The-Beatles"},
		{"guns-n’-roses", "Guns-N'-Roses"},
		{"guns-n`-roses", "Guns-N'-Roses"},
		{"7-eleven", "7-Eleven"},
		{"élan-vital", "Élan-Vital"},
	}

	for _, tc := range cases {
		if got := SlugToFolderName(tc.slug); got != tc.expected {
			t.Errorf("SlugToFolderName(%q) = %q, expected %q", tc.slug, got, tc.expected)
		}
	}
}

func TestBucket(t *testing.T) {
	cases := []struct {
		folder   string
		expected string
	}{
		{"", DigitBucket},
		{"The-Beatles", "T"},
		{"abba", "A"},
		{"7-Eleven", DigitBucket},
		{"'Til-Tuesday", DigitBucket},
		{"Élan-Vital", DigitBucket},
	}

	for _, tc := range cases {
		if got := Bucket(tc.folder); got != tc.expected {
			t.Errorf("Bucket(%q) = %q, expected %q", tc.folder, got, tc.expected)
		}
	}
}

func TestMapSlug(t *testing.T) {
	base := filepath.Join("srv", "images", "music")

	loc := MapSlug("the-beatles", base, "/images/music")
	if loc.Dir != filepath.Join(base, "T", "The-Beatles") {
		t.Fatalf("unexpected dir: %s", loc.Dir)
	}
	if loc.URL != "/images/music/T/The-Beatles" {
		t.Fatalf("unexpected url: %s", loc.URL)
	}
	if loc.Title != "The-Beatles" {
		t.Fatalf("unexpected title: %s", loc.Title)
	}

	numeric := MapSlug("7-eleven", base, "/images/music")
	if numeric.URL != "/images/music/0-9/7-Eleven" {
		t.Fatalf("unexpected url for numeric slug: %s", numeric.URL)
	}

	empty := MapSlug("", base, "/images/music")
	if empty.Dir != filepath.Join(base, DigitBucket) {
		t.Fatalf("unexpected dir for empty slug: %s", empty.Dir)
	}
	if empty.Title != "Gallery" {
		t.Fatalf("expected fallback title, got %s", empty.Title)
	}

	apostrophe := MapSlug("guns-n'-roses", base, "/images/music")
	if apostrophe.URL != "/images/music/G/Guns-N%27-Roses" {
		t.Fatalf("expected apostrophe to be percent-encoded, got %s", apostrophe.URL)
	}
}

func TestResolveFolder(t *testing.T) {
	base := filepath.Join("srv", "images")

	cases := []struct {
		name  string
		input string
		dir   string
		url   string
		title string
	}{
		{
			name:  "nested folder",
			input: "/tours/summer-1969/",
			dir:   filepath.Join(base, "tours", "summer-1969"),
			url:   "/images/tours/summer-1969",
			title: "Summer 1969",
		},
		{
			name:  "spaces are encoded",
			input: "live shows/red rocks",
			dir:   filepath.Join(base, "live shows", "red rocks"),
			url:   "/images/live%20shows/red%20rocks",
			title: "Red Rocks",
		},
		{
			name:  "dot slash runs stripped",
			input: "../../etc/passwd-dir",
			dir:   filepath.Join(base, "etc", "passwd-dir"),
			url:   "/images/etc/passwd-dir",
			title: "Passwd Dir",
		},
		{
			name:  "empty folder falls back to default title",
			input: "/",
			dir:   base,
			url:   "/images/",
			title: "Gallery",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loc := ResolveFolder(tc.input, base, "/images")
			if loc.Dir != tc.dir {
				t.Errorf("dir = %q, expected %q", loc.Dir, tc.dir)
			}
			if loc.URL != tc.url {
				t.Errorf("url = %q, expected %q", loc.URL, tc.url)
			}
			if loc.Title != tc.title {
				t.Errorf("title = %q, expected %q", loc.Title, tc.title)
			}
		})
	}
}
