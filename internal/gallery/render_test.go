package gallery

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parseFragment(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("failed to parse markup: %v", err)
	}
	return doc
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			out = append(out, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func sampleImages() []Image {
	return []Image{
		{URL: "/images/music/T/The-Beatles/a.jpg", Name: "a.jpg"},
		{URL: "/images/music/T/The-Beatles/live_at-shea__stadium.png", Name: "live_at-shea__stadium.png"},
	}
}

func TestRenderLightboxGrid(t *testing.T) {
	out := Render(sampleImages(), RenderOptions{
		Title:        "The-Beatles",
		ColClasses:   "col-6 col-md-3",
		ShowCaptions: true,
		ShowEmpty:    true,
		Lightbox:     true,
	})
	doc := parseFragment(t, out)

	anchors := findAll(doc, "a")
	if len(anchors) != 2 {
		t.Fatalf("expected 2 anchors, got %d in %s", len(anchors), out)
	}
	if href, _ := attr(anchors[1], "href"); href != "/images/music/T/The-Beatles/live_at-shea__stadium.png" {
		t.Fatalf("unexpected href: %s", href)
	}
	if class, _ := attr(anchors[0], "class"); class != LightboxClass {
		t.Fatalf("unexpected anchor class: %s", class)
	}
	if group, _ := attr(anchors[0], "data-gallery"); group != LightboxGroup {
		t.Fatalf("unexpected lightbox group: %s", group)
	}
	if title, _ := attr(anchors[1], "data-title"); title != "Live At Shea Stadium" {
		t.Fatalf("unexpected caption: %s", title)
	}

	imgs := findAll(doc, "img")
	if len(imgs) != 2 {
		t.Fatalf("expected 2 images, got %d", len(imgs))
	}
	if alt, _ := attr(imgs[0], "alt"); alt != "A" {
		t.Fatalf("unexpected alt: %s", alt)
	}
	if loading, _ := attr(imgs[0], "loading"); loading != "lazy" {
		t.Fatalf("expected lazy loading, got %s", loading)
	}

	if !strings.HasPrefix(out, `<div class="auto-gallery"><div class="row g-3">`) {
		t.Fatalf("unexpected container: %s", out)
	}
	if strings.Contains(out, "style=") {
		t.Fatalf("expected no style attribute without overrides: %s", out)
	}
	if !strings.Contains(out, `<div class="col-6 col-md-3">`) {
		t.Fatalf("expected column classes in output: %s", out)
	}
}

func TestRenderWithoutLightbox(t *testing.T) {
	out := Render(sampleImages(), RenderOptions{ColClasses: "col-4", ShowCaptions: true})
	doc := parseFragment(t, out)

	if anchors := findAll(doc, "a"); len(anchors) != 0 {
		t.Fatalf("expected no anchors without lightbox, got %d", len(anchors))
	}
	if strings.Count(out, `class="gallery-item"`) != 2 {
		t.Fatalf("expected a plain wrapper per image: %s", out)
	}
	if strings.Contains(out, LightboxClass) {
		t.Fatalf("expected no lightbox class: %s", out)
	}
}

func TestRenderCaptionsDisabled(t *testing.T) {
	out := Render(sampleImages(), RenderOptions{ColClasses: "col-4", Lightbox: true})
	if strings.Contains(out, "data-title") {
		t.Fatalf("expected no data-title when captions are off: %s", out)
	}
	// alt text is always present
	if !strings.Contains(out, `alt="Live At Shea Stadium"`) {
		t.Fatalf("expected alt text: %s", out)
	}
}

func TestRenderEmpty(t *testing.T) {
	out := Render(nil, RenderOptions{Title: "Sigur <Rós>", ShowEmpty: true})
	expected := `<div class="alert alert-info auto-gallery">No images found for <strong>Sigur &lt;Rós&gt;</strong>.</div>`
	if out != expected {
		t.Fatalf("unexpected notice:\n%s\nexpected:\n%s", out, expected)
	}

	if out := Render(nil, RenderOptions{Title: "x"}); out != "" {
		t.Fatalf("expected empty output when the notice is disabled, got %q", out)
	}
}

func TestRenderStyleOverrides(t *testing.T) {
	out := Render(sampleImages(), RenderOptions{
		ColClasses: "col",
		Style:      StyleOverrides{ThumbMinWidth: "80px", ImageHeight: `10px"onload="x`},
	})
	doc := parseFragment(t, out)

	divs := findAll(doc, "div")
	if len(divs) == 0 {
		t.Fatalf("expected container div")
	}
	style, ok := attr(divs[0], "style")
	if !ok {
		t.Fatalf("expected style attribute on container: %s", out)
	}
	if style != `--thumb-min-w:80px;--img-height:10px"onload="x` {
		t.Fatalf("unexpected style: %s", style)
	}
	if _, ok := attr(divs[0], "onload"); ok {
		t.Fatalf("style value escaped its attribute: %s", out)
	}
}

func TestRenderEscapesAttributes(t *testing.T) {
	images := []Image{{URL: `/g/a"b.jpg`, Name: `<script>.jpg`}}
	out := Render(images, RenderOptions{ColClasses: `x" onclick="y`, ShowCaptions: true, Lightbox: true})

	if strings.Contains(out, "<script>") {
		t.Fatalf("expected caption to be escaped: %s", out)
	}
	doc := parseFragment(t, out)
	for _, n := range findAll(doc, "div") {
		if _, ok := attr(n, "onclick"); ok {
			t.Fatalf("column classes escaped their attribute: %s", out)
		}
	}
	if src, _ := attr(findAll(doc, "img")[0], "src"); src != `/g/a"b.jpg` {
		t.Fatalf("unexpected src: %s", src)
	}
}

func TestFilenameToCaption(t *testing.T) {
	cases := []struct {
		filename string
		expected string
	}{
		{"my_song__title-01.png", "My Song Title 01"},
		{"___.png", "Image"},
		{"cover.jpg", "Cover"},
		{"LIVE-set.JPEG", "Live Set"},
		{"no-extension", "No Extension"},
		{"  spaced   out .gif", "Spaced Out"},
	}

	for _, tc := range cases {
		if got := FilenameToCaption(tc.filename); got != tc.expected {
			t.Errorf("FilenameToCaption(%q) = %q, expected %q", tc.filename, got, tc.expected)
		}
	}
}
