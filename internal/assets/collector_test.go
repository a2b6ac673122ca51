package assets

import (
	"strings"
	"sync"
	"testing"
)

func TestCollectorRegistersFirstDefinition(t *testing.T) {
	c := NewCollector()
	c.RegisterAsset("glightbox", "/a.css", "/a.js")
	c.RegisterAsset("glightbox", "/b.css", "/b.js")
	c.UseAsset("glightbox")

	used := c.Used()
	if len(used) != 1 {
		t.Fatalf("expected one used asset, got %d", len(used))
	}
	if used[0].StyleURL != "/a.css" || used[0].ScriptURL != "/a.js" {
		t.Fatalf("expected first registration to win, got %+v", used[0])
	}
}

func TestCollectorUseAssetIsIdempotent(t *testing.T) {
	c := NewCollector()
	c.UseAsset("missing")
	if !c.Empty() {
		t.Fatalf("expected unknown assets to be ignored")
	}

	c.RegisterAsset("one", "/one.css", "")
	c.RegisterAsset("two", "", "/two.js")
	c.UseAsset("two")
	c.UseAsset("one")
	c.UseAsset("two")

	used := c.Used()
	if len(used) != 2 || used[0].Name != "two" || used[1].Name != "one" {
		t.Fatalf("unexpected used assets: %+v", used)
	}
}

func TestCollectorHTML(t *testing.T) {
	c := NewCollector()
	c.RegisterAsset("glightbox", "/css/g.css?v=1&x=2", "/js/g.js")
	c.UseAsset("glightbox")
	c.AddInlineStyle(".a{color:red}")
	c.AddInlineStyle("   ")
	c.AddInlineScript("init();")

	head := string(c.HeadHTML())
	if !strings.Contains(head, `<link rel="stylesheet" href="/css/g.css?v=1&amp;x=2">`) {
		t.Fatalf("unexpected head html: %s", head)
	}
	if strings.Count(head, "<style>") != 1 || !strings.Contains(head, ".a{color:red}") {
		t.Fatalf("expected a single style block: %s", head)
	}

	body := string(c.BodyHTML())
	if !strings.Contains(body, `<script src="/js/g.js" defer></script>`) {
		t.Fatalf("unexpected body html: %s", body)
	}
	if strings.Index(body, "g.js") > strings.Index(body, "init();") {
		t.Fatalf("expected library script before inline script: %s", body)
	}
}

func TestCollectorEmptyOutput(t *testing.T) {
	c := NewCollector()
	if c.HeadHTML() != "" || c.BodyHTML() != "" {
		t.Fatalf("expected no markup from an empty collector")
	}

	var nilCollector *Collector
	nilCollector.RegisterAsset("x", "", "")
	if nilCollector.HasAsset("x") || !nilCollector.Empty() {
		t.Fatalf("expected nil collector to be inert")
	}
}

func TestCollectorConcurrentUse(t *testing.T) {
	c := NewCollector()
	c.RegisterAsset("shared", "/s.css", "/s.js")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.UseAsset("shared")
			c.AddInlineScript("x();")
		}()
	}
	wg.Wait()

	if len(c.Used()) != 1 {
		t.Fatalf("expected shared asset to be used once")
	}
	if len(c.InlineScripts()) != 20 {
		t.Fatalf("expected every inline script to be kept, got %d", len(c.InlineScripts()))
	}
}
