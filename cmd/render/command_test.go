package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupGallery(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "images", "music", "A", "Abba")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create gallery dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "waterloo.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}

	t.Setenv("ROOT_PATH", root)
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("LOG_LEVEL", "error")
	return root
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestRenderFromStdin(t *testing.T) {
	setupGallery(t)

	out, err := execute(t, "<p>{auto-gallery}</p>", "-", "--path", "/bands/abba")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "/images/music/A/Abba/waterloo.jpg") {
		t.Fatalf("expected gallery markup, got:\n%s", out)
	}
	if strings.Contains(out, "<link") {
		t.Fatalf("expected assets to be omitted without --assets")
	}
}

func TestRenderWithAssetsToFile(t *testing.T) {
	root := setupGallery(t)
	input := filepath.Join(root, "article.html")
	if err := os.WriteFile(input, []byte(`{auto-gallery slug=abba}`), 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	output := filepath.Join(root, "out.html")

	stdout, err := execute(t, "", input, "--assets", "--out", output)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if stdout != "" {
		t.Fatalf("expected nothing on stdout, got %q", stdout)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	page := string(data)
	for _, expected := range []string{"glightbox.min.css", "<style>", "waterloo.jpg", "glightbox.min.js", "GLightbox("} {
		if !strings.Contains(page, expected) {
			t.Fatalf("expected %q in output:\n%s", expected, page)
		}
	}
	if strings.Index(page, "glightbox.min.css") > strings.Index(page, "waterloo.jpg") {
		t.Fatalf("expected stylesheet before the gallery")
	}
}

func TestRenderPassesThroughPlainText(t *testing.T) {
	setupGallery(t)

	out, err := execute(t, "no placeholders here", "--assets")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if out != "no placeholders here" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderMissingFile(t *testing.T) {
	setupGallery(t)

	if _, err := execute(t, "", filepath.Join(t.TempDir(), "missing.html")); err == nil {
		t.Fatalf("expected missing input to fail")
	}
}
