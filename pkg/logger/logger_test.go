package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestContextWithFieldsMerges(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]interface{}{"request_id": "abc"})
	ctx = ContextWithFields(ctx, map[string]interface{}{"path": "/music/the-beatles"})

	entry := FromContext(ctx)
	if entry.Data["request_id"] != "abc" {
		t.Fatalf("expected request_id to survive merge, got %v", entry.Data["request_id"])
	}
	if entry.Data["path"] != "/music/the-beatles" {
		t.Fatalf("expected path field, got %v", entry.Data["path"])
	}
}

func TestSetLevelIgnoresUnknownNames(t *testing.T) {
	original := Logger.GetLevel()
	t.Cleanup(func() { Logger.SetLevel(original) })

	SetLevel("warn")
	if Logger.GetLevel() != logrus.WarnLevel {
		t.Fatalf("expected warn level, got %s", Logger.GetLevel())
	}

	SetLevel("loud")
	if Logger.GetLevel() != logrus.WarnLevel {
		t.Fatalf("expected unknown level to be ignored, got %s", Logger.GetLevel())
	}
}

func TestFieldsAreWritten(t *testing.T) {
	var buf bytes.Buffer
	original := Logger.Out
	originalLevel := Logger.GetLevel()
	originalFormatter := Logger.Formatter
	t.Cleanup(func() {
		Logger.SetOutput(original)
		Logger.SetLevel(originalLevel)
		Logger.SetFormatter(originalFormatter)
	})
	Logger.SetFormatter(&logrus.TextFormatter{DisableColors: true})

	SetOutput(&buf)
	Logger.SetLevel(logrus.InfoLevel)
	Info("gallery rendered", map[string]interface{}{"instance": "tour"})

	if !strings.Contains(buf.String(), "instance=tour") {
		t.Fatalf("expected instance field in output, got %q", buf.String())
	}
}
