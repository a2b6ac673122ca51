package models

import "testing"

func TestArticleBeforeSaveNormalizesPath(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"bands/the-beatles/", "/bands/the-beatles"},
		{"//bands//abba", "/bands/abba"},
		{"", "/"},
	}

	for _, tc := range cases {
		article := &Article{Path: tc.input}
		if err := article.BeforeSave(nil); err != nil {
			t.Fatalf("before save: %v", err)
		}
		if article.Path != tc.expected {
			t.Errorf("path %q normalized to %q, expected %q", tc.input, article.Path, tc.expected)
		}
	}
}
