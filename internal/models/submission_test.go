package models

import (
	"encoding/json"
	"testing"
)

func mustContent(t *testing.T, raw string) Content {
	t.Helper()
	var c Content
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("failed to build content: %v", err)
	}
	return c
}

func TestContentText(t *testing.T) {
	// v1 裸值与 v2 包装值必须取出同样的结果
	plain := mustContent(t, `{"title": "Deep Nets"}`)
	wrapped := mustContent(t, `{"title": {"value": "Deep Nets"}}`)

	if got := plain.Text("title"); got != "Deep Nets" {
		t.Errorf("plain Text() = %q, want %q", got, "Deep Nets")
	}
	if got := wrapped.Text("title"); got != "Deep Nets" {
		t.Errorf("wrapped Text() = %q, want %q", got, "Deep Nets")
	}
}

func TestContentTextNumeric(t *testing.T) {
	// v2 的评分字段是包装后的数值，必须原样保留成文本
	c := mustContent(t, `{"rating": {"value": 8}, "confidence": {"value": 4}, "score": 6.5}`)
	if got := c.Text("rating"); got != "8" {
		t.Errorf("Text() on wrapped number = %q, want %q", got, "8")
	}
	if got := c.Text("confidence"); got != "4" {
		t.Errorf("Text() on wrapped number = %q, want %q", got, "4")
	}
	if got := c.Text("score"); got != "6.5" {
		t.Errorf("Text() on bare number = %q, want %q", got, "6.5")
	}
}

func TestContentTextMissing(t *testing.T) {
	c := mustContent(t, `{}`)
	if got := c.Text("title"); got != "" {
		t.Errorf("Text() on missing key = %q, want empty", got)
	}

	// 非标量形态（数组 / 对象）不能 panic，统一返回空串
	c = mustContent(t, `{"title": ["a"], "meta": {"foo": 1}}`)
	if got := c.Text("title"); got != "" {
		t.Errorf("Text() on array = %q, want empty", got)
	}
	if got := c.Text("meta"); got != "" {
		t.Errorf("Text() on object = %q, want empty", got)
	}
}

func TestContentList(t *testing.T) {
	plain := mustContent(t, `{"authors": ["a", "b"]}`)
	wrapped := mustContent(t, `{"authors": {"value": ["a", "b"]}}`)

	for _, c := range []Content{plain, wrapped} {
		got := c.List("authors")
		if len(got) != 2 || got[0] != "a" || got[1] != "b" {
			t.Errorf("List() = %v, want [a b]", got)
		}
	}

	if got := plain.List("keywords"); got != nil {
		t.Errorf("List() on missing key = %v, want nil", got)
	}
}

func TestAllReplies(t *testing.T) {
	var s Submission
	if got := s.AllReplies(); got != nil {
		t.Errorf("AllReplies() without details = %v, want nil", got)
	}

	s.Details = &SubmissionDetails{Replies: []Reply{{ID: "r1"}}}
	if got := s.AllReplies(); len(got) != 1 || got[0].ID != "r1" {
		t.Errorf("AllReplies() with v1 replies = %v", got)
	}

	s.Details = &SubmissionDetails{DirectReplies: []Reply{{ID: "r2"}}}
	if got := s.AllReplies(); len(got) != 1 || got[0].ID != "r2" {
		t.Errorf("AllReplies() with v2 directReplies = %v", got)
	}
}

func TestFormatMillis(t *testing.T) {
	if got := FormatMillis(0); got != "" {
		t.Errorf("FormatMillis(0) = %q, want empty", got)
	}
	// 2024-01-15 00:00:00 UTC
	if got := FormatMillis(1705276800000); got != "2024-01-15" {
		t.Errorf("FormatMillis() = %q, want 2024-01-15", got)
	}
}
