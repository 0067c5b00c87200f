package ingest

import (
	"context"
	"database/sql"
	"reflect"
	"strings"
	"testing"

	"project-compass/internal/database"
)

func TestClassifyDomain(t *testing.T) {
	cases := []struct {
		tags []string
		want string
	}{
		{[]string{"webdev", "beginners"}, "Web Development"},
		{[]string{"productivity", "machinelearning"}, "Artificial Intelligence"},
		{[]string{"#DataScience "}, "Data Science"},
		{[]string{"productivity", "career"}, ""},
		{nil, ""},
	}
	for _, c := range cases {
		if got := classifyDomain(c.tags); got != c.want {
			t.Fatalf("classifyDomain(%v) = %q, want %q", c.tags, got, c.want)
		}
	}
}

func TestClassifyDifficulty(t *testing.T) {
	cases := []struct {
		tags []string
		want string
	}{
		{[]string{"webdev", "beginners"}, "Beginner"},
		{[]string{"Tutorial"}, "Beginner"},
		{[]string{"architecture", "go"}, "Advanced"},
		{[]string{"webdev"}, "Intermediate"},
		{nil, "Intermediate"},
	}
	for _, c := range cases {
		if got := classifyDifficulty(c.tags); got != c.want {
			t.Fatalf("classifyDifficulty(%v) = %q, want %q", c.tags, got, c.want)
		}
	}
}

func TestNormalizeTag(t *testing.T) {
	cases := map[string]string{
		" #React Native ": "reactnative",
		"WebDev":          "webdev",
		"":                "",
	}
	for in, want := range cases {
		if got := normalizeTag(in); got != want {
			t.Fatalf("normalizeTag(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStableExternalIDFromURL(t *testing.T) {
	a := stableExternalIDFromURL("https://dev.to/x/some-post")
	b := stableExternalIDFromURL("https://dev.to/x/some-post")
	if a == "" || a != b {
		t.Fatalf("id must be stable and non-empty: %q vs %q", a, b)
	}
	if stableExternalIDFromURL("  ") != "" {
		t.Fatalf("blank url must yield empty id")
	}
	if a == stableExternalIDFromURL("https://dev.to/x/other-post") {
		t.Fatalf("different urls must not collide")
	}
}

func TestDraftFromArticle(t *testing.T) {
	d := draftFromArticle(devtoArticle{
		URL:     "https://dev.to/x/build-a-chatbot",
		Title:   "Build a Chatbot",
		Tags:    []string{"machinelearning", "python", "beginners"},
		Excerpt: "A walkthrough.",
	})
	if d.Domain != "Artificial Intelligence" {
		t.Fatalf("domain = %q", d.Domain)
	}
	if d.Difficulty != "Beginner" {
		t.Fatalf("difficulty = %q", d.Difficulty)
	}
	if !reflect.DeepEqual(d.TechStack, []string{"Python"}) {
		t.Fatalf("tech stack = %v", d.TechStack)
	}
	if d.Title != "Build a Chatbot" || d.Description != "A walkthrough." {
		t.Fatalf("unexpected draft: %+v", d)
	}
}

func TestHostFromURL(t *testing.T) {
	cases := map[string]string{
		"https://dev.to/t/webdev": "dev.to",
		"http://localhost:8080/a": "localhost",
		"/just/a/path":            "",
		"://missing-scheme":       "",
	}
	for in, want := range cases {
		if got := hostFromURL(in); got != want {
			t.Fatalf("hostFromURL(%q) = %q, want %q", in, got, want)
		}
	}
}

type execRecorderDB struct {
	queries *[]string
	args    *[][]any
}

func (d execRecorderDB) Ping(context.Context) error { return nil }
func (d execRecorderDB) Close() error               { return nil }
func (d execRecorderDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	*d.queries = append(*d.queries, query)
	*d.args = append(*d.args, args)
	return 1, nil
}
func (d execRecorderDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, nil
}
func (d execRecorderDB) QueryRow(context.Context, string, ...any) database.Row { return nil }
func (d execRecorderDB) Begin(context.Context) (database.Tx, error)            { return nil, nil }
func (d execRecorderDB) SQLDB() *sql.DB                                        { return nil }

func TestRecordIngestActivity(t *testing.T) {
	var queries []string
	var args [][]any
	db := execRecorderDB{queries: &queries, args: &args}

	if err := RecordIngestActivity(context.Background(), db, " devto ", "12 drafts"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(queries) != 1 || !strings.Contains(queries[0], "activity_log") {
		t.Fatalf("unexpected queries: %v", queries)
	}
	if !strings.Contains(queries[0], "ingest_finished") {
		t.Fatalf("missing kind in query: %q", queries[0])
	}
	if len(args[0]) != 2 || args[0][0] != "devto" || args[0][1] != "12 drafts" {
		t.Fatalf("unexpected args: %v", args[0])
	}

	if err := RecordIngestActivity(context.Background(), db, "  ", ""); err == nil {
		t.Fatalf("blank source must be rejected")
	}
	if err := RecordIngestActivity(context.Background(), nil, "devto", ""); err == nil {
		t.Fatalf("nil db must be rejected")
	}
}
