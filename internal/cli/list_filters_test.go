package cli

import "testing"

func listTitles(t *testing.T, args ...string) []string {
	t.Helper()
	env := mustEnvelope(t, args...)
	xs, ok := env["data"].([]any)
	if !ok {
		t.Fatalf("expected list data; got: %#v", env["data"])
	}
	var titles []string
	for _, x := range xs {
		m, _ := x.(map[string]any)
		title, _ := m["title"].(string)
		titles = append(titles, title)
	}
	return titles
}

func TestList_OverdueFilter(t *testing.T) {
	dir := t.TempDir()

	mustEnvelope(t, "--dir", dir, "add", "Past due", "--when", "2020-01-02 09:00")
	mustEnvelope(t, "--dir", dir, "add", "Far future", "--when", "2099-01-02 09:00")
	mustEnvelope(t, "--dir", dir, "add", "Undated")

	titles := listTitles(t, "--dir", dir, "list", "--overdue")
	if len(titles) != 1 || titles[0] != "Past due" {
		t.Fatalf("expected only the past entry; got: %v", titles)
	}

	// Done entries are never overdue.
	past := mustEnvelope(t, "--dir", dir, "list", "--overdue")
	id, _ := past["data"].([]any)[0].(map[string]any)["id"].(string)
	mustEnvelope(t, "--dir", dir, "done", id)
	if titles := listTitles(t, "--dir", dir, "list", "--overdue"); len(titles) != 0 {
		t.Fatalf("expected no overdue after done; got: %v", titles)
	}
}

func TestList_DoneFilter(t *testing.T) {
	dir := t.TempDir()

	a := mustEnvelope(t, "--dir", dir, "add", "Finished")
	id, _ := a["data"].(map[string]any)["id"].(string)
	mustEnvelope(t, "--dir", dir, "add", "Pending")
	mustEnvelope(t, "--dir", dir, "done", id)

	titles := listTitles(t, "--dir", dir, "list", "--done")
	if len(titles) != 1 || titles[0] != "Finished" {
		t.Fatalf("expected only the done entry; got: %v", titles)
	}
}

func TestAdd_DoneFlag(t *testing.T) {
	dir := t.TempDir()

	a := mustEnvelope(t, "--dir", dir, "add", "Paid rent", "--done")
	if d, _ := a["data"].(map[string]any)["done"].(bool); !d {
		t.Fatalf("expected done on creation; got: %#v", a["data"])
	}
	if titles := listTitles(t, "--dir", dir, "list"); len(titles) != 0 {
		t.Fatalf("expected the done entry to be hidden by default; got: %v", titles)
	}
}

func TestList_FuzzyMatch(t *testing.T) {
	dir := t.TempDir()

	mustEnvelope(t, "--dir", dir, "add", "Dentist appointment")
	mustEnvelope(t, "--dir", dir, "add", "Groceries")

	titles := listTitles(t, "--dir", dir, "list", "--match", "dnt")
	if len(titles) != 1 || titles[0] != "Dentist appointment" {
		t.Fatalf("expected fuzzy match on dentist; got: %v", titles)
	}

	if titles := listTitles(t, "--dir", dir, "list", "--match", "zzz"); len(titles) != 0 {
		t.Fatalf("expected no matches; got: %v", titles)
	}
}
