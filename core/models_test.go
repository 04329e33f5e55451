package core

import (
	"strings"
	"testing"
	"time"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestEmbeddingKeyFor(t *testing.T) {
	a := EmbeddingKeyFor("model-a", "text")
	b := EmbeddingKeyFor("model-b", "text")
	if a == b {
		t.Errorf("EmbeddingKeyFor() ignored the model name")
	}
	if a != EmbeddingKeyFor("model-a", "text") {
		t.Errorf("EmbeddingKeyFor() is not deterministic")
	}
	if EmbeddingKeyFor("ab", "c") == EmbeddingKeyFor("a", "bc") {
		t.Errorf("EmbeddingKeyFor() does not separate model from text")
	}
}

func scenarioRow() SourceRow {
	return SourceRow{
		ClientName:      "Acme",
		ProjectID:       "P1",
		ProjectDetails:  "Build API",
		LastInteraction: "2024-01-01",
		CustomerID:      "C1",
		DevID:           "D1",
	}
}

func TestFormatDocument(t *testing.T) {
	got := FormatDocument(scenarioRow())
	want := "Client: Acme\nProject ID: P1\nDetails: Build API\nLast Interaction: 2024-01-01"
	if got != want {
		t.Errorf("FormatDocument() = %q, want %q", got, want)
	}
}

func TestNewRecordFromRow(t *testing.T) {
	row := scenarioRow()
	r := NewRecordFromRow(row)

	if r.ProjectID != "P1" || r.ClientName != "Acme" || r.CustomerID != "C1" || r.DevID != "D1" {
		t.Errorf("structured fields not copied: %+v", r)
	}
	if r.DetailsLine != 2 {
		t.Errorf("DetailsLine = %d, want 2", r.DetailsLine)
	}
	text := r.Text()
	for _, v := range []string{row.ClientName, row.ProjectID, row.ProjectDetails, row.LastInteraction} {
		if !strings.Contains(text, v) {
			t.Errorf("Text() missing %q: %q", v, text)
		}
	}
}

func TestParseRecordText(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantDetails int
	}{
		{"details present", "Client: A\nDetails: x", 1},
		{"indented details", "Client: A\n   Details: x", 1},
		{"no details", "Client: A\nNotes: x", -1},
		{"first of several", "Details: one\nDetails: two", 0},
		{"marker not at start", "Client: Details: x", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ParseRecordText("P", tt.text)
			if r.DetailsLine != tt.wantDetails {
				t.Errorf("DetailsLine = %d, want %d", r.DetailsLine, tt.wantDetails)
			}
			if r.Text() != tt.text {
				t.Errorf("Text() = %q, want round trip %q", r.Text(), tt.text)
			}
		})
	}
}

func TestAppendUpdate_ExistingDetailsLine(t *testing.T) {
	r := NewRecordFromRow(scenarioRow())
	before := strings.Count(r.Text(), "\n")

	r.AppendUpdate("SSL cert deployed", time.Now())

	lines := strings.Split(r.Text(), "\n")
	if len(lines)-1 != before {
		t.Errorf("line count changed: got %d lines", len(lines))
	}
	if lines[2] != "Details: Build API | Update: SSL cert deployed" {
		t.Errorf("details line = %q", lines[2])
	}
	if !strings.HasSuffix(lines[2], "| Update: SSL cert deployed") {
		t.Errorf("details line does not end with update: %q", lines[2])
	}
}

func TestAppendUpdate_NoDetailsLine(t *testing.T) {
	r := ParseRecordText("P2", "Client: Beta\nProject ID: P2")

	r.AppendUpdate("kickoff done", time.Now())
	lines := strings.Split(r.Text(), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected exactly one new line, got %d lines", len(lines))
	}
	if lines[2] != "Details: kickoff done" {
		t.Errorf("new line = %q", lines[2])
	}

	r.AppendUpdate("design approved", time.Now())
	lines = strings.Split(r.Text(), "\n")
	if len(lines) != 3 {
		t.Fatalf("second update added a line: %d lines", len(lines))
	}
	if lines[2] != "Details: kickoff done | Update: design approved" {
		t.Errorf("details line = %q", lines[2])
	}
	if strings.Count(r.Text(), DetailsMarker) != 1 {
		t.Errorf("more than one details line: %q", r.Text())
	}
}

func TestAppendUpdate_NotIdempotent(t *testing.T) {
	r := NewRecordFromRow(scenarioRow())
	r.AppendUpdate("same input", time.Now())
	r.AppendUpdate("same input", time.Now())

	if got := strings.Count(r.Text(), "same input"); got != 2 {
		t.Errorf("input appears %d times, want 2", got)
	}
}

func TestMetadata(t *testing.T) {
	r := NewRecordFromRow(scenarioRow())
	r.AppendUpdate("done", time.Now())

	md := r.Metadata()
	if md["client_name"] != "Acme" || md["customer_id"] != "C1" || md["dev_id"] != "D1" {
		t.Errorf("metadata lost structured fields: %v", md)
	}
	if md["text"] != r.Text() {
		t.Errorf("metadata text = %q, want %q", md["text"], r.Text())
	}
}

func TestClone(t *testing.T) {
	r := NewRecordFromRow(scenarioRow())
	r.Vector = []float32{1, 2}
	c := r.Clone()
	c.AppendUpdate("x", time.Now())
	c.Vector[0] = 9
	c.Body[0] = "changed"

	if len(r.Updates) != 0 || r.Vector[0] != 1 || r.Body[0] != "Client: Acme" {
		t.Errorf("Clone() shares state with original")
	}
}

func TestIntentString(t *testing.T) {
	tests := map[Intent]string{
		IntentQuery:  "QUERY",
		IntentUpdate: "UPDATE",
		IntentEmail:  "EMAIL",
		Intent(0):    "UNKNOWN",
	}
	for in, want := range tests {
		if in.String() != want {
			t.Errorf("Intent(%d).String() = %q, want %q", in, in.String(), want)
		}
	}
}
