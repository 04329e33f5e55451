package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"slices"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

const (
	// DetailsMarker is the label of the document line that receives updates.
	DetailsMarker = "Details:"

	// UpdateDelimiter separates successive updates on the details line.
	UpdateDelimiter = " | Update: "
)

// ID is a content fingerprint.
// It is generated using BLAKE2b hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// EmbeddingKeyFor fingerprints the model and text an embedding was computed from.
func EmbeddingKeyFor(model, text string) ID {
	return IDFromContent(model + "\x00" + text)
}

// Intent is the classified purpose of a user's input.
type Intent int

const (
	// IntentQuery asks about project status.
	IntentQuery Intent = iota + 1
	// IntentUpdate modifies project state.
	IntentUpdate
	// IntentEmail asks for a reply draft.
	IntentEmail
)

func (i Intent) String() string {
	switch i {
	case IntentUpdate:
		return "UPDATE"
	case IntentEmail:
		return "EMAIL"
	case IntentQuery:
		return "QUERY"
	default:
		return "UNKNOWN"
	}
}

// SourceRow is one entry of the ingestion source file.
type SourceRow struct {
	ClientName      string `json:"client_name"`
	ProjectID       string `json:"project_id"`
	ProjectDetails  string `json:"project_details"`
	LastInteraction string `json:"last_interaction"`
	CustomerID      string `json:"customer_id"`
	DevID           string `json:"dev_id"`
}

// UpdateEntry is a single status update applied to a project.
type UpdateEntry struct {
	At   time.Time
	Text string
}

// ProjectRecord is the persisted unit of project knowledge.
//
// The document text is kept as lines plus an ordered list of updates and is
// only flattened by Text. Updates are rendered onto the details line.
type ProjectRecord struct {
	ProjectID       string
	ClientName      string
	CustomerID      string
	DevID           string
	LastInteraction string
	Body            []string      // Document lines without update suffixes
	DetailsLine     int           // Index into Body of the details line, -1 if absent
	Updates         []UpdateEntry // Applied in order
	Vector          []float32     // Embedding of Text()
	EmbeddingKey    ID            // Fingerprint of the model and text behind Vector
	InsertedAt      time.Time
	UpdatedAt       time.Time
}

// FormatDocument renders a source row into the ingestion document template.
func FormatDocument(row SourceRow) string {
	return "Client: " + row.ClientName + "\n" +
		"Project ID: " + row.ProjectID + "\n" +
		DetailsMarker + " " + row.ProjectDetails + "\n" +
		"Last Interaction: " + row.LastInteraction
}

// ParseRecordText builds a record from a flat document.
// Only the first line whose trimmed form starts with DetailsMarker is
// treated as the details line.
func ParseRecordText(projectID, text string) *ProjectRecord {
	body := strings.Split(text, "\n")
	details := -1
	for i, line := range body {
		if strings.HasPrefix(strings.TrimSpace(line), DetailsMarker) {
			details = i
			break
		}
	}
	return &ProjectRecord{
		ProjectID:   projectID,
		Body:        body,
		DetailsLine: details,
	}
}

// NewRecordFromRow creates a record for a source row.
func NewRecordFromRow(row SourceRow) *ProjectRecord {
	r := ParseRecordText(row.ProjectID, FormatDocument(row))
	r.ClientName = row.ClientName
	r.CustomerID = row.CustomerID
	r.DevID = row.DevID
	r.LastInteraction = row.LastInteraction
	return r
}

// HasDetailsLine reports whether the ingested body carries a details line.
func (r *ProjectRecord) HasDetailsLine() bool {
	return r.DetailsLine >= 0 && r.DetailsLine < len(r.Body)
}

// AppendUpdate records a new update. The record's text changes, so the
// stored vector is stale until re-embedded.
func (r *ProjectRecord) AppendUpdate(text string, at time.Time) {
	r.Updates = append(r.Updates, UpdateEntry{At: at, Text: text})
	r.UpdatedAt = at
}

// Text serializes the record into the document that is embedded and stored.
func (r *ProjectRecord) Text() string {
	if len(r.Updates) == 0 {
		return strings.Join(r.Body, "\n")
	}

	lines := slices.Clone(r.Body)
	updates := r.Updates
	var b strings.Builder
	if r.HasDetailsLine() {
		b.WriteString(lines[r.DetailsLine])
	} else {
		// First update opens a details line at the end of the document
		b.WriteString(DetailsMarker + " " + updates[0].Text)
		updates = updates[1:]
	}
	for _, u := range updates {
		b.WriteString(UpdateDelimiter)
		b.WriteString(u.Text)
	}

	if r.HasDetailsLine() {
		lines[r.DetailsLine] = b.String()
	} else {
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// Metadata returns the flat metadata document stored next to the vector.
func (r *ProjectRecord) Metadata() map[string]string {
	return map[string]string{
		"project_id":       r.ProjectID,
		"client_name":      r.ClientName,
		"customer_id":      r.CustomerID,
		"dev_id":           r.DevID,
		"last_interaction": r.LastInteraction,
		"text":             r.Text(),
	}
}

// Clone returns a deep copy of the record.
func (r *ProjectRecord) Clone() *ProjectRecord {
	c := *r
	c.Body = slices.Clone(r.Body)
	c.Updates = slices.Clone(r.Updates)
	c.Vector = slices.Clone(r.Vector)
	return &c
}

// Metric is the similarity function of a vector index.
type Metric int

const (
	// MetricCosine ranks by cosine similarity.
	MetricCosine Metric = iota + 1
	// MetricDotProduct ranks by raw dot product.
	MetricDotProduct
	// MetricEuclidean ranks by negated euclidean distance.
	MetricEuclidean
)

func (m Metric) String() string {
	switch m {
	case MetricCosine:
		return "cosine"
	case MetricDotProduct:
		return "dotproduct"
	case MetricEuclidean:
		return "euclidean"
	default:
		return "unknown"
	}
}

// IndexSpec describes a named vector index.
type IndexSpec struct {
	Name      string
	Dimension int
	Metric    Metric
	CreatedAt time.Time
}

// SearchResult represents a search result with the full record and relevance score.
type SearchResult struct {
	Record *ProjectRecord
	Score  float32
}
