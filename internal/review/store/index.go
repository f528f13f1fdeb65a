package store

import (
	"bytes"
	"encoding/json"
	"io"

	"benchreview/internal/review/models"
)

// Index groups records by owning document.
//
// Invariants:
//   - Every record appears in exactly one document's sequence
//   - Document order is first-seen order in the source stream
//   - Record order within a document is insertion order
//   - Every document has at least one record
//
// Index is not safe for concurrent use; the review service serializes access.
type Index struct {
	order     []string
	positions map[string]int
	docs      map[string][]*models.Record
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		positions: make(map[string]int),
		docs:      make(map[string][]*models.Record),
	}
}

// Add appends r to the sequence of its document, registering the document on
// first sight. Records without a document name are ignored and Add reports false.
func (idx *Index) Add(r *models.Record) bool {
	doc := r.PDF()
	if doc == "" {
		return false
	}
	if _, ok := idx.docs[doc]; !ok {
		idx.positions[doc] = len(idx.order)
		idx.order = append(idx.order, doc)
	}
	idx.docs[doc] = append(idx.docs[doc], r)
	return true
}

// Documents returns the ordered document names.
func (idx *Index) Documents() []string {
	return append([]string(nil), idx.order...)
}

// Len is the number of documents.
func (idx *Index) Len() int {
	return len(idx.order)
}

// DocumentAt returns the document name at position i.
func (idx *Index) DocumentAt(i int) (string, bool) {
	if i < 0 || i >= len(idx.order) {
		return "", false
	}
	return idx.order[i], true
}

// Position returns the position of doc, or -1 when it is not indexed.
func (idx *Index) Position(doc string) int {
	if i, ok := idx.positions[doc]; ok {
		return i
	}
	return -1
}

// Has reports whether doc is indexed.
func (idx *Index) Has(doc string) bool {
	_, ok := idx.docs[doc]
	return ok
}

// Records returns the live records of doc. Callers outside the owning
// service should use Snapshot instead.
func (idx *Index) Records(doc string) []*models.Record {
	return idx.docs[doc]
}

// Snapshot returns deep copies of the records of doc.
func (idx *Index) Snapshot(doc string) []*models.Record {
	live := idx.docs[doc]
	out := make([]*models.Record, len(live))
	for i, r := range live {
		out[i] = r.Clone()
	}
	return out
}

// Find returns the first record of doc whose id matches.
func (idx *Index) Find(doc string, id json.RawMessage) (*models.Record, bool) {
	for _, r := range idx.docs[doc] {
		if r.MatchesID(id) {
			return r, true
		}
	}
	return nil, false
}

// HasUnreviewed reports whether doc has a record with checked unset.
func (idx *Index) HasUnreviewed(doc string) bool {
	for _, r := range idx.docs[doc] {
		if !r.IsReviewed() {
			return true
		}
	}
	return false
}

// RecordCount is the total number of indexed records.
func (idx *Index) RecordCount() int {
	n := 0
	for _, recs := range idx.docs {
		n += len(recs)
	}
	return n
}

// Summaries reports review progress per document, in document order.
func (idx *Index) Summaries() []models.DocumentSummary {
	out := make([]models.DocumentSummary, 0, len(idx.order))
	for i, doc := range idx.order {
		s := models.DocumentSummary{Position: i, Document: doc}
		for _, r := range idx.docs[doc] {
			s.Total++
			switch {
			case !r.IsReviewed():
				s.Unreviewed++
			case r.Checked() == models.StatusVerified:
				s.Verified++
			case r.Checked() == models.StatusRejected:
				s.Rejected++
			}
		}
		out = append(out, s)
	}
	return out
}

// Save writes every record as one JSON line, documents in order and records
// in insertion order. All fields of a record are written, interpreted or not.
func (idx *Index) Save(w io.Writer) error {
	for _, doc := range idx.order {
		for _, r := range idx.docs[doc] {
			line, err := r.MarshalJSON()
			if err != nil {
				return err
			}
			line = append(line, '\n')
			if _, err := w.Write(line); err != nil {
				return err
			}
		}
	}
	return nil
}

// Marshal returns the full serialized dataset.
func (idx *Index) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := idx.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
