// Package session tracks which document a reviewer is looking at.
//
// A Session is either positioned on a document or Done. Done means no
// document is selected, which happens once every record in the dataset has
// a review status. Navigation never fails: out-of-range moves are no-ops and
// moving past the last document searches for remaining work.
package session

// Catalog is the view of the dataset navigation needs.
type Catalog interface {
	Len() int
	DocumentAt(i int) (string, bool)
	Position(doc string) int
	HasUnreviewed(doc string) bool
}

// Session is a cursor over the ordered documents of a Catalog.
// It is not safe for concurrent use; callers hold the service lock.
type Session struct {
	catalog Catalog
	current string
	done    bool
}

// New returns a session positioned by FindNextUnreviewed.
func New(catalog Catalog) *Session {
	s := &Session{catalog: catalog}
	s.FindNextUnreviewed()
	return s
}

// Current returns the selected document. ok is false when the session is
// Done. A cursor left stale by a reload is repaired first.
func (s *Session) Current() (doc string, ok bool) {
	if !s.done && s.catalog.Position(s.current) < 0 {
		s.FindNextUnreviewed()
	}
	if s.done {
		return "", false
	}
	return s.current, true
}

// Done reports whether no document is selected.
func (s *Session) Done() bool {
	_, ok := s.Current()
	return !ok
}

// Position is the index of the current document, or -1 when Done.
func (s *Session) Position() int {
	doc, ok := s.Current()
	if !ok {
		return -1
	}
	return s.catalog.Position(doc)
}

// FindNextUnreviewed selects the first document, in order, that has a record
// without a review status. When there is none the session becomes Done.
func (s *Session) FindNextUnreviewed() (string, bool) {
	for i := 0; i < s.catalog.Len(); i++ {
		doc, _ := s.catalog.DocumentAt(i)
		if s.catalog.HasUnreviewed(doc) {
			s.moveTo(doc)
			return doc, true
		}
	}
	s.current = ""
	s.done = true
	return "", false
}

// Advance moves to the next document. From the last document, from Done, or
// from a stale cursor it falls back to FindNextUnreviewed, which may select
// an earlier document or end the session.
func (s *Session) Advance() (string, bool) {
	pos := s.position()
	if pos < 0 || pos >= s.catalog.Len()-1 {
		return s.FindNextUnreviewed()
	}
	doc, _ := s.catalog.DocumentAt(pos + 1)
	s.moveTo(doc)
	return doc, true
}

// Retreat moves to the previous document. It is a no-op on the first
// document and while Done. A stale cursor falls back to FindNextUnreviewed.
func (s *Session) Retreat() (string, bool) {
	if s.done {
		return "", false
	}
	pos := s.position()
	if pos < 0 {
		return s.FindNextUnreviewed()
	}
	if pos > 0 {
		doc, _ := s.catalog.DocumentAt(pos - 1)
		s.moveTo(doc)
	}
	return s.current, true
}

// Goto selects the document at position i and reports whether it moved.
// Out-of-range positions leave the cursor unchanged, except that a stale
// cursor is repaired through FindNextUnreviewed.
func (s *Session) Goto(i int) bool {
	doc, ok := s.catalog.DocumentAt(i)
	if !ok {
		if !s.done && s.position() < 0 {
			s.FindNextUnreviewed()
		}
		return false
	}
	s.moveTo(doc)
	return true
}

// Rebind swaps in a freshly loaded catalog. The cursor is kept when its
// document still exists; otherwise the next navigation call repairs it.
// A Done session is re-evaluated, since new records may need review.
func (s *Session) Rebind(catalog Catalog) {
	s.catalog = catalog
	if s.done {
		s.FindNextUnreviewed()
	}
}

func (s *Session) moveTo(doc string) {
	s.current = doc
	s.done = false
}

// position is the raw cursor index without repair: -1 when Done or stale.
func (s *Session) position() int {
	if s.done {
		return -1
	}
	return s.catalog.Position(s.current)
}
