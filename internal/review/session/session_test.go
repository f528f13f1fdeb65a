package session

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// fakeCatalog maps document names to whether they still need review.
type fakeCatalog struct {
	docs       []string
	unreviewed map[string]bool
}

func newCatalog(docs ...string) *fakeCatalog {
	c := &fakeCatalog{docs: docs, unreviewed: make(map[string]bool)}
	for _, d := range docs {
		c.unreviewed[d] = true
	}
	return c
}

func (c *fakeCatalog) Len() int { return len(c.docs) }

func (c *fakeCatalog) DocumentAt(i int) (string, bool) {
	if i < 0 || i >= len(c.docs) {
		return "", false
	}
	return c.docs[i], true
}

func (c *fakeCatalog) Position(doc string) int {
	for i, d := range c.docs {
		if d == doc {
			return i
		}
	}
	return -1
}

func (c *fakeCatalog) HasUnreviewed(doc string) bool { return c.unreviewed[doc] }

func (c *fakeCatalog) reviewed(docs ...string) *fakeCatalog {
	for _, d := range docs {
		c.unreviewed[d] = false
	}
	return c
}

type SessionSuite struct {
	suite.Suite
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) requireAt(sess *Session, want string) {
	doc, ok := sess.Current()
	s.Require().True(ok, "expected session to be positioned")
	s.Require().Equal(want, doc)
}

// TestInitialPosition verifies the session starts on the first unreviewed document.
func (s *SessionSuite) TestInitialPosition() {
	s.Run("first document with unreviewed records", func() {
		sess := New(newCatalog("A", "B"))
		s.requireAt(sess, "A")
		s.Equal(0, sess.Position())
	})

	s.Run("skips fully reviewed documents", func() {
		sess := New(newCatalog("A", "B", "C").reviewed("A"))
		s.requireAt(sess, "B")
	})

	s.Run("everything reviewed is done", func() {
		sess := New(newCatalog("A", "B").reviewed("A", "B"))
		s.True(sess.Done())
		s.Equal(-1, sess.Position())
	})

	s.Run("empty catalog is done", func() {
		s.True(New(newCatalog()).Done())
	})
}

// TestAdvance verifies forward navigation and the wrap-around search.
func (s *SessionSuite) TestAdvance() {
	s.Run("moves to the next document regardless of status", func() {
		cat := newCatalog("A", "B", "C").reviewed("B")
		sess := New(cat)
		doc, ok := sess.Advance()
		s.True(ok)
		s.Equal("B", doc)
	})

	s.Run("from the last document finds earlier unreviewed work", func() {
		cat := newCatalog("A", "B", "C")
		sess := New(cat)
		s.True(sess.Goto(2))
		cat.reviewed("B", "C")

		doc, ok := sess.Advance()
		s.True(ok)
		s.Equal("A", doc)
	})

	s.Run("from the last document with nothing left is done", func() {
		cat := newCatalog("A", "B")
		sess := New(cat)
		s.True(sess.Goto(1))
		cat.reviewed("A", "B")

		_, ok := sess.Advance()
		s.False(ok)
		s.True(sess.Done())
	})

	s.Run("from done re-runs the search", func() {
		cat := newCatalog("A").reviewed("A")
		sess := New(cat)
		s.Require().True(sess.Done())

		cat.unreviewed["A"] = true
		doc, ok := sess.Advance()
		s.True(ok)
		s.Equal("A", doc)
	})
}

// TestRetreat verifies backward navigation bounds.
func (s *SessionSuite) TestRetreat() {
	s.Run("moves to the previous document", func() {
		sess := New(newCatalog("A", "B"))
		s.True(sess.Goto(1))
		doc, ok := sess.Retreat()
		s.True(ok)
		s.Equal("A", doc)
	})

	s.Run("no-op on the first document", func() {
		sess := New(newCatalog("A", "B"))
		doc, ok := sess.Retreat()
		s.True(ok)
		s.Equal("A", doc)
	})

	s.Run("no-op while done", func() {
		sess := New(newCatalog("A").reviewed("A"))
		_, ok := sess.Retreat()
		s.False(ok)
		s.True(sess.Done())
	})
}

// TestGoto verifies direct positioning and out-of-range handling.
func (s *SessionSuite) TestGoto() {
	sess := New(newCatalog("A", "B"))

	s.True(sess.Goto(1))
	s.requireAt(sess, "B")

	for _, i := range []int{-1, 2, 5} {
		s.False(sess.Goto(i))
		s.requireAt(sess, "B")
	}

	s.Run("from done an in-range goto reopens a reviewed document", func() {
		done := New(newCatalog("A").reviewed("A"))
		s.True(done.Goto(0))
		s.requireAt(done, "A")
	})
}

// TestStaleCursor verifies a cursor whose document vanished after a reload
// falls back to FindNextUnreviewed on any navigation.
func (s *SessionSuite) TestStaleCursor() {
	s.Run("current repairs the cursor", func() {
		sess := New(newCatalog("A", "B"))
		s.True(sess.Goto(1))

		sess.Rebind(newCatalog("C", "A").reviewed("C"))
		s.requireAt(sess, "A")
	})

	s.Run("retreat falls back", func() {
		sess := New(newCatalog("A", "B"))
		s.True(sess.Goto(1))
		sess.Rebind(newCatalog("X", "Y"))

		doc, ok := sess.Retreat()
		s.True(ok)
		s.Equal("X", doc)
	})

	s.Run("out-of-range goto falls back", func() {
		sess := New(newCatalog("A", "B"))
		s.True(sess.Goto(1))
		sess.Rebind(newCatalog("X", "Y").reviewed("X"))

		s.False(sess.Goto(9))
		s.requireAt(sess, "Y")
	})

	s.Run("advance falls back", func() {
		sess := New(newCatalog("A", "B"))
		sess.Rebind(newCatalog("X").reviewed("X"))

		_, ok := sess.Advance()
		s.False(ok)
		s.True(sess.Done())
	})

	s.Run("kept document keeps the cursor", func() {
		sess := New(newCatalog("A", "B"))
		s.True(sess.Goto(1))
		sess.Rebind(newCatalog("B", "A"))
		s.requireAt(sess, "B")
		s.Equal(0, sess.Position())
	})

	s.Run("done session is re-evaluated on rebind", func() {
		sess := New(newCatalog("A").reviewed("A"))
		sess.Rebind(newCatalog("A", "B"))
		s.requireAt(sess, "A")
	})
}
