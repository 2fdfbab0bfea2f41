package argspec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCursorBasicOps(t *testing.T) {
	c := NewCursor([]string{"a", "b", "c", "d"})

	if tok, ok := c.Current(); !ok || tok != "a" {
		t.Fatalf("Current = %q, %v", tok, ok)
	}
	if tok, ok := c.Peek(2); !ok || tok != "c" {
		t.Fatalf("Peek(2) = %q, %v", tok, ok)
	}
	if _, ok := c.Peek(10); ok {
		t.Fatal("Peek past end should report not-ok")
	}

	tok, err := c.Consume()
	if err != nil || tok != "a" {
		t.Fatalf("Consume = %q, %v", tok, err)
	}
	if c.Position() != 1 || c.Remaining() != 3 {
		t.Fatalf("position %d remaining %d", c.Position(), c.Remaining())
	}
}

func TestCursorPeekNShortInput(t *testing.T) {
	c := NewCursor([]string{"a", "b"})
	got := c.PeekN(5)
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("PeekN mismatch (-want +got):\n%s", diff)
	}
	if c.Position() != 0 {
		t.Error("PeekN must not advance the cursor")
	}
}

func TestCursorConsumeN(t *testing.T) {
	c := NewCursor([]string{"a", "b", "c"})
	got, err := c.ConsumeN(2)
	if err != nil {
		t.Fatalf("ConsumeN: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("ConsumeN mismatch (-want +got):\n%s", diff)
	}

	if _, err := c.ConsumeN(2); err == nil {
		t.Fatal("ConsumeN past end should fail")
	}
}

func TestCursorExhaustionIsDefect(t *testing.T) {
	c := NewCursor(nil)
	_, err := c.Consume()
	defect := &DefectError{}
	if !errors.As(err, &defect) {
		t.Fatalf("expected DefectError, got %T: %v", err, err)
	}
}

func TestCursorConditionalConsume(t *testing.T) {
	c := NewCursor([]string{"--", "-x", "rest"})

	if !c.ConsumeIfEquals("--") {
		t.Fatal("ConsumeIfEquals should consume the separator")
	}
	if c.ConsumeIfEquals("--") {
		t.Fatal("ConsumeIfEquals should not consume -x")
	}
	if tok, ok := c.ConsumeIfPrefix("-"); !ok || tok != "-x" {
		t.Fatalf("ConsumeIfPrefix = %q, %v", tok, ok)
	}

	rest := c.ConsumeRemaining()
	if diff := cmp.Diff([]string{"rest"}, rest); diff != "" {
		t.Errorf("ConsumeRemaining mismatch (-want +got):\n%s", diff)
	}
	if !c.AtEnd() {
		t.Error("cursor should be exhausted")
	}
}

func TestCursorAdvanceClamps(t *testing.T) {
	c := NewCursor([]string{"a"})
	c.Advance(10)
	if !c.AtEnd() || c.Position() != 1 {
		t.Errorf("Advance should clamp to end, position = %d", c.Position())
	}
}
