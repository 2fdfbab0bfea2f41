package argspec

import "strings"

// Cursor is a position counter over an immutable token list. The token
// slice is never modified; only the position advances, which keeps every
// parse loop strictly monotonic. Misuse (consuming past the end) is a
// defect in the engine, not a reportable input condition.
type Cursor struct {
	tokens   []string
	position int
}

// NewCursor creates a cursor over the given tokens. The slice is not
// copied; callers must not mutate it while the cursor is live.
func NewCursor(tokens []string) *Cursor {
	return &Cursor{tokens: tokens}
}

// Position returns the current index into the token list.
func (c *Cursor) Position() int {
	return c.position
}

// Remaining returns the number of unconsumed tokens.
func (c *Cursor) Remaining() int {
	return len(c.tokens) - c.position
}

// AtEnd reports whether every token has been consumed.
func (c *Cursor) AtEnd() bool {
	return c.position >= len(c.tokens)
}

// Current returns the token at the cursor without consuming it.
// The second return is false when the cursor is exhausted.
func (c *Cursor) Current() (string, bool) {
	return c.Peek(0)
}

// Peek returns the token offset positions ahead without consuming it.
func (c *Cursor) Peek(offset int) (string, bool) {
	idx := c.position + offset
	if idx < 0 || idx >= len(c.tokens) {
		return "", false
	}
	return c.tokens[idx], true
}

// PeekN returns up to count upcoming tokens without consuming them. It
// returns fewer than requested, never failing, when the input is short.
func (c *Cursor) PeekN(count int) []string {
	if count <= 0 || c.AtEnd() {
		return nil
	}
	end := c.position + count
	if end > len(c.tokens) {
		end = len(c.tokens)
	}
	return c.tokens[c.position:end]
}

// Advance moves the cursor forward by count positions, clamped to the end.
func (c *Cursor) Advance(count int) {
	c.position += count
	if c.position > len(c.tokens) {
		c.position = len(c.tokens)
	}
}

// Consume returns the current token and advances past it.
func (c *Cursor) Consume() (string, error) {
	if c.AtEnd() {
		return "", newDefect("consume past end of input at position %d", c.position)
	}
	tok := c.tokens[c.position]
	c.position++
	return tok, nil
}

// ConsumeN returns the next count tokens and advances past them.
func (c *Cursor) ConsumeN(count int) ([]string, error) {
	if count < 0 || c.Remaining() < count {
		return nil, newDefect("consume %d tokens with %d remaining", count, c.Remaining())
	}
	tokens := c.tokens[c.position : c.position+count]
	c.position += count
	return tokens, nil
}

// ConsumeIfEquals consumes the current token iff it equals tok.
func (c *Cursor) ConsumeIfEquals(tok string) bool {
	if cur, ok := c.Current(); ok && cur == tok {
		c.position++
		return true
	}
	return false
}

// ConsumeIfPrefix consumes and returns the current token iff it starts
// with prefix.
func (c *Cursor) ConsumeIfPrefix(prefix string) (string, bool) {
	if cur, ok := c.Current(); ok && strings.HasPrefix(cur, prefix) {
		c.position++
		return cur, true
	}
	return "", false
}

// ConsumeRemaining returns every unconsumed token and exhausts the cursor.
func (c *Cursor) ConsumeRemaining() []string {
	tokens := c.tokens[c.position:]
	c.position = len(c.tokens)
	return tokens
}
