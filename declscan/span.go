// Package declscan recovers builder-call declarations from layout component
// source text.
//
// Layout components declare their content shape with chained builder calls,
//
//	const CardSchema = z.object({ title: z.string().min(3) }).default({});
//
// and declscan's job is to find those declarations and capture each one's
// expression text. It deliberately does not parse the host language. The
// sources it sees are machine generated and frequently broken, so everything
// here is built on a character scanner that tracks paren depth, brace depth
// and string state, and that reports failure instead of guessing when the
// input never balances.
package declscan

// ExtractSpan captures the balanced expression starting at start, which must
// point at the head of a builder call such as "z.object(". The span runs
// through the first ')' that returns both paren and brace depth to zero, then
// extends across any chained modifier calls (.min, .max, .optional, .default)
// that immediately follow. It reports false when the text hits a top-level
// ';' or newline, or runs out, before the expression balances.
func ExtractSpan(text string, start int) (string, bool) {
	end, ok := scanExpr(text, start)
	if !ok {
		return "", false
	}
	for {
		next, ok := scanModifier(text, end)
		if !ok {
			break
		}
		end = next
	}
	return text[start:end], true
}

// Balanced scans the group opened at start, which must point at '(' or '{',
// and returns the index just past the matching closer. Nested groups and
// quoted strings inside the group are skipped over; false means the group
// never closes.
func Balanced(text string, start int) (int, bool) {
	if start >= len(text) {
		return 0, false
	}
	switch text[start] {
	case '(', '{':
	default:
		return 0, false
	}
	return scanGroup(text, start)
}

// SplitTop splits text at every occurrence of sep that sits at paren and
// brace depth zero outside of any string. Separators inside nested groups or
// quotes are left alone, so splitting an object body on ',' yields one part
// per field even when field values are whole nested builder calls.
func SplitTop(text string, sep byte) []string {
	var parts []string
	var sc scanner
	mark := 0
	for i := 0; i < len(text); i++ {
		if !sc.step(text[i]) {
			continue
		}
		if text[i] == sep && sc.depthZero() {
			parts = append(parts, text[mark:i])
			mark = i + 1
		}
	}
	return append(parts, text[mark:])
}

// CutTop splits text around the first top-level occurrence of sep, in the
// manner of strings.Cut.
func CutTop(text string, sep byte) (before, after string, found bool) {
	var sc scanner
	for i := 0; i < len(text); i++ {
		if !sc.step(text[i]) {
			continue
		}
		if text[i] == sep && sc.depthZero() {
			return text[:i], text[i+1:], true
		}
	}
	return text, "", false
}

// scanner is the shared depth and string bookkeeping used by every routine in
// this package. step consumes one byte and reports whether it was structural,
// i.e. not part of a quoted string.
type scanner struct {
	parens  int
	braces  int
	quote   byte
	escaped bool
}

func (s *scanner) step(c byte) bool {
	if s.quote != 0 {
		switch {
		case s.escaped:
			s.escaped = false
		case c == '\\':
			s.escaped = true
		case c == s.quote:
			s.quote = 0
		}
		return false
	}
	switch c {
	case '\'', '"', '`':
		s.quote = c
	case '(':
		s.parens++
	case ')':
		s.parens--
	case '{':
		s.braces++
	case '}':
		s.braces--
	}
	return true
}

func (s *scanner) depthZero() bool { return s.parens == 0 && s.braces == 0 }

// scanExpr advances from the head of a builder call until the call's argument
// list closes. Statement boundaries at depth zero, or depth counters going
// negative, mean the declaration is malformed and there is no span.
func scanExpr(text string, start int) (int, bool) {
	var sc scanner
	for i := start; i < len(text); i++ {
		c := text[i]
		if !sc.step(c) {
			continue
		}
		switch c {
		case ')':
			if sc.parens == 0 && sc.braces == 0 {
				return i + 1, true
			}
			if sc.parens < 0 {
				return 0, false
			}
		case '}':
			if sc.braces < 0 {
				return 0, false
			}
		case ';', '\n':
			if sc.depthZero() {
				return 0, false
			}
		}
	}
	return 0, false
}

// scanGroup is scanExpr for a single group: start sits on the opener and the
// scan ends when that opener's depth returns to zero.
func scanGroup(text string, start int) (int, bool) {
	var sc scanner
	closer := byte(')')
	if text[start] == '{' {
		closer = '}'
	}
	for i := start; i < len(text); i++ {
		c := text[i]
		if !sc.step(c) {
			continue
		}
		if c == closer && sc.depthZero() {
			return i + 1, true
		}
		if sc.parens < 0 || sc.braces < 0 {
			return 0, false
		}
	}
	return 0, false
}

// modifierCalls is the chain vocabulary a span may extend across. Anything
// else ends the span, which keeps the extractor from swallowing unrelated
// statements when a declaration is immediately followed by more code.
var modifierCalls = map[string]bool{
	"min":      true,
	"max":      true,
	"optional": true,
	"default":  true,
}

// scanModifier tries to consume one chained modifier call at pos, returning
// the index just past its closing paren.
func scanModifier(text string, pos int) (int, bool) {
	i := skipSpace(text, pos)
	if i >= len(text) || text[i] != '.' {
		return 0, false
	}
	j := i + 1
	for j < len(text) && isIdentByte(text[j]) {
		j++
	}
	if !modifierCalls[text[i+1:j]] {
		return 0, false
	}
	k := skipSpace(text, j)
	if k >= len(text) || text[k] != '(' {
		return 0, false
	}
	return scanGroup(text, k)
}

func skipSpace(text string, i int) int {
	for i < len(text) {
		switch text[i] {
		case ' ', '\t', '\r', '\n':
			i++
		default:
			return i
		}
	}
	return i
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
