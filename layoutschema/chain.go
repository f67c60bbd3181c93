package layoutschema

import (
	"strconv"
	"strings"

	"github.com/rahilansari261/ai-slides-sub000/declscan"
)

// ctorKind is the builder vocabulary. Classification happens once, when the
// call head is scanned, and everything downstream dispatches on the kind
// instead of re-matching constructor text.
type ctorKind int

const (
	ctorNone ctorKind = iota // not a constructor call
	ctorObject
	ctorArray
	ctorString
	ctorNumber
	ctorBoolean
	ctorEnum
	ctorUnknown // a call, but not one the vocabulary covers
)

func classifyCtor(name string) ctorKind {
	switch name {
	case "object":
		return ctorObject
	case "array":
		return ctorArray
	case "string":
		return ctorString
	case "number":
		return ctorNumber
	case "boolean":
		return ctorBoolean
	case "enum":
		return ctorEnum
	}
	return ctorUnknown
}

// outerExpr is the surface structure of one type expression: either a builder
// constructor call ("z.object({...})") or a reference to another declaration
// by identifier, followed in both cases by zero or more chained calls.
type outerExpr struct {
	ctor  ctorKind // ctorNone for references
	arg   string   // constructor argument text, parens stripped
	ref   string   // referenced identifier, empty for constructor calls
	chain []chainCall
}

// chainCall is one ".<name>(<arg>)" link.
type chainCall struct {
	name string
	arg  string
}

// parseOuter splits expr into head and chain. It reports false when the text
// is not a clean call chain: no parseable head, an argument list that never
// balances, or trailing junk after the last call.
func parseOuter(expr string) (outerExpr, bool) {
	var out outerExpr
	pos := 0

	if strings.HasPrefix(expr, "z") && peekDot(expr, 1) {
		name, argStart, ok := scanCallHead(expr, skipDot(expr, 1))
		if !ok {
			return out, false
		}
		end, ok := declscan.Balanced(expr, argStart)
		if !ok {
			return out, false
		}
		out.ctor = classifyCtor(name)
		out.arg = expr[argStart+1 : end-1]
		pos = end
	} else {
		j := scanIdent(expr, 0)
		if j == 0 {
			return out, false
		}
		out.ref = expr[:j]
		pos = j
	}

	for {
		i := skipSpace(expr, pos)
		if i >= len(expr) {
			return out, true
		}
		if expr[i] != '.' {
			return out, false
		}
		name, argStart, ok := scanCallHead(expr, i+1)
		if !ok {
			return out, false
		}
		end, ok := declscan.Balanced(expr, argStart)
		if !ok {
			return out, false
		}
		out.chain = append(out.chain, chainCall{name: name, arg: strings.TrimSpace(expr[argStart+1 : end-1])})
		pos = end
	}
}

// optional reports whether the chain ends in .optional() once .default(...)
// links are disregarded.
func (e outerExpr) optional() bool {
	for i := len(e.chain) - 1; i >= 0; i-- {
		switch e.chain[i].name {
		case "default":
			continue
		case "optional":
			return true
		default:
			return false
		}
	}
	return false
}

// intBound returns the last integer argument passed to the named chain call.
func (e outerExpr) intBound(name string) *int {
	for i := len(e.chain) - 1; i >= 0; i-- {
		if e.chain[i].name != name {
			continue
		}
		v, err := strconv.Atoi(numericPrefix(e.chain[i].arg))
		if err != nil {
			return nil
		}
		return &v
	}
	return nil
}

// floatBound returns the last numeric argument passed to the named chain
// call.
func (e outerExpr) floatBound(name string) *float64 {
	for i := len(e.chain) - 1; i >= 0; i-- {
		if e.chain[i].name != name {
			continue
		}
		v, err := strconv.ParseFloat(numericPrefix(e.chain[i].arg), 64)
		if err != nil {
			return nil
		}
		return &v
	}
	return nil
}

// numericPrefix trims a bound argument down to its leading number, so that
// ".min(3, { message: 'too short' })" still yields 3.
func numericPrefix(arg string) string {
	end := len(arg)
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		if c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E' ||
			('0' <= c && c <= '9') {
			continue
		}
		end = i
		break
	}
	return strings.TrimSpace(arg[:end])
}

// scanCallHead reads "<ident> (" starting at i and returns the method name
// and the index of the opening paren.
func scanCallHead(expr string, i int) (string, int, bool) {
	i = skipSpace(expr, i)
	j := scanIdent(expr, i)
	if j == i {
		return "", 0, false
	}
	k := skipSpace(expr, j)
	if k >= len(expr) || expr[k] != '(' {
		return "", 0, false
	}
	return expr[i:j], k, true
}

func scanIdent(expr string, i int) int {
	j := i
	for j < len(expr) && isIdentByte(expr[j]) {
		j++
	}
	if j > i && '0' <= expr[i] && expr[i] <= '9' {
		return i
	}
	return j
}

func peekDot(expr string, i int) bool {
	i = skipSpace(expr, i)
	return i < len(expr) && expr[i] == '.'
}

func skipDot(expr string, i int) int {
	i = skipSpace(expr, i)
	return i + 1
}

func skipSpace(expr string, i int) int {
	for i < len(expr) {
		switch expr[i] {
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
