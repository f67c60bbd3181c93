package layoutschema

import (
	"log/slog"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/valyala/fastjson"

	"github.com/rahilansari261/ai-slides-sub000/declscan"
)

// maxDepth bounds expression nesting during compilation. Reference cycles are
// caught by the visiting set; the depth ceiling covers degenerate inputs that
// nest without cycling.
const maxDepth = 64

// Result is the outcome of compiling one layout source.
type Result struct {
	// Doc is the schema document, never nil.
	Doc *openapi3.Schema
	// Main names the selected entry-point declaration, empty when the source
	// yielded none. It stays set when the declaration failed to compile and
	// the fallback was substituted, so callers can name the culprit.
	Main string
	// Fallback is set when Doc is the canonical fallback document.
	Fallback bool
	// Decls counts the declarations captured from the source.
	Decls int
	// Skipped counts candidate declarations dropped as unbalanced.
	Skipped int
}

// CompileSource compiles layout component source text into a schema document.
// It never fails: malformed declarations are skipped, unrecognized fragments
// degrade to permissive subschemas, and a source that yields nothing usable
// produces the fallback document with Fallback set.
func CompileSource(source string, opts ...declscan.Option) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("schema compilation panicked", "err", r)
			res = Result{Doc: FallbackDocument(), Fallback: true}
		}
	}()

	tbl := declscan.BuildTable(source, opts...)
	res.Decls = tbl.Len()
	res.Skipped = tbl.Skipped()

	name, text, ok := declscan.SelectMain(source, tbl, opts...)
	if !ok {
		slog.Warn("no schema declaration found, using fallback", "skipped", res.Skipped)
		res.Doc = FallbackDocument()
		res.Fallback = true
		return res
	}
	res.Main = name

	node := compileExpr(text, tbl, map[string]bool{name: true}, 0)
	if node.Kind() == KindUnknown {
		slog.Warn("main declaration did not compile, using fallback", "name", name)
		res.Doc = FallbackDocument()
		res.Fallback = true
		return res
	}
	res.Doc = normalizeNode(node)
	return res
}

// compileExpr compiles one type expression. visiting holds the names of
// declarations currently being inlined, so a reference back into that set is
// a cycle and compiles to UnknownNode instead of recursing forever.
func compileExpr(expr string, tbl *declscan.Table, visiting map[string]bool, depth int) Node {
	if depth > maxDepth {
		slog.Warn("schema nesting too deep", "depth", depth)
		return &UnknownNode{}
	}

	outer, ok := parseOuter(strings.TrimSpace(expr))
	if !ok {
		slog.Debug("unresolved fragment", "expr", head(expr))
		return &UnknownNode{}
	}

	switch outer.ctor {
	case ctorNone:
		return compileReference(outer.ref, tbl, visiting, depth)
	case ctorObject:
		return compileObject(outer.arg, tbl, visiting, depth)
	case ctorArray:
		return compileArray(outer, tbl, visiting, depth)
	case ctorString:
		return &StringNode{MinLength: outer.intBound("min"), MaxLength: outer.intBound("max")}
	case ctorNumber:
		return &NumberNode{Minimum: outer.floatBound("min"), Maximum: outer.floatBound("max")}
	case ctorBoolean:
		return &BoolNode{}
	case ctorEnum:
		return &EnumNode{Values: enumValues(outer.arg)}
	}
	slog.Debug("unrecognized constructor", "expr", head(expr))
	return &UnknownNode{}
}

// head trims an expression for log lines.
func head(expr string) string {
	expr = strings.TrimSpace(expr)
	if len(expr) > 48 {
		return expr[:48] + "..."
	}
	return expr
}

// compileReference inlines the declaration the identifier points at.
func compileReference(name string, tbl *declscan.Table, visiting map[string]bool, depth int) Node {
	text, ok := tbl.Lookup(name)
	if !ok {
		slog.Debug("reference to unknown declaration", "name", name)
		return &UnknownNode{}
	}
	if visiting[name] {
		slog.Warn("schema reference cycle", "name", name)
		return &UnknownNode{}
	}
	visiting[name] = true
	node := compileExpr(text, tbl, visiting, depth+1)
	delete(visiting, name)
	return node
}

// compileObject compiles an object-literal argument into an ObjectNode. The
// body splits into fields at top-level commas; a field is required unless its
// expression ends in .optional(). Fields without a name and value, such as
// spreads, are dropped. A duplicate name keeps its original position and
// takes the new value.
func compileObject(arg string, tbl *declscan.Table, visiting map[string]bool, depth int) Node {
	body, ok := objectBody(arg)
	if !ok {
		return &UnknownNode{}
	}

	obj := &ObjectNode{}
	index := make(map[string]int)
	for _, part := range declscan.SplitTop(body, ',') {
		if strings.TrimSpace(part) == "" {
			continue
		}
		rawName, rawExpr, found := declscan.CutTop(part, ':')
		if !found {
			slog.Debug("skipping unrecognized object member", "member", strings.TrimSpace(part))
			continue
		}
		name := fieldName(rawName)
		if name == "" {
			continue
		}
		expr := strings.TrimSpace(rawExpr)
		field := ObjectField{
			Name:     name,
			Value:    compileExpr(expr, tbl, visiting, depth+1),
			Required: !exprOptional(expr),
		}
		if i, seen := index[name]; seen {
			obj.Fields[i] = field
			continue
		}
		index[name] = len(obj.Fields)
		obj.Fields = append(obj.Fields, field)
	}
	return obj
}

// compileArray compiles a z.array(...) call. The count bounds come from the
// chain, the element type from the argument.
func compileArray(outer outerExpr, tbl *declscan.Table, visiting map[string]bool, depth int) Node {
	arr := &ArrayNode{
		MinItems: outer.intBound("min"),
		MaxItems: outer.intBound("max"),
	}
	if arg := strings.TrimSpace(outer.arg); arg != "" {
		arr.Items = compileExpr(arg, tbl, visiting, depth+1)
	}
	return arr
}

// exprOptional reports whether a field expression ends in .optional(), which
// removes the field from its object's required list.
func exprOptional(expr string) bool {
	outer, ok := parseOuter(expr)
	return ok && outer.optional()
}

// objectBody extracts the inner text of the object literal passed to
// z.object(...).
func objectBody(arg string) (string, bool) {
	s := strings.TrimSpace(arg)
	if s == "" || s[0] != '{' {
		return "", false
	}
	end, ok := declscan.Balanced(s, 0)
	if !ok {
		return "", false
	}
	return s[1 : end-1], true
}

// fieldName normalizes an object-literal key: quoted keys are unquoted, bare
// keys are trimmed, and anything else is rejected.
func fieldName(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 {
		switch s[0] {
		case '\'', '"', '`':
			if s[len(s)-1] == s[0] {
				return s[1 : len(s)-1]
			}
			return ""
		}
	}
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return ""
		}
	}
	return s
}

// enumValues parses the array-literal argument of z.enum(...). The argument
// is valid JSON in the common double-quoted case, so fastjson parses it
// directly; single-quoted or template-quoted literals fall back to a
// depth-aware split and unquote.
func enumValues(arg string) []string {
	s := strings.TrimSpace(arg)
	if s == "" {
		return nil
	}
	if v, err := fastjson.Parse(s); err == nil && v.Type() == fastjson.TypeArray {
		items, _ := v.Array()
		values := make([]string, 0, len(items))
		for _, item := range items {
			if b, err := item.StringBytes(); err == nil {
				values = append(values, string(b))
				continue
			}
			values = append(values, item.String())
		}
		return values
	}

	if s[0] != '[' || s[len(s)-1] != ']' {
		return nil
	}
	var values []string
	for _, part := range declscan.SplitTop(s[1:len(s)-1], ',') {
		val := strings.TrimSpace(part)
		if len(val) >= 2 {
			switch val[0] {
			case '\'', '"', '`':
				if val[len(val)-1] == val[0] {
					val = val[1 : len(val)-1]
				}
			}
		}
		if val != "" {
			values = append(values, val)
		}
	}
	return values
}
