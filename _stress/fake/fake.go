package fake

import (
	"fmt"
	"math/rand"
	"strings"
)

// Layout returns random builder-style layout source. Most results are well
// formed; roughly one in ten is prose with no declarations and one in ten is
// truncated mid-declaration, so ingestion keeps exercising the fallback and
// skip paths under load.
func Layout() string {
	switch rand.Intn(10) {
	case 0:
		return prose()
	case 1:
		src := source()
		return src[:2*len(src)/3]
	}
	return source()
}

func source() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "const layoutId = \"stress-%s\";\n", strings.ToLower(String(8)))
	fmt.Fprintf(b, "const layoutName = \"%s\";\n\n", String(12))

	if rand.Intn(2) == 0 {
		b.WriteString("const ItemSchema = z.object({\n")
		writeFields(b, 1, 2)
		b.WriteString("});\n\n")
		b.WriteString("const Schema = z.object({\n")
		b.WriteString("  title: z.string().min(3).max(80),\n")
		b.WriteString("  items: z.array(ItemSchema).min(1),\n")
		writeFields(b, 1, 3)
		b.WriteString("});\n")
	} else {
		b.WriteString("const Schema = z.object({\n")
		writeFields(b, 1, 3)
		b.WriteString("});\n")
	}
	return b.String()
}

func writeFields(b *strings.Builder, depth, maxDepth int) {
	n := 1 + rand.Intn(6)
	for i := 0; i < n; i++ {
		fmt.Fprintf(b, "%s%s: %s,\n", strings.Repeat("  ", depth), key(), expr(depth, maxDepth))
	}
}

func key() string {
	return strings.ToLower(String(1)) + String(rand.Intn(10))
}

func expr(depth, maxDepth int) string {
	roll := rand.Intn(100)
	switch {
	case roll < 35:
		return stringExpr()
	case roll < 50:
		return "z.number()" + maybeOptional()
	case roll < 60:
		return "z.boolean()" + maybeOptional()
	case roll < 70:
		return enumExpr()
	case roll < 85 && depth+1 < maxDepth:
		return arrayExpr(depth, maxDepth)
	case depth+1 < maxDepth:
		return objectExpr(depth, maxDepth)
	}
	return stringExpr()
}

func stringExpr() string {
	s := "z.string()"
	if rand.Intn(2) == 0 {
		lo := 1 + rand.Intn(10)
		s += fmt.Sprintf(".min(%d).max(%d)", lo, lo+rand.Intn(200))
	}
	if rand.Intn(4) == 0 {
		s += fmt.Sprintf(".describe(\"%s\")", String(16))
	}
	if rand.Intn(6) == 0 {
		s += fmt.Sprintf(".default(\"%s\")", String(6))
	}
	return s + maybeOptional()
}

func enumExpr() string {
	n := 2 + rand.Intn(4)
	opts := make([]string, n)
	for i := range opts {
		opts[i] = fmt.Sprintf("\"%s\"", strings.ToLower(String(6)))
	}
	return fmt.Sprintf("z.enum([%s])%s", strings.Join(opts, ", "), maybeOptional())
}

func arrayExpr(depth, maxDepth int) string {
	if rand.Intn(3) == 0 {
		return fmt.Sprintf("z.array(%s).min(1)", objectExpr(depth, maxDepth))
	}
	return "z.array(z.string())" + maybeOptional()
}

func objectExpr(depth, maxDepth int) string {
	b := &strings.Builder{}
	b.WriteString("z.object({\n")
	writeFields(b, depth+1, maxDepth)
	fmt.Fprintf(b, "%s})", strings.Repeat("  ", depth))
	return b.String()
}

func maybeOptional() string {
	if rand.Intn(4) == 0 {
		return ".optional()"
	}
	return ""
}

// prose mimics a source file that slipped past upstream filtering without any
// schema declarations in it.
func prose() string {
	words := make([]string, 20+rand.Intn(30))
	for i := range words {
		words[i] = strings.ToLower(String(2 + rand.Intn(9)))
	}
	return strings.Join(words, " ")
}

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func String(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
