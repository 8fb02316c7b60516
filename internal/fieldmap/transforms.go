package fieldmap

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"platform-adapter-service/internal/domain"
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes every markup tag from s.
func StripHTML(s string) string {
	return htmlTag.ReplaceAllString(s, "")
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n < 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func stringTransform(fn func(string) string) TransformFunc {
	return func(v any) any {
		if v == nil {
			return nil
		}
		return fn(domain.AsString(v))
	}
}

func numberTransform(fn func(decimal.Decimal) decimal.Decimal) TransformFunc {
	return func(v any) any {
		if v == nil {
			return nil
		}
		return fn(domain.AsDecimal(v)).InexactFloat64()
	}
}

var namedTransforms = map[string]TransformFunc{
	"uppercase": stringTransform(strings.ToUpper),
	"lowercase": stringTransform(strings.ToLower),
	"capitalize": stringTransform(func(s string) string {
		return cases.Title(language.Und).String(s)
	}),
	"trim":         stringTransform(strings.TrimSpace),
	"strip_html":   stringTransform(StripHTML),
	"truncate_60":  stringTransform(func(s string) string { return Truncate(s, 60) }),
	"truncate_150": stringTransform(func(s string) string { return Truncate(s, 150) }),
	"truncate_500": stringTransform(func(s string) string { return Truncate(s, 500) }),
	"multiply_100": numberTransform(func(d decimal.Decimal) decimal.Decimal { return d.Mul(decimal.NewFromInt(100)) }),
	"divide_100":   numberTransform(func(d decimal.Decimal) decimal.Decimal { return d.Div(decimal.NewFromInt(100)) }),
	"round_2":      numberTransform(func(d decimal.Decimal) decimal.Decimal { return d.Round(2) }),
	"to_number":    numberTransform(func(d decimal.Decimal) decimal.Decimal { return d }),
	"to_string":    stringTransform(func(s string) string { return s }),
	"join_comma":   joinTransform(", "),
	"first":        firstTransform,
}

func joinTransform(sep string) TransformFunc {
	return func(v any) any {
		if v == nil {
			return nil
		}
		if s, ok := v.(string); ok {
			return s
		}
		return strings.Join(domain.AsStrings(v), sep)
	}
}

func firstTransform(v any) any {
	items := domain.AsStrings(v)
	if len(items) == 0 {
		return nil
	}
	return items[0]
}

// Transform returns the named transform, if registered.
func Transform(name string) (TransformFunc, bool) {
	fn, ok := namedTransforms[strings.ToLower(name)]
	return fn, ok
}

// TransformNames lists the registered transform names in order.
func TransformNames() []string {
	out := make([]string, 0, len(namedTransforms))
	for name := range namedTransforms {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CompileExpr compiles an expression transform. The expression sees the mapped value
// as `value`; evaluation errors leave the value unchanged.
func CompileExpr(code string) (TransformFunc, error) {
	program, err := expr.Compile(code)
	if err != nil {
		return nil, fmt.Errorf("fieldmap: invalid expression %q: %w", code, err)
	}
	return exprTransform(program), nil
}

func exprTransform(program *vm.Program) TransformFunc {
	return func(v any) any {
		out, err := expr.Run(program, map[string]any{"value": v})
		if err != nil {
			return v
		}
		return out
	}
}
