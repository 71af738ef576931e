// file: internal/scheme/evaluator.go
// version: 1.1.0
// guid: 2b3c4d5e-6f70-8192-a3b4-c5d6e7f80912

// Package scheme expands user-authored naming templates against metadata
// records. A scheme mixes literal text, %token% field references, and
// $func(...) calls; evaluation is a repeated regex-substitution expansion run
// to a fixed point, never a parsed AST.
package scheme

import (
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jdfalk/tagforge/internal/metadata"
)

// maxPasses caps re-expansion so cyclic or pathological schemes terminate.
const maxPasses = 20

var (
	reToken      = regexp.MustCompile(`%([a-zA-Z0-9_]+)%`)
	reMultiToken = regexp.MustCompile(`^(format|additional|source)(N([0-9]+)?)?$`)
	reFuncName   = regexp.MustCompile(`^[a-zA-Z0-9_]+`)
)

var titleCaser = cases.Title(language.Und)

// Evaluate expands scheme against md. Unresolvable tokens and malformed
// function calls expand to the empty string; Evaluate never fails.
func Evaluate(scheme string, md *metadata.Record) string {
	if md == nil {
		md = metadata.NewRecord()
	}
	text := scheme
	for i := 0; i < maxPasses; i++ {
		next := evalOnce(text, md)
		if next == text {
			break
		}
		text = next
	}
	return text
}

// evalOnce runs one expansion pass: functions first, then tokens. Function
// calls must see their argument lists before token substitution, because a
// field value may itself contain a comma ("New York, NY") and must not split
// the arguments.
func evalOnce(text string, md *metadata.Record) string {
	text = expandFunctions(text, md)
	return expandTokens(text, md)
}

func expandTokens(text string, md *metadata.Record) string {
	return reToken.ReplaceAllStringFunc(text, func(tok string) string {
		name := strings.ToLower(tok[1 : len(tok)-1])
		if m := reMultiToken.FindStringSubmatch(name); m != nil {
			base := m[1]
			values := md.GetList(base)
			switch {
			case m[2] == "":
				// %format%: the primary value.
				return md.Get(base)
			case m[3] == "":
				// %formatN%: every value, comma-joined.
				return strings.Join(values, ", ")
			default:
				// %formatN3%: the 1-based k-th value.
				idx, err := strconv.Atoi(m[3])
				if err != nil || idx < 1 || idx > len(values) {
					return ""
				}
				return values[idx-1]
			}
		}
		if vs := md.GetList(name); len(vs) > 1 {
			return strings.Join(vs, ", ")
		}
		return md.Get(name)
	})
}

// expandFunctions rewrites every $name(args) call in text. Argument lists are
// split on top-level commas only, so nested calls survive intact, and each
// argument is recursively evaluated before the function runs. A call with no
// matching close paren is left as literal text.
func expandFunctions(text string, md *metadata.Record) string {
	var out strings.Builder
	i := 0
	for i < len(text) {
		c := text[i]
		if c != '$' {
			out.WriteByte(c)
			i++
			continue
		}
		rest := text[i+1:]
		name := reFuncName.FindString(rest)
		if name == "" || len(rest) <= len(name) || rest[len(name)] != '(' {
			out.WriteByte(c)
			i++
			continue
		}
		inner, end, ok := matchParens(rest[len(name):])
		if !ok {
			out.WriteByte(c)
			i++
			continue
		}
		args := splitArgs(inner)
		for k := range args {
			args[k] = Evaluate(args[k], md)
		}
		out.WriteString(applyFunc(strings.ToLower(name), args))
		i += 1 + len(name) + end
	}
	return out.String()
}

// matchParens expects s to begin with '(' and returns the balanced inner text
// plus the index just past the closing paren.
func matchParens(s string) (inner string, end int, ok bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[1:i], i + 1, true
			}
		}
	}
	return "", 0, false
}

// splitArgs splits on commas at paren depth zero, trimming each piece.
func splitArgs(argstr string) []string {
	var args []string
	var current strings.Builder
	depth := 0
	for i := 0; i < len(argstr); i++ {
		c := argstr[i]
		if c == ',' && depth == 0 {
			args = append(args, strings.TrimSpace(current.String()))
			current.Reset()
			continue
		}
		if c == '(' {
			depth++
		} else if c == ')' {
			depth--
		}
		current.WriteByte(c)
	}
	if current.Len() > 0 {
		args = append(args, strings.TrimSpace(current.String()))
	}
	return args
}

// applyFunc executes one template function. Unknown names and arity
// mismatches yield the empty string.
func applyFunc(name string, args []string) string {
	switch name {
	case "upper":
		if len(args) == 1 {
			return strings.ToUpper(args[0])
		}
	case "lower":
		if len(args) == 1 {
			return strings.ToLower(args[0])
		}
	case "title":
		if len(args) == 1 {
			return titleCaser.String(args[0])
		}
	case "substr":
		if len(args) == 2 || len(args) == 3 {
			start, err := strconv.Atoi(args[1])
			if err != nil {
				return ""
			}
			if len(args) == 2 {
				return sliceFrom(args[0], start)
			}
			end, err := strconv.Atoi(args[2])
			if err != nil {
				return ""
			}
			return sliceRange(args[0], start, end)
		}
	case "left":
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 0 {
				return ""
			}
			r := []rune(args[0])
			if n > len(r) {
				n = len(r)
			}
			return string(r[:n])
		}
	case "right":
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 0 {
				return ""
			}
			r := []rune(args[0])
			if n > len(r) {
				n = len(r)
			}
			return string(r[len(r)-n:])
		}
	case "replace":
		if len(args) == 3 {
			return strings.ReplaceAll(args[0], args[1], args[2])
		}
	case "len":
		if len(args) == 1 {
			return strconv.Itoa(utf8.RuneCountInString(args[0]))
		}
	case "pad":
		if len(args) == 2 || len(args) == 3 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 0 {
				return ""
			}
			fill := " "
			if len(args) == 3 && args[2] != "" {
				fill = string([]rune(args[2])[0])
			}
			r := []rune(args[0])
			if len(r) >= n {
				return string(r[:n])
			}
			return args[0] + strings.Repeat(fill, n-len(r))
		}
	case "add":
		if len(args) == 2 {
			return formatNum(toNum(args[0]) + toNum(args[1]))
		}
	case "sub":
		if len(args) == 2 {
			return formatNum(toNum(args[0]) - toNum(args[1]))
		}
	case "mul":
		if len(args) == 2 {
			return formatNum(toNum(args[0]) * toNum(args[1]))
		}
	case "div":
		if len(args) == 2 {
			denom := toNum(args[1])
			if denom == 0 {
				return "0"
			}
			return formatNum(toNum(args[0]) / denom)
		}
	case "eq":
		if len(args) == 2 {
			return boolStr(args[0] == args[1])
		}
	case "lt":
		if len(args) == 2 {
			return boolStr(toNum(args[0]) < toNum(args[1]))
		}
	case "gt":
		if len(args) == 2 {
			return boolStr(toNum(args[0]) > toNum(args[1]))
		}
	case "and":
		for _, a := range args {
			if a != "1" {
				return "0"
			}
		}
		return "1"
	case "or":
		for _, a := range args {
			if a == "1" {
				return "1"
			}
		}
		return "0"
	case "not":
		if len(args) == 1 {
			return boolStr(args[0] != "1")
		}
	case "datetime":
		if len(args) == 0 {
			return time.Now().Format("2006-01-02 15:04:05")
		}
	case "year":
		// Fixed character offsets into a YYYY-MM-DD string, deliberately not
		// real date parsing: schemes rely on the exact slicing.
		if len(args) == 1 {
			return sliceRange(args[0], 0, 4)
		}
	case "month":
		if len(args) == 1 {
			return sliceRange(args[0], 5, 7)
		}
	case "day":
		if len(args) == 1 {
			return sliceRange(args[0], 8, 10)
		}
	case "if":
		if len(args) == 3 {
			if args[0] == "1" {
				return args[1]
			}
			return args[2]
		}
	case "if2":
		if len(args) >= 2 {
			for _, v := range args[:len(args)-1] {
				if v != "" {
					return v
				}
			}
			return args[len(args)-1]
		}
	default:
		log.Printf("[DEBUG] scheme: unknown function $%s", name)
	}
	return ""
}

// toNum parses a float, treating anything unparseable as zero.
func toNum(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// formatNum renders without a trailing ".0" for whole values.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// sliceFrom is a bounds-tolerant s[start:] over codepoints.
func sliceFrom(s string, start int) string {
	r := []rune(s)
	if start < 0 {
		start += len(r)
		if start < 0 {
			start = 0
		}
	}
	if start >= len(r) {
		return ""
	}
	return string(r[start:])
}

// sliceRange is a bounds-tolerant s[start:end] over codepoints.
func sliceRange(s string, start, end int) string {
	r := []rune(s)
	if start < 0 {
		start += len(r)
		if start < 0 {
			start = 0
		}
	}
	if end < 0 {
		end += len(r)
	}
	if end > len(r) {
		end = len(r)
	}
	if start >= len(r) || end <= start {
		return ""
	}
	return string(r[start:end])
}
