package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Shape tells Normalize what kind of answer it is looking at.
type Shape string

const (
	ShapeAuto   Shape = "auto"
	ShapeName   Shape = "name"
	ShapeCount  Shape = "count"
	ShapeStatus Shape = "status"
	ShapeList   Shape = "list"
	ShapeText   Shape = "text"
)

// Shapes returns the accepted shape names.
func Shapes() []string {
	return []string{
		string(ShapeAuto), string(ShapeName), string(ShapeCount),
		string(ShapeStatus), string(ShapeList), string(ShapeText),
	}
}

// ParseShape maps a shape name to a Shape; unknown names are ShapeAuto.
func ParseShape(s string) Shape {
	switch sh := Shape(strings.ToLower(strings.TrimSpace(s))); sh {
	case ShapeName, ShapeCount, ShapeStatus, ShapeList, ShapeText:
		return sh
	default:
		return ShapeAuto
	}
}

// maxPhraseWords bounds the sentences auto mode reads a count or a status from.
const maxPhraseWords = 10

var (
	// leftmost-first: grouped thousands win over a plain digit run.
	integerRe    = regexp.MustCompile(`\d{1,3}(?:,\d{3})+|\d+`)
	groupedRe    = regexp.MustCompile(`\b\d{1,3}(?:,\d{3})+\b`)
	standaloneRe = regexp.MustCompile(`^\d+$`)
	countLineRe  = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$|^\d+(?:\s+[A-Za-z]+)?$`)
	listSplitRe  = regexp.MustCompile(`\s*(?:,|;|\n)\s*`)
)

var numberWords = map[string]int{
	"zero": 0, "none": 0, "no": 0,
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12,
}

// Normalize renders a raw oracle answer in canonical form: generated suffixes
// stripped from resource names, counts as bare integers, statuses as the
// platform's literal vocabulary, whitespace collapsed, and surrounding quotes
// and trailing periods removed. ShapeText keeps inner whitespace so log
// excerpts survive.
func Normalize(raw string, shape Shape) string {
	if shape == ShapeText {
		return strings.TrimSpace(raw)
	}

	if shape == ShapeList {
		return normalizeList(raw)
	}

	s := Clean(raw)
	if s == "" {
		return s
	}
	if shape == "" || shape == ShapeAuto {
		return normalizeAuto(s)
	}
	return normalizeAs(s, shape)
}

func normalizeAs(s string, shape Shape) string {
	switch shape {
	case ShapeCount:
		return normalizeCount(s)
	case ShapeStatus:
		if st, ok := findStatus(s); ok {
			return st
		}
		return s
	case ShapeName:
		return normalizeName(s)
	default:
		return s
	}
}

// normalizeAuto picks a shape for an answer of unknown shape. A single value
// is detected directly and several candidates reduce to the first. Within one
// sentence a generated resource name wins, then a lone number, then a trailing
// status word. Anything else is kept as text.
func normalizeAuto(s string) string {
	s = groupedRe.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ReplaceAll(m, ",", "")
	})
	if shape := DetectShape(s); shape != ShapeText {
		return normalizeAs(s, shape)
	}
	if candidates := splitCandidates(s); len(candidates) > 1 {
		return normalizeAuto(candidates[0])
	}
	if name, ok := GeneratedName(s); ok {
		return StripGeneratedSuffix(name)
	}

	words := phraseWords(s)
	if len(words) == 0 || len(words) > maxPhraseWords {
		return s
	}
	if n, ok := loneInteger(words); ok {
		return n
	}
	if st, ok := trailingStatus(words); ok {
		return st
	}
	return s
}

// GeneratedName returns the first token of s that carries a controller
// generated suffix, unmodified.
func GeneratedName(s string) (string, bool) {
	for _, w := range phraseWords(s) {
		if HasGeneratedSuffix(w) {
			return w, true
		}
	}
	return "", false
}

// phraseWords splits s into cleaned words without surrounding punctuation.
func phraseWords(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ',' || r == ';'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := Clean(strings.Trim(f, ".:!?()[]{}")); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func loneInteger(words []string) (string, bool) {
	found := ""
	for _, w := range words {
		if !standaloneRe.MatchString(w) {
			continue
		}
		if found != "" {
			return "", false
		}
		found = w
	}
	if found == "" {
		return "", false
	}
	return normalizeCount(found), true
}

func trailingStatus(words []string) (string, bool) {
	n := len(words)
	if n >= 2 {
		if st, ok := Status(words[n-2] + words[n-1]); ok {
			return st, true
		}
	}
	return Status(words[n-1])
}

// DetectShape guesses the shape of a cleaned answer.
func DetectShape(s string) Shape {
	s = Clean(s)
	switch {
	case s == "":
		return ShapeText
	case countLineRe.MatchString(s):
		return ShapeCount
	}
	if _, ok := Status(s); ok {
		return ShapeStatus
	}
	if !strings.ContainsAny(s, " \t\n,") && HasGeneratedSuffix(s) {
		return ShapeName
	}
	return ShapeText
}

// Clean collapses whitespace and strips wrapping quotes, backticks,
// emphasis markers and trailing periods.
func Clean(raw string) string {
	s := strings.Join(strings.Fields(raw), " ")
	for {
		prev := s
		s = strings.TrimSpace(s)
		s = strings.TrimSuffix(s, ".")
		s = trimWrapping(s)
		if s == prev {
			return s
		}
	}
}

func trimWrapping(s string) string {
	const wrappers = "\"'`*“”‘’"
	return strings.Trim(s, wrappers)
}

func normalizeCount(s string) string {
	if m := integerRe.FindString(s); m != "" {
		n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
		if err == nil {
			return strconv.Itoa(n)
		}
	}
	if items := splitCandidates(s); len(items) > 1 {
		return strconv.Itoa(len(items))
	}
	if fields := strings.Fields(strings.ToLower(s)); len(fields) > 0 {
		if n, ok := numberWords[fields[0]]; ok {
			return strconv.Itoa(n)
		}
	}
	return s
}

func normalizeName(s string) string {
	candidates := splitCandidates(s)
	if len(candidates) == 0 {
		return s
	}
	first := candidates[0]
	if strings.Contains(first, " ") {
		for _, tok := range strings.Fields(first) {
			tok = Clean(tok)
			if HasGeneratedSuffix(tok) {
				return StripGeneratedSuffix(tok)
			}
		}
		return first
	}
	return StripGeneratedSuffix(first)
}

func normalizeList(raw string) string {
	items := splitCandidates(raw)
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		v := Clean(item)
		if v == "" {
			continue
		}
		switch {
		case HasGeneratedSuffix(v):
			v = StripGeneratedSuffix(v)
		default:
			if st, ok := Status(v); ok {
				v = st
			}
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return strings.Join(out, ", ")
}

// splitCandidates splits an answer on commas, semicolons, newlines and a
// trailing "and", dropping empty items and markdown bullets.
func splitCandidates(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := listSplitRe.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(p, "and ")
		p = strings.TrimLeft(p, "-• ")
		p = Clean(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
