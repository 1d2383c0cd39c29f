package scan

import (
	"regexp"
	"sort"
	"strings"

	"github.com/aretw0/auditnotes/pkg/core"
)

// MarkerConfig lists the markers to look for.
//
// Markers that also appear in Checkable classify as core.KindTodo, all others
// as core.KindNote. A checkable marker missing from Markers is still matched.
type MarkerConfig struct {
	Markers   []string `yaml:"markers" json:"markers"`
	Checkable []string `yaml:"checkableMarkers" json:"checkableMarkers"`
}

// DefaultMarkerConfig returns the markers used when none are configured.
func DefaultMarkerConfig() MarkerConfig {
	return MarkerConfig{
		Markers:   []string{"TODO", "@note", "@audit-info", "@audit"},
		Checkable: []string{"TODO"},
	}
}

// Matcher classifies single lines of text. It is safe for concurrent use.
type Matcher struct {
	// classes are evaluated in order: checkable before informational.
	classes []markerClass
}

type markerClass struct {
	kind     core.Kind
	patterns []*regexp.Regexp
}

// NewMatcher compiles cfg. Markers are escaped before they are combined, so
// user supplied text never acts as a regular expression.
func NewMatcher(cfg MarkerConfig) *Matcher {
	var todos, notes []string
	seen := make(map[string]bool)

	add := func(marker string) {
		marker = strings.TrimSpace(marker)
		if marker == "" {
			return
		}
		key := marker
		if isKeyword(marker) {
			key = strings.ToLower(marker)
		}
		if seen[key] {
			return
		}
		seen[key] = true
		if isCheckable(marker, cfg.Checkable) {
			todos = append(todos, marker)
		} else {
			notes = append(notes, marker)
		}
	}

	for _, m := range cfg.Markers {
		add(m)
	}
	for _, m := range cfg.Checkable {
		add(m)
	}

	m := &Matcher{}
	if c, ok := compileClass(core.KindTodo, todos); ok {
		m.classes = append(m.classes, c)
	}
	if c, ok := compileClass(core.KindNote, notes); ok {
		m.classes = append(m.classes, c)
	}
	return m
}

// Classify reports whether line contains a marker and which kind it is.
func (m *Matcher) Classify(line string) (core.Kind, bool) {
	for _, c := range m.classes {
		for _, re := range c.patterns {
			if re.MatchString(line) {
				return c.kind, true
			}
		}
	}
	return "", false
}

// Empty reports whether the matcher has no markers at all.
func (m *Matcher) Empty() bool {
	return len(m.classes) == 0
}

func compileClass(kind core.Kind, markers []string) (markerClass, bool) {
	var keywords, symbols []string
	for _, m := range markers {
		if isKeyword(m) {
			keywords = append(keywords, m)
		} else {
			symbols = append(symbols, m)
		}
	}

	c := markerClass{kind: kind}
	if re := alternation(keywords, true); re != nil {
		c.patterns = append(c.patterns, re)
	}
	if re := alternation(symbols, false); re != nil {
		c.patterns = append(c.patterns, re)
	}
	return c, len(c.patterns) > 0
}

func alternation(markers []string, foldCase bool) *regexp.Regexp {
	if len(markers) == 0 {
		return nil
	}
	quoted := make([]string, len(markers))
	for i, m := range markers {
		quoted[i] = regexp.QuoteMeta(m)
	}
	// Longest first so "@audit-info" wins over "@audit".
	sort.SliceStable(quoted, func(i, j int) bool {
		return len(quoted[i]) > len(quoted[j])
	})
	expr := "(?:" + strings.Join(quoted, "|") + ")"
	if foldCase {
		expr = "(?i)" + expr
	}
	return regexp.MustCompile(expr)
}

// isKeyword reports whether marker is a plain word such as TODO or FIXME.
// Keywords match case-insensitively; symbolic markers such as @audit do not.
func isKeyword(marker string) bool {
	for _, r := range marker {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return marker != ""
}

func isCheckable(marker string, checkable []string) bool {
	for _, c := range checkable {
		c = strings.TrimSpace(c)
		if c == marker || (isKeyword(marker) && strings.EqualFold(c, marker)) {
			return true
		}
	}
	return false
}
