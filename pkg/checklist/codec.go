// Package checklist converts note collections to and from the persisted
// markdown checklist:
//
//	# Audit Notes
//
//	## File: [src/Vault.sol](file:///home/me/proj/src/Vault.sol)
//
//	- [x] [Line 42](file:///home/me/proj/src/Vault.sol#42): TODO: check bounds
//
// The checkbox is the only per-note state persisted. Lines that are neither a
// file header nor a note line are ignored when decoding, so the document can
// be edited by hand.
package checklist

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/aretw0/auditnotes/pkg/core"
)

// Title is the first line of every encoded document.
const Title = "# Audit Notes"

var (
	headerPattern = regexp.MustCompile(`^## File: \[(.*?)\]\((\S+)\)\s*$`)
	notePattern   = regexp.MustCompile(`^- \[([xX ])\] \[Line (\d+)\]\((\S+?)\): (.*)$`)
	// Notes written without a checkbox by earlier versions.
	legacyPattern = regexp.MustCompile(`^- \[Line (\d+)\]\((\S+?)\): (.*)$`)
)

// Encode renders c as a checklist document.
func Encode(c *core.Collection) string {
	var b strings.Builder
	b.WriteString(Title + "\n\n")

	for _, f := range c.Files() {
		loc := Locator(f.Identity)
		b.WriteString("## File: [" + f.Display + "](" + loc + ")\n\n")

		for _, n := range f.Notes {
			box := " "
			if n.Checked {
				box = "x"
			}
			line := strconv.Itoa(n.Line)
			b.WriteString("- [" + box + "] [Line " + line + "](" + loc + "#" + line + "): " + n.Content + "\n\n")
		}
	}
	return b.String()
}

// Decode parses a checklist document.
//
// The returned collection is never nil. When text is not blank but contains
// no header or note line at all, Decode returns an empty collection together
// with core.ErrMalformedDocument; callers should treat that as a warning.
// Decoded notes carry core.KindNote since kinds are not persisted.
func Decode(text string) (*core.Collection, error) {
	c := core.NewCollection()

	var (
		current    string
		display    string
		recognized bool
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSuffix(raw, "\r")

		if m := headerPattern.FindStringSubmatch(line); m != nil {
			display = m[1]
			current = Identity(m[2])
			recognized = true
			continue
		}

		note, ok := parseNote(line)
		if !ok {
			continue
		}
		recognized = true
		if current == "" {
			continue
		}
		c.Append(current, display, note)
	}

	if !recognized && strings.TrimSpace(text) != "" && strings.TrimSpace(text) != Title {
		return c, core.ErrMalformedDocument
	}
	return c, nil
}

func parseNote(line string) (core.Note, bool) {
	if m := notePattern.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return core.Note{}, false
		}
		return core.Note{
			Line:    n,
			Content: strings.TrimSpace(m[4]),
			Kind:    core.KindNote,
			Checked: m[1] == "x" || m[1] == "X",
		}, true
	}

	if m := legacyPattern.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return core.Note{}, false
		}
		return core.Note{Line: n, Content: strings.TrimSpace(m[3]), Kind: core.KindNote}, true
	}

	return core.Note{}, false
}

// Locator returns the link target written for a file identity.
// Absolute paths become file URLs; relative ones are only path-escaped.
func Locator(identity string) string {
	p := filepath.ToSlash(identity)
	if len(p) >= 2 && p[1] == ':' {
		p = "/" + p
	}
	if !strings.HasPrefix(p, "/") {
		return (&url.URL{Path: p}).String()
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// Identity maps a locator back to the file identity it was written for.
// Locators with a scheme other than file are returned unchanged.
func Identity(locator string) string {
	u, err := url.Parse(locator)
	if err != nil {
		return locator
	}
	switch u.Scheme {
	case "file":
		p := u.Path
		if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
			p = p[1:]
		}
		return filepath.FromSlash(p)
	case "":
		if u.Path == "" {
			return locator
		}
		return filepath.FromSlash(u.Path)
	}
	return locator
}
