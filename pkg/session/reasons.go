package session

import (
	"fmt"
	"strings"
)

// CommitType constants for semantic commits.
const (
	CommitTypeChore = "chore"
	CommitTypeDocs  = "docs"
)

// Footer marks commits made on behalf of the tool.
const Footer = "Generated-by: auditnotes"

const commitScope = "audit-notes"

// Change reasons passed to the store with core.WithChangeReason.
var (
	ReasonScan  = FormatChangeReason(CommitTypeChore, commitScope, "update checklist", "")
	ReasonSave  = FormatChangeReason(CommitTypeChore, commitScope, "save checklist", "")
	ReasonClear = FormatChangeReason(CommitTypeChore, commitScope, "clear checklist", "")
)

// FormatChangeReason builds a Conventional Commit message:
//
//	<type>(<scope>): <subject>
//
//	<body>
//
//	Generated-by: auditnotes
func FormatChangeReason(ctype, scope, subject, body string) string {
	var sb strings.Builder

	if ctype == "" {
		ctype = CommitTypeChore
	}
	sb.WriteString(ctype)

	if scope != "" {
		sb.WriteString("(")
		sb.WriteString(scope)
		sb.WriteString(")")
	}

	sb.WriteString(": ")
	sb.WriteString(subject)

	if body = strings.TrimSpace(body); body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(body)
	}

	sb.WriteString("\n\n")
	sb.WriteString(Footer)
	return sb.String()
}

func toggleReason(display string, line int, content string, checked bool) string {
	subject := "uncheck note"
	if checked {
		subject = "check note"
	}
	return FormatChangeReason(CommitTypeDocs, commitScope, subject, fmt.Sprintf("%s:%d %s", display, line, content))
}
