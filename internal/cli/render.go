// Package cli provides the console rendering helpers used by the commands.
// Common styles are defined as package-level variables for reuse.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/inovacc/starkeep/internal/model"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Success renders a green check-marked message.
func Success(format string, args ...any) string {
	return successStyle.Render("✓") + " " + fmt.Sprintf(format, args...)
}

// Failure renders a red cross-marked message.
func Failure(format string, args ...any) string {
	return errorStyle.Render("✗") + " " + fmt.Sprintf(format, args...)
}

// Header renders a bold section header.
func Header(text string) string {
	return headerStyle.Render(text)
}

// Dim renders de-emphasized detail text.
func Dim(text string) string {
	return dimStyle.Render(text)
}

// RepoLine renders one repository for list output.
func RepoLine(r *model.Repository) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(r.FullName))

	if r.Language != "" {
		b.WriteString(" " + dimStyle.Render("["+r.Language+"]"))
	}

	b.WriteString(fmt.Sprintf(" ★ %d", r.Stars))

	if r.Archived {
		b.WriteString(" " + errorStyle.Render("(archived)"))
	}

	if r.Description != "" {
		b.WriteString("\n  " + dimStyle.Render(r.Description))
	}

	return b.String()
}

// BackupLine renders one backup meta record for list output.
func BackupLine(m *model.BackupMeta) string {
	line := fmt.Sprintf("%s  %s  %d repos",
		headerStyle.Render(m.ID),
		m.CreatedAt.Format("2006-01-02 15:04:05"),
		m.Count,
	)

	if len(m.Tags) > 0 {
		line += " " + dimStyle.Render("["+strings.Join(m.Tags, ", ")+"]")
	}

	if m.Description != "" {
		line += "\n  " + dimStyle.Render(m.Description)
	}

	return line
}
