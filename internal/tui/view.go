package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/lineage/internal/config"
)

type styles struct {
	title        lipgloss.Style
	root         lipgloss.Style
	member       lipgloss.Style
	cursor       lipgloss.Style
	relationship lipgloss.Style
	subtle       lipgloss.Style
	notice       lipgloss.Style
	errorText    lipgloss.Style
	confirm      lipgloss.Style
}

func newStyles(colors config.ColorScheme) styles {
	return styles{
		title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.Title)).MarginBottom(1),
		root:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.Accent)),
		member:       lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Normal)),
		cursor:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(colors.Accent)),
		relationship: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Relationship)),
		subtle:       lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Subtle)),
		notice:       lipgloss.NewStyle().Foreground(lipgloss.Color(colors.InfoFg)),
		errorText:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.ErrorFg)),
		confirm: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colors.Delete)).
			Padding(0, 1),
	}
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Family tree of " + m.svc.UID()))
	b.WriteString("\n")

	if m.mode == formMode && m.form != nil {
		b.WriteString(m.form.View())
		b.WriteString("\n")
		b.WriteString(m.styles.subtle.Render("ctrl+s save • esc cancel"))
		return b.String()
	}

	if len(m.rows) == 0 {
		b.WriteString(m.styles.subtle.Render("No members yet. Press a to add the root."))
		b.WriteString("\n")
	}
	for i, r := range m.rows {
		b.WriteString(m.renderRow(r, i == m.cursor))
		b.WriteString("\n")
	}

	if m.mode == deleteConfirmMode {
		b.WriteString("\n")
		b.WriteString(m.styles.confirm.Render(
			fmt.Sprintf("Delete %s and all descendants? (y/n)", m.selectedName())))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		if m.failed {
			b.WriteString(m.styles.errorText.Render(m.notice))
		} else {
			b.WriteString(m.styles.notice.Render(m.notice))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderRow(r row, selected bool) string {
	marker := "  "
	switch {
	case r.node.Collapsed && r.node.Hidden > 0:
		marker = "▸ "
	case len(r.node.Children) > 0:
		marker = "▾ "
	}

	name := r.node.Name
	switch {
	case selected:
		name = m.styles.cursor.Render(name)
	case r.depth == 0:
		name = m.styles.root.Render(name)
	default:
		name = m.styles.member.Render(name)
	}

	line := strings.Repeat("  ", r.depth) + marker + name
	if r.node.Relationship != "" {
		line += " " + m.styles.relationship.Render("("+r.node.Relationship+")")
	}
	if r.node.BirthDate != "" {
		line += " " + m.styles.subtle.Render(r.node.BirthDate)
	}
	if r.node.Collapsed && r.node.Hidden > 0 {
		line += " " + m.styles.subtle.Render(fmt.Sprintf("[+%d hidden]", r.node.Hidden))
	}
	return line
}
