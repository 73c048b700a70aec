// Package styles renders human-readable CLI output
package styles

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/thenoetrevino/lineage/internal/config"
	"github.com/thenoetrevino/lineage/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 72

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Born:", "Parent:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Notes"

	// Tree styles
	RootStyle         lipgloss.Style
	MemberStyle       lipgloss.Style
	RelationshipStyle lipgloss.Style
	BranchStyle       lipgloss.Style

	// Status styles
	CreateStyle  lipgloss.Style
	EditStyle    lipgloss.Style
	DeleteStyle  lipgloss.Style
	WarningStyle lipgloss.Style
)

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Accent)).
		Bold(true).
		MarginTop(1)

	RootStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	MemberStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	RelationshipStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Relationship))

	BranchStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Branch)).
		MarginRight(1)

	CreateStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Create))

	EditStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Edit))

	DeleteStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Delete))

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.WarningFg))
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// RenderTree draws the family tree with box-drawing connectors.
// Collapsed members show how many descendants are hidden.
func RenderTree(root *models.MemberNode) string {
	t := tree.Root(memberLabel(root, RootStyle)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(BranchStyle)
	addChildren(t, root)
	return t.String()
}

func addChildren(t *tree.Tree, node *models.MemberNode) {
	for _, child := range node.Children {
		if len(child.Children) == 0 {
			t.Child(memberLabel(child, MemberStyle))
			continue
		}
		sub := tree.Root(memberLabel(child, MemberStyle)).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(BranchStyle)
		addChildren(sub, child)
		t.Child(sub)
	}
}

func memberLabel(node *models.MemberNode, style lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(style.Render(node.Name))
	if node.Relationship != "" {
		b.WriteString(" ")
		b.WriteString(RelationshipStyle.Render("(" + node.Relationship + ")"))
	}
	if node.BirthDate != "" {
		b.WriteString(" ")
		b.WriteString(SubtitleStyle.Render(node.BirthDate))
	}
	if node.Collapsed && node.Hidden > 0 {
		b.WriteString(" ")
		b.WriteString(SubtitleStyle.Render(fmt.Sprintf("[+%d hidden]", node.Hidden)))
	}
	return b.String()
}

// RenderMemberCard renders one member's details in a bordered card
func RenderMemberCard(m *models.Member) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.Name))
	b.WriteString("\n")
	b.WriteString(RelationshipStyle.Render(m.Relationship))
	b.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			value = SubtitleStyle.Render("none")
		} else {
			value = ValueStyle.Render(value)
		}
		b.WriteString(LabelStyle.Render(label) + " " + value + "\n")
	}
	field("Born:", m.BirthDate)
	field("Parent:", m.Parent)
	field("Children:", strings.Join(m.Children, ", "))

	b.WriteString(SectionStyle.Render("Notes"))
	b.WriteString("\n")
	b.WriteString(RenderNotes(m.Notes, CardWidth-6))

	return CardStyle.Render(b.String())
}

// Cache Glamour renderers by width to avoid expensive re-creation
var (
	rendererCache sync.Map // map[int]*glamour.TermRenderer
)

// getRenderer returns a cached renderer for the given width
func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderNotes renders member notes as markdown, falling back to the raw text
func RenderNotes(notes string, width int) string {
	if notes == "" {
		return SubtitleStyle.Italic(true).Render("No notes")
	}

	renderer, err := getRenderer(width)
	if err == nil {
		rendered, err := renderer.Render(notes)
		if err == nil {
			return strings.TrimSpace(rendered)
		}
	}
	return notes
}
