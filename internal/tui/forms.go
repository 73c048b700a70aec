package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/lineage/internal/config"
)

// memberFormState holds the values a member form edits in place
type memberFormState struct {
	editing string // member being edited, empty when adding

	name         string
	parent       string
	relationship string
	birthDate    string
	notes        string
	confirm      bool
}

func (s *memberFormState) clear() {
	*s = memberFormState{}
}

// newMemberForm creates a huh form for adding or editing a member.
// The form writes through the pointers in state.
func newMemberForm(state *memberFormState, colors config.ColorScheme) *huh.Form {
	submit := "Add this member?"
	if state.editing != "" {
		submit = "Save changes to " + state.editing + "?"
	}

	fields := []huh.Field{
		huh.NewInput().
			Key("name").
			Title("Name").
			Placeholder("Enter full name...").
			CharLimit(100).
			Validate(requireName).
			Value(&state.name),

		huh.NewInput().
			Key("parent").
			Title("Parent").
			Description("Leave empty to make this member the root").
			CharLimit(100).
			Value(&state.parent),

		huh.NewInput().
			Key("relationship").
			Title("Relationship").
			Placeholder("Child").
			CharLimit(50).
			Value(&state.relationship),

		huh.NewInput().
			Key("birthDate").
			Title("Birth date").
			Placeholder("e.g. 1950-01-15").
			CharLimit(100).
			Value(&state.birthDate),

		huh.NewText().
			Key("notes").
			Title("Notes").
			Placeholder("Markdown is rendered in member cards...").
			CharLimit(2000).
			Lines(4).
			Value(&state.notes),

		huh.NewConfirm().
			Key("confirm").
			Title(submit).
			Affirmative("Yes").
			Negative("No").
			Value(&state.confirm),
	}

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(formTheme(colors)).
		WithKeyMap(formKeyMap()).
		WithShowHelp(false)
	return form
}

func requireName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name is required")
	}
	return nil
}

// formKeyMap adds shift+enter to the newline keys of text fields
func formKeyMap() *huh.KeyMap {
	keymap := huh.NewDefaultKeyMap()
	keymap.Text.NewLine = key.NewBinding(
		key.WithKeys("shift+enter", "alt+enter", "ctrl+j"),
		key.WithHelp("shift+enter / alt+enter / ctrl+j", "new line"),
	)
	return keymap
}

// formTheme matches huh's base theme to the configured colors
func formTheme(colors config.ColorScheme) *huh.Theme {
	t := huh.ThemeBase()

	accent := lipgloss.Color(colors.Accent)
	create := lipgloss.Color(colors.Create)
	subtle := lipgloss.Color(colors.Subtle)
	normal := lipgloss.Color(colors.Normal)
	errorColor := lipgloss.Color(colors.Delete)
	title := lipgloss.Color(colors.Title)

	t.Focused.Base = t.Focused.Base.BorderForeground(accent)
	t.Focused.Title = t.Focused.Title.Foreground(title).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(subtle)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errorColor)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errorColor)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(create)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(normal)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(accent).
		Bold(true)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(normal).
		Background(subtle)

	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(accent)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(subtle)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(accent)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = t.Blurred.Title.Foreground(subtle)

	return t
}
