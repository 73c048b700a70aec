package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	treeservice "github.com/thenoetrevino/lineage/internal/services/tree"
)

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.help.Width = size.Width
	}

	// forms need every message, not just keys
	if m.mode == formMode {
		return m, m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.mode {
	case deleteConfirmMode:
		return m, m.updateDeleteConfirm(keyMsg)
	default:
		return m, m.updateNormal(keyMsg)
	}
}

func (m *Model) updateNormal(msg tea.KeyMsg) tea.Cmd {
	ctx, cancel := m.dbContext()
	defer cancel()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		node := m.selected()
		if node == nil {
			return nil
		}
		if err := m.svc.SetCollapsed(ctx, node.Name, !node.Collapsed); err != nil {
			m.setError("fold", err)
			return nil
		}
		m.reload(node.Name)

	case key.Matches(msg, m.keys.ExpandAll):
		if err := m.svc.ExpandAll(ctx); err != nil {
			m.setError("expand", err)
			return nil
		}
		m.reload("")
		m.setNotice("Expanded all members")

	case key.Matches(msg, m.keys.CollapseAll):
		if err := m.svc.CollapseAll(ctx); err != nil {
			m.setError("collapse", err)
			return nil
		}
		m.reload("")
		m.setNotice("Collapsed all members")

	case key.Matches(msg, m.keys.Add):
		m.formState.clear()
		m.formState.parent = m.selectedName()
		return m.openForm()

	case key.Matches(msg, m.keys.Edit):
		node := m.selected()
		if node == nil {
			return nil
		}
		member, err := m.svc.Member(ctx, node.Name)
		if err != nil {
			m.setError("edit", err)
			return nil
		}
		m.formState = memberFormState{
			editing:      member.Name,
			name:         member.Name,
			parent:       member.Parent,
			relationship: member.Relationship,
			birthDate:    member.BirthDate,
			notes:        member.Notes,
		}
		return m.openForm()

	case key.Matches(msg, m.keys.Delete):
		if m.selected() != nil {
			m.mode = deleteConfirmMode
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) updateDeleteConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		ctx, cancel := m.dbContext()
		defer cancel()

		name := m.selectedName()
		removed, err := m.svc.DeleteMember(ctx, name)
		m.mode = normalMode
		if err != nil {
			m.setError("delete", err)
			return nil
		}
		m.reload("")
		m.setNotice(fmt.Sprintf("Deleted %s (%d removed)", name, removed))
	case "n", "N", "esc":
		m.mode = normalMode
	}
	return nil
}

func (m *Model) openForm() tea.Cmd {
	m.form = newMemberForm(&m.formState, m.colors)
	m.mode = formMode
	m.notice = ""
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.formState.clear()
	m.mode = normalMode
}

// updateForm forwards msg to the open form, saving once it completes
func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.closeForm()
			m.setNotice("Cancelled")
			return nil
		case "ctrl+s":
			m.formState.confirm = true
			m.submitForm()
			return nil
		}
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitForm()
		return nil
	case huh.StateAborted:
		m.closeForm()
		return nil
	}
	return cmd
}

// submitForm saves the form values when the user confirmed, then closes it
func (m *Model) submitForm() {
	values := m.formState
	m.closeForm()
	if !values.confirm {
		return
	}

	ctx, cancel := m.dbContext()
	defer cancel()

	if values.editing == "" {
		member, err := m.svc.AddMember(ctx, treeservice.AddMemberRequest{
			Name:         values.name,
			Parent:       values.parent,
			Relationship: values.relationship,
			BirthDate:    values.birthDate,
			Notes:        values.notes,
		})
		if err != nil {
			m.setError("add", err)
			return
		}
		m.reload(member.Name)
		m.setNotice("Added " + member.Name)
		return
	}

	member, err := m.svc.EditMember(ctx, treeservice.EditMemberRequest{
		Name:         values.editing,
		NewName:      values.name,
		Parent:       values.parent,
		Relationship: values.relationship,
		BirthDate:    values.birthDate,
		Notes:        values.notes,
	})
	if err != nil {
		m.setError("edit", err)
		return
	}
	m.reload(member.Name)
	m.setNotice("Updated " + member.Name)
}
