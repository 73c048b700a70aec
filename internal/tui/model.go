// Package tui implements lineage browse, an interactive family tree view
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/thenoetrevino/lineage/internal/config"
	"github.com/thenoetrevino/lineage/internal/models"
	treeservice "github.com/thenoetrevino/lineage/internal/services/tree"
)

// Timeout for a single service call
const timeoutDB = 30 * time.Second

type mode int

const (
	normalMode mode = iota
	formMode
	deleteConfirmMode
)

// row is one visible line of the tree
type row struct {
	node  *models.MemberNode
	depth int
}

// Model is the bubbletea model of the tree browser
type Model struct {
	ctx    context.Context
	svc    treeservice.Service
	colors config.ColorScheme
	styles styles
	logger *slog.Logger

	keys keyMap
	help help.Model

	rows   []row
	cursor int
	mode   mode

	form      *huh.Form
	formState memberFormState

	notice string
	failed bool

	width  int
	height int
}

// New creates a browser over one user's tree session
func New(ctx context.Context, svc treeservice.Service, colors config.ColorScheme, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Model{
		ctx:    ctx,
		svc:    svc,
		colors: colors,
		styles: newStyles(colors),
		logger: logger,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	m.reload("")
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// dbContext creates a child context with timeout for service calls
func (m *Model) dbContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, timeoutDB)
}

// reload rebuilds the visible rows, keeping the cursor on keep when it is
// still visible
func (m *Model) reload(keep string) {
	ctx, cancel := m.dbContext()
	defer cancel()

	if keep == "" {
		keep = m.selectedName()
	}

	m.rows = m.rows[:0]
	if root := m.svc.Hierarchy(ctx); root != nil {
		m.flatten(root, 0)
	}

	m.cursor = min(m.cursor, max(len(m.rows)-1, 0))
	for i, r := range m.rows {
		if r.node.Name == keep {
			m.cursor = i
			break
		}
	}
}

func (m *Model) flatten(node *models.MemberNode, depth int) {
	m.rows = append(m.rows, row{node: node, depth: depth})
	for _, child := range node.Children {
		m.flatten(child, depth+1)
	}
}

// selected returns the member under the cursor, nil for an empty tree
func (m *Model) selected() *models.MemberNode {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].node
}

func (m *Model) selectedName() string {
	if node := m.selected(); node != nil {
		return node.Name
	}
	return ""
}

func (m *Model) setNotice(msg string) {
	m.notice = msg
	m.failed = false
}

func (m *Model) setError(action string, err error) {
	m.logger.Error("browse "+action+" failed", "uid", m.svc.UID(), "error", err)
	m.notice = err.Error()
	m.failed = true
}

// Run starts the browser in the alternate screen and blocks until it quits
func Run(ctx context.Context, svc treeservice.Service, colors config.ColorScheme, logger *slog.Logger) error {
	p := tea.NewProgram(New(ctx, svc, colors, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
