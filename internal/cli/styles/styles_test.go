package styles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/lineage/internal/config"
	"github.com/thenoetrevino/lineage/internal/models"
)

func sampleTree() *models.MemberNode {
	return &models.MemberNode{
		Name:         "John Smith",
		Relationship: "Root",
		BirthDate:    "1950-01-15",
		Children: []*models.MemberNode{
			{Name: "Mary Smith", Relationship: "Spouse", Children: []*models.MemberNode{}},
			{
				Name:         "Alice Johnson",
				Relationship: "Child",
				Children: []*models.MemberNode{
					{Name: "Charlie Johnson", Relationship: "Child", Children: []*models.MemberNode{}},
				},
			},
			{Name: "Bob Smith", Relationship: "Child", Collapsed: true, Hidden: 2, Children: []*models.MemberNode{}},
		},
	}
}

func TestRenderTree(t *testing.T) {
	Init(config.MonochromeColorScheme())

	out := RenderTree(sampleTree())
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines[0], "John Smith")
	assert.Contains(t, lines[0], "(Root)")
	assert.Contains(t, out, "Mary Smith (Spouse)")
	assert.Contains(t, out, "Charlie Johnson")
	assert.Contains(t, out, "[+2 hidden]")
	assert.Contains(t, out, "╰──")

	// grandchildren are indented further than children
	var alice, charlie int
	for _, line := range lines {
		if i := strings.Index(line, "Alice Johnson"); i >= 0 {
			alice = i
		}
		if i := strings.Index(line, "Charlie Johnson"); i >= 0 {
			charlie = i
		}
	}
	assert.Greater(t, charlie, alice)
}

func TestRenderMemberCard(t *testing.T) {
	Init(config.MonochromeColorScheme())

	out := RenderMemberCard(&models.Member{
		Name:         "Alice Johnson",
		Parent:       "John Smith",
		Relationship: "Child",
		BirthDate:    "1975-07-10",
		Notes:        "Eldest daughter",
		Children:     []string{"Charlie Johnson", "Diana Johnson"},
	})

	for _, want := range []string{"Alice Johnson", "1975-07-10", "John Smith", "Charlie Johnson, Diana Johnson", "Eldest daughter"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderNotes_Empty(t *testing.T) {
	assert.Contains(t, RenderNotes("", 40), "No notes")
}
