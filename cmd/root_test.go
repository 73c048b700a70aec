package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clitest "github.com/thenoetrevino/lineage/internal/testutil/cli"
)

func TestRootCmd_RegistersCommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"member", "tree", "stats", "reset", "users", "settings", "profile", "serve", "browse"} {
		found, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, found.Name())
	}
}

func TestRootCmd_UserFlagSelectsTree(t *testing.T) {
	_, a := clitest.SetupCLITest(t)
	ctx := context.Background()

	_, err := clitest.ExecuteCLICommand(t, a, NewRootCmd(), []string{
		"--user", "bob", "member", "add", "Bob Junior", "--parent", "Bob Smith", "--quiet",
	})
	require.NoError(t, err)

	bob, err := a.Tree(ctx, "bob")
	require.NoError(t, err)
	_, err = bob.Member(ctx, "Bob Junior")
	assert.NoError(t, err)

	other, err := a.Tree(ctx, "test-user")
	require.NoError(t, err)
	_, err = other.Member(ctx, "Bob Junior")
	assert.Error(t, err)
}
