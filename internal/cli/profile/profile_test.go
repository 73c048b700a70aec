package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lineage/internal/cli"
	"github.com/thenoetrevino/lineage/internal/testutil"
	clitest "github.com/thenoetrevino/lineage/internal/testutil/cli"
)

func TestShow_NewUser(t *testing.T) {
	_, a := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, a, ShowCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "firstName=\nlastName=\nusername=\nemail=\nphone=\n", output)

	output, err = clitest.ExecuteCLICommand(t, a, ShowCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "(not set)")
}

func TestUpdate(t *testing.T) {
	_, a := clitest.SetupCLITest(t)
	ctx := context.Background()

	output, err := clitest.ExecuteCLICommand(t, a, UpdateCmd(), []string{
		"--first-name", " Ada ", "--email", "ada@example.com", "--json",
	})
	require.NoError(t, err)
	data := clitest.ParseJSON(t, output)["data"].(map[string]any)
	assert.Equal(t, "Ada", data["firstName"])

	_, err = clitest.ExecuteCLICommand(t, a, UpdateCmd(), []string{"--last-name", "Lovelace", "--quiet"})
	require.NoError(t, err)

	p, err := a.ProfileService.Get(ctx, testutil.TestUID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.FirstName)
	assert.Equal(t, "Lovelace", p.LastName)
	assert.Equal(t, "ada@example.com", p.Email)

	_, err = clitest.ExecuteCLICommand(t, a, UpdateCmd(), []string{"--email", "", "--quiet"})
	require.NoError(t, err)
	p, err = a.ProfileService.Get(ctx, testutil.TestUID)
	require.NoError(t, err)
	assert.Empty(t, p.Email)
}

func TestUpdate_Errors(t *testing.T) {
	_, a := clitest.SetupCLITest(t)

	_, err := clitest.ExecuteCLICommand(t, a, UpdateCmd(), []string{"--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))

	_, err = clitest.ExecuteCLICommand(t, a, UpdateCmd(), []string{"--email", "not-an-email", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))

	_, err = clitest.ExecuteCLICommand(t, a, UpdateCmd(), []string{"--phone", "555", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))
}
