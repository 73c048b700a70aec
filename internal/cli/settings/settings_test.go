package settings

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lineage/internal/cli"
	"github.com/thenoetrevino/lineage/internal/testutil"
	clitest "github.com/thenoetrevino/lineage/internal/testutil/cli"
)

func TestShow(t *testing.T) {
	_, a := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, a, ShowCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Contains(t, output, "theme=light\n")
	assert.Contains(t, output, "flightUpdates=true\n")
	assert.Len(t, strings.Split(strings.TrimSpace(output), "\n"), len(settingKeys))

	output, err = clitest.ExecuteCLICommand(t, a, ShowCmd(), []string{"--json"})
	require.NoError(t, err)
	data := clitest.ParseJSON(t, output)["data"].(map[string]any)
	assert.Equal(t, "metric", data["units"])
}

func TestSet(t *testing.T) {
	_, a := clitest.SetupCLITest(t)
	ctx := context.Background()

	_, err := clitest.ExecuteCLICommand(t, a, SetCmd(), []string{"seatPreference=aisle", "flightUpdates=false", "--quiet"})
	require.NoError(t, err)

	s, err := a.SettingsService.Get(ctx, testutil.TestUID)
	require.NoError(t, err)
	assert.Equal(t, "aisle", s.SeatPreference)
	assert.False(t, s.FlightUpdates)
	assert.False(t, s.LastUpdated.IsZero())

	_, err = clitest.ExecuteCLICommand(t, a, SetCmd(), []string{"seatPreference", "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))

	_, err = clitest.ExecuteCLICommand(t, a, SetCmd(), []string{"wingspan=3", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))

	_, err = clitest.ExecuteCLICommand(t, a, SetCmd(), []string{"seatPreference=roof", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))
}

func TestExport(t *testing.T) {
	_, a := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, a, ExportCmd(), nil)
	require.NoError(t, err)

	var export map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &export))
	assert.Equal(t, "1.0", export["version"])
	assert.Contains(t, export, "exportDate")

	path := filepath.Join(t.TempDir(), "export.json")
	output, err = clitest.ExecuteCLICommand(t, a, ExportCmd(), []string{"-o", path})
	require.NoError(t, err)
	assert.Contains(t, output, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"settings"`)
}
