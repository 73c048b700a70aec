package serve

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clitest "github.com/thenoetrevino/lineage/internal/testutil/cli"
)

func TestServe_StopsWhenContextEnds(t *testing.T) {
	_, a := clitest.SetupCLITest(t)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	output, err := clitest.ExecuteCLICommandWithContext(t, ctx, a, ServeCmd(), []string{
		"--addr", "127.0.0.1:0", "--static-dir", t.TempDir(),
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Serving on http://localhost:0")
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestDisplayAddr(t *testing.T) {
	assert.Equal(t, ":3000", displayAddr(":3000"))
	assert.Equal(t, ":8080", displayAddr("127.0.0.1:8080"))
	assert.Equal(t, ":9000", displayAddr("9000"))
}
