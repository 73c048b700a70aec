// Package cli runs cobra commands against an in-memory application.
// It lives apart from testutil so service tests can import testutil
// without pulling in the app container.
package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lineage/internal/app"
	"github.com/thenoetrevino/lineage/internal/database"
	"github.com/thenoetrevino/lineage/internal/identity"
	"github.com/thenoetrevino/lineage/internal/logging"
	"github.com/thenoetrevino/lineage/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the repository and App instance
func SetupCLITest(t *testing.T, opts ...app.Option) (*database.Repository, *app.App) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)

	opts = append([]app.Option{app.WithLogger(logging.Discard())}, opts...)
	appInstance := app.New(repo, opts...)
	t.Cleanup(func() { _ = appInstance.Close() })

	return repo, appInstance
}

// ExecuteCLICommand executes a CLI command with a test app instance
// This properly injects the app context so commands can access the test database
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	return ExecuteCLICommandWithContext(t, context.Background(), testApp, cmd, args)
}

// ExecuteCLICommandWithContext executes a CLI command with a specific context and test app
func ExecuteCLICommandWithContext(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	if _, ok := identity.FromContext(ctx); !ok {
		ctx = identity.WithIdentity(ctx, identity.Identity{UID: testutil.TestUID, Authenticated: true})
	}
	ctxWithApp := context.WithValue(ctx, testutil.TestAppKey, testApp)

	testutil.SetupCobraCommand(cmd, args)

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctxWithApp)
	})

	return output, executeErr
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()
	return testutil.ParseJSON(t, output)
}
