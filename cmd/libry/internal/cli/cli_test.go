package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/libry/internal/auth"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("AUTH_SECRET", "s3cret")
	t.Setenv("AUTH_TOKEN_TTL", "1h")

	out, err := run(t, "token", "alice")
	require.NoError(t, err)

	claims, err := auth.NewTokens("s3cret", time.Hour).Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
}

func TestLendingCommands_RejectBadIDs(t *testing.T) {
	for _, cmd := range []string{"issue", "return"} {
		t.Run(cmd, func(t *testing.T) {
			_, err := run(t, cmd, "nope", uuid.NewString())
			assert.ErrorContains(t, err, "invalid member id")

			_, err = run(t, cmd, uuid.NewString())
			assert.Error(t, err)
		})
	}
}

func TestParseIDs(t *testing.T) {
	m, b := uuid.New(), uuid.New()

	gotM, gotB, err := parseIDs([]string{m.String(), b.String()})
	require.NoError(t, err)
	assert.Equal(t, m, gotM)
	assert.Equal(t, b, gotB)

	_, _, err = parseIDs([]string{m.String(), "x"})
	assert.ErrorContains(t, err, "invalid book id")
}

func TestImportCommand_FileExcludesFilters(t *testing.T) {
	_, err := run(t, "import", "--file", "catalog.csv", "--title", "potter")
	assert.Error(t, err)
}
