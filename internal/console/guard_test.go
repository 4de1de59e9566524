package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/anas-cht/notifications-project/internal/session"
)

func TestRequireSession(t *testing.T) {
	keyring.MockInit()
	store := session.NewStore(t.TempDir())

	// No session yet.
	_, err := RequireSession(store)
	assert.ErrorIs(t, err, ErrNotSignedIn)

	admin := session.Admin{ID: "a1", FullName: "Ada Admin", Email: "ada@example.com"}
	require.NoError(t, store.Login(admin, "token-123"))

	got, err := RequireSession(store)
	require.NoError(t, err)
	assert.Equal(t, admin, *got)

	// Logging out closes the gate again.
	require.NoError(t, store.Logout())
	_, err = RequireSession(store)
	assert.ErrorIs(t, err, ErrNotSignedIn)
}
