package console

import (
	"errors"

	"github.com/anas-cht/notifications-project/internal/session"
)

// ErrNotSignedIn is returned when a guarded screen is reached without an
// authenticated session.
var ErrNotSignedIn = errors.New("not signed in: run 'notifyhub signin' first")

// RequireSession gates every authenticated screen. It is a pure read of the
// session store: no network round-trip, no token validation beyond presence.
// Both the user record and the token must exist, matching the login/logout
// pair that always writes them together.
func RequireSession(store *session.Store) (*session.Admin, error) {
	admin, err := store.Admin()
	if err != nil || admin == nil {
		return nil, ErrNotSignedIn
	}
	token, err := store.Token()
	if err != nil || token == "" {
		return nil, ErrNotSignedIn
	}
	return admin, nil
}
