package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"

	"github.com/anas-cht/notifications-project/internal/api"
)

const (
	serviceName = "notifyhub-console"
	tokenKey    = "token"
)

// Admin is the signed-in administrator as kept in durable storage.
type Admin struct {
	ID       string `json:"id"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// state is everything the console persists besides the token: the admin
// profile, the opportunistic category mirror, and the one-shot navigation
// intent set by dashboard quick actions.
type state struct {
	User          *Admin         `json:"user,omitempty"`
	Categories    []api.Category `json:"categories,omitempty"`
	PendingAction string         `json:"pending_action,omitempty"`
}

// Store is the single owner of session state. The bearer token lives in the
// OS keyring; everything else lives in a JSON state file under dir. The
// token and the user record are only ever written or cleared together, via
// Login and Logout.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Login persists the admin profile and the bearer token and thereby marks
// the session authenticated.
func (s *Store) Login(admin Admin, token string) error {
	if err := keyring.Set(serviceName, tokenKey, token); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	st, err := s.readState()
	if err != nil {
		return err
	}
	st.User = &admin
	return s.writeState(st)
}

// Logout clears the token, the user record, the category mirror, and any
// pending navigation intent, marking the session unauthenticated.
func (s *Store) Logout() error {
	if err := keyring.Delete(serviceName, tokenKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("clearing token: %w", err)
	}
	return s.writeState(&state{})
}

// Token reads the bearer token fresh from the keyring. It implements
// api.TokenSource so every façade call sees the current session.
func (s *Store) Token() (string, error) {
	token, err := keyring.Get(serviceName, tokenKey)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Admin returns the stored admin profile, or nil when no one is signed in.
func (s *Store) Admin() (*Admin, error) {
	st, err := s.readState()
	if err != nil {
		return nil, err
	}
	return st.User, nil
}

// Authenticated reports whether both a user record and a token are present.
// Either alone does not count as a session.
func (s *Store) Authenticated() bool {
	admin, err := s.Admin()
	if err != nil || admin == nil {
		return false
	}
	token, err := s.Token()
	return err == nil && token != ""
}

// SaveCategoryMirror stores the last-fetched category list so forms can
// populate their category picker without refetching.
func (s *Store) SaveCategoryMirror(categories []api.Category) error {
	st, err := s.readState()
	if err != nil {
		return err
	}
	st.Categories = categories
	return s.writeState(st)
}

// CategoryMirror returns the mirrored category list, which may be empty.
func (s *Store) CategoryMirror() ([]api.Category, error) {
	st, err := s.readState()
	if err != nil {
		return nil, err
	}
	return st.Categories, nil
}

// SetPendingAction records a one-shot navigation intent, e.g. a dashboard
// quick action asking the next screen to open its Add form.
func (s *Store) SetPendingAction(action string) error {
	st, err := s.readState()
	if err != nil {
		return err
	}
	st.PendingAction = action
	return s.writeState(st)
}

// TakePendingAction returns the pending intent and clears it, so a screen
// consumes it at most once.
func (s *Store) TakePendingAction() (string, error) {
	st, err := s.readState()
	if err != nil {
		return "", err
	}
	action := st.PendingAction
	if action == "" {
		return "", nil
	}
	st.PendingAction = ""
	if err := s.writeState(st); err != nil {
		return "", err
	}
	return action, nil
}

// TakePendingActionIf consumes the pending intent only when it matches
// action. An intent addressed to one screen survives visits to the others
// untouched.
func (s *Store) TakePendingActionIf(action string) (bool, error) {
	st, err := s.readState()
	if err != nil {
		return false, err
	}
	if action == "" || st.PendingAction != action {
		return false, nil
	}
	st.PendingAction = ""
	if err := s.writeState(st); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) statePath() string {
	return filepath.Join(s.dir, "state.json")
}

func (s *Store) readState() (*state, error) {
	data, err := os.ReadFile(s.statePath())
	if err != nil {
		if os.IsNotExist(err) {
			return &state{}, nil
		}
		return nil, fmt.Errorf("reading state file: %w", err)
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		// A corrupt state file starts the session over rather than
		// wedging every command.
		return &state{}, nil
	}
	return &st, nil
}

func (s *Store) writeState(st *state) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.statePath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	return os.Rename(tmp, s.statePath())
}
