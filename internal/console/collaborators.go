package console

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/anas-cht/notifications-project/internal/api"
	"github.com/anas-cht/notifications-project/internal/session"
)

// One-shot navigation intents recorded by dashboard quick actions and
// consumed by the matching screen on its next load.
const (
	ActionAddCollaborator = "add-collaborator"
	ActionAddCategory     = "add-category"
	ActionAddNotification = "add-notification"
)

// CollaboratorScreen manages the collaborator list: fetch on load, search,
// and the add/edit/toggle actions.
type CollaboratorScreen struct {
	list       *List[api.Collaborator]
	categories []api.Category
	client     *api.Client
	sessions   *session.Store
	log        *zap.Logger
}

func NewCollaboratorScreen(client *api.Client, sessions *session.Store, log *zap.Logger) *CollaboratorScreen {
	return &CollaboratorScreen{
		list: NewList(
			func(c api.Collaborator) string { return c.ID },
			func(c api.Collaborator, term string) bool {
				return containsFold(c.FullName, term) || containsFold(c.Email, term)
			},
		),
		client:   client,
		sessions: sessions,
		log:      log,
	}
}

// Load fetches categories (mirroring them into durable storage for the Add
// form's picker) and then the collaborator collection.
func (s *CollaboratorScreen) Load(ctx context.Context) error {
	categories, err := s.client.AllCategories(ctx)
	if err != nil {
		// The list still works without category names.
		s.log.Warn("fetching categories failed", zap.Error(err))
	} else {
		s.categories = categories
		if err := s.sessions.SaveCategoryMirror(categories); err != nil {
			s.log.Warn("mirroring categories failed", zap.Error(err))
		}
	}

	collaborators, err := s.client.AllCollaborators(ctx)
	if err != nil {
		return fmt.Errorf("fetching collaborators: %w", err)
	}
	s.list.Reset(collaborators)
	return nil
}

// Collaborators returns the loaded collection.
func (s *CollaboratorScreen) Collaborators() []api.Collaborator {
	return s.list.Items()
}

// Search returns the collaborators whose full name or email contains term.
func (s *CollaboratorScreen) Search(term string) []api.Collaborator {
	return s.list.Filter(term)
}

// ApplyAdd folds a freshly created collaborator into the screen state.
func (s *CollaboratorScreen) ApplyAdd(c api.Collaborator) {
	s.list.Add(c)
}

// ApplyUpdate folds an updated collaborator into the screen state.
func (s *CollaboratorScreen) ApplyUpdate(c api.Collaborator) {
	s.list.Update(c)
}

// ToggleStatus flips the collaborator's active flag through the façade and
// patches the screen state from the server's record.
func (s *CollaboratorScreen) ToggleStatus(ctx context.Context, id string) (*api.Collaborator, error) {
	updated, err := s.client.DisableCollaborator(ctx, id)
	if err != nil {
		return nil, err
	}
	s.list.Update(*updated)
	return updated, nil
}

func (s *CollaboratorScreen) categoryName(id *int64) string {
	if id == nil {
		return ""
	}
	for _, category := range s.categories {
		if category.ID == *id {
			return category.Description
		}
	}
	return ""
}

// Render writes the list, filtered by term.
func (s *CollaboratorScreen) Render(w io.Writer, term string) {
	rows := s.Search(term)
	if term != "" {
		fmt.Fprintf(w, "Collaborators matching %q (%d of %d)\n\n", term, len(rows), s.list.Len())
	} else {
		fmt.Fprintf(w, "Collaborators (%d)\n\n", len(rows))
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "No collaborators found.")
		return
	}
	for _, c := range rows {
		fmt.Fprintf(w, "ID: %s | %s <%s> [%s]\n", c.ID, c.FullName, c.Email, statusText(c.IsActive))
		if c.Email2 != "" {
			fmt.Fprintf(w, "   Email2: %s\n", c.Email2)
		}
		fmt.Fprintf(w, "   Phone: %s\n", c.PhoneNumber)
		if name := s.categoryName(c.CategoryID); name != "" {
			fmt.Fprintf(w, "   Category: %s\n", name)
		}
	}
}

// OpenAddForm runs the interactive Add form, used when a dashboard quick
// action asked for it. On success the new collaborator is folded into the
// screen state.
func (s *CollaboratorScreen) OpenAddForm(ctx context.Context, p *Prompter) (*api.Collaborator, error) {
	form := NewCollaboratorForm()

	var err error
	if form.ID, err = p.Ask("Id (matricule)"); err != nil {
		return nil, err
	}
	if form.FullName, err = p.Ask("Full name"); err != nil {
		return nil, err
	}
	if form.Email, err = p.Ask("Email"); err != nil {
		return nil, err
	}
	if form.Email2, err = p.Ask("Second email (optional)"); err != nil {
		return nil, err
	}
	if form.PhoneNumber, err = p.Ask("Phone number"); err != nil {
		return nil, err
	}

	// Category picker, fed from the mirrored category list.
	categories := s.categories
	if len(categories) == 0 {
		categories, _ = s.sessions.CategoryMirror()
	}
	if len(categories) > 0 {
		fmt.Fprintln(p.w, "Categories:")
		for _, category := range categories {
			fmt.Fprintf(p.w, "  %d. %s\n", category.ID, category.Description)
		}
		answer, err := p.Ask("Category id (optional)")
		if err != nil {
			return nil, err
		}
		if answer != "" {
			id, err := strconv.ParseInt(answer, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid category id: %w", err)
			}
			form.CategoryID = &id
		}
	}

	if form.Active, err = p.AskBool("Active collaborator", true); err != nil {
		return nil, err
	}

	created, err := form.SubmitAdd(ctx, s.client)
	if err != nil {
		return nil, err
	}
	s.list.Add(*created)
	return created, nil
}
