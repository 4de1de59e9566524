package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/anas-cht/notifications-project/internal/api"
	"github.com/anas-cht/notifications-project/internal/session"
)

// CategoryScreen manages the module list: fetch on load, search by name,
// and the add/edit/toggle actions.
type CategoryScreen struct {
	list          *List[api.Category]
	collaborators []api.Collaborator
	client        *api.Client
	sessions      *session.Store
	log           *zap.Logger
}

func NewCategoryScreen(client *api.Client, sessions *session.Store, log *zap.Logger) *CategoryScreen {
	return &CategoryScreen{
		list: NewList(
			func(c api.Category) string { return fmt.Sprintf("%d", c.ID) },
			func(c api.Category, term string) bool {
				return containsFold(c.Name, term)
			},
		),
		client:   client,
		sessions: sessions,
		log:      log,
	}
}

// Load fetches the category collection and the collaborators the Add form
// offers as initial members.
func (s *CategoryScreen) Load(ctx context.Context) error {
	categories, err := s.client.AllCategories(ctx)
	if err != nil {
		return fmt.Errorf("fetching categories: %w", err)
	}
	s.list.Reset(categories)

	collaborators, err := s.client.AllCollaborators(ctx)
	if err != nil {
		// The list itself renders fine without them.
		s.log.Warn("fetching collaborators failed", zap.Error(err))
	} else {
		s.collaborators = collaborators
	}
	return nil
}

// Categories returns the loaded collection.
func (s *CategoryScreen) Categories() []api.Category {
	return s.list.Items()
}

// Search returns the categories whose name contains term.
func (s *CategoryScreen) Search(term string) []api.Category {
	return s.list.Filter(term)
}

// ApplyAdd folds a freshly created category into the screen state.
func (s *CategoryScreen) ApplyAdd(c api.Category) {
	s.list.Add(c)
}

// ApplyUpdate folds an updated category into the screen state.
func (s *CategoryScreen) ApplyUpdate(c api.Category) {
	s.list.Update(c)
}

// Find returns the loaded category with the given id.
func (s *CategoryScreen) Find(id int64) (api.Category, bool) {
	for _, category := range s.list.Items() {
		if category.ID == id {
			return category, true
		}
	}
	return api.Category{}, false
}

// ToggleStatus flips the category's active flag through the façade and
// patches the screen state from the server's record.
func (s *CategoryScreen) ToggleStatus(ctx context.Context, id int64) (*api.Category, error) {
	updated, err := s.client.ChangeCategoryStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	s.list.Update(*updated)
	return updated, nil
}

// Render writes the list, filtered by term. Categories display their
// description as the headline, the way the platform names modules.
func (s *CategoryScreen) Render(w io.Writer, term string) {
	rows := s.Search(term)
	if term != "" {
		fmt.Fprintf(w, "Modules matching %q (%d of %d)\n\n", term, len(rows), s.list.Len())
	} else {
		fmt.Fprintf(w, "Modules (%d)\n\n", len(rows))
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "No modules found.")
		return
	}
	for _, c := range rows {
		fmt.Fprintf(w, "ID: %d | %s [%s]\n", c.ID, c.Description, statusText(c.IsActive))
		fmt.Fprintf(w, "   %s\n", c.Name)
		fmt.Fprintf(w, "   %d collaborators | %d notifications\n", c.CollaboratorsCount, c.NotificationsCount)
	}
}

// OpenAddForm runs the interactive Add form, used when a dashboard quick
// action asked for it.
func (s *CategoryScreen) OpenAddForm(ctx context.Context, p *Prompter) (*api.Category, error) {
	form := NewCategoryForm()

	var err error
	if form.Name, err = p.Ask("Module name"); err != nil {
		return nil, err
	}
	if form.Description, err = p.Ask("Description"); err != nil {
		return nil, err
	}

	// Only collaborators without a category are eligible as initial
	// members.
	filter, err := p.Ask("Filter collaborators (optional)")
	if err != nil {
		return nil, err
	}
	eligible := EligibleRecipients(s.collaborators, filter)
	if len(eligible) > 0 {
		fmt.Fprintln(p.w, "Collaborators without a category:")
		for _, c := range eligible {
			fmt.Fprintf(p.w, "  %s — %s (%s)\n", c.ID, c.Email, c.Email2)
		}
		answer, err := p.Ask("Member ids, comma separated (optional)")
		if err != nil {
			return nil, err
		}
		for _, id := range splitIDs(answer) {
			for _, c := range eligible {
				if c.ID == id {
					form.ToggleRecipient(c)
				}
			}
		}
	}

	if form.Active, err = p.AskBool("Active module", true); err != nil {
		return nil, err
	}

	created, err := form.SubmitAdd(ctx, s.client)
	if err != nil {
		return nil, err
	}
	s.list.Add(*created)
	return created, nil
}

func splitIDs(answer string) []string {
	var out []string
	for _, part := range strings.Split(answer, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
