package console

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/anas-cht/notifications-project/internal/api"
)

// NotificationScreen manages the notification list and the send form's
// reference data (categories, templates, collaborators).
type NotificationScreen struct {
	list          *List[api.Notification]
	categories    []api.Category
	templates     []api.Template
	collaborators []api.Collaborator
	client        *api.Client
	log           *zap.Logger
}

func NewNotificationScreen(client *api.Client, log *zap.Logger) *NotificationScreen {
	return &NotificationScreen{
		list: NewList(
			func(n api.Notification) string { return fmt.Sprintf("%d", n.ID) },
			func(n api.Notification, term string) bool {
				return containsFold(n.Title, term)
			},
		),
		client: client,
		log:    log,
	}
}

// Load fetches the notification collection and the reference collections
// the send form needs. Reference fetch failures degrade, the notification
// fetch itself does not.
func (s *NotificationScreen) Load(ctx context.Context) error {
	if categories, err := s.client.AllCategories(ctx); err != nil {
		s.log.Warn("fetching categories failed", zap.Error(err))
	} else {
		s.categories = categories
	}
	if templates, err := s.client.AllTemplates(ctx); err != nil {
		s.log.Warn("fetching templates failed", zap.Error(err))
	} else {
		s.templates = templates
	}
	if collaborators, err := s.client.AllCollaborators(ctx); err != nil {
		s.log.Warn("fetching collaborators failed", zap.Error(err))
	} else {
		s.collaborators = collaborators
	}

	notifications, err := s.client.AllNotifications(ctx)
	if err != nil {
		return fmt.Errorf("fetching notifications: %w", err)
	}
	s.list.Reset(notifications)
	return nil
}

// Notifications returns the loaded collection.
func (s *NotificationScreen) Notifications() []api.Notification {
	return s.list.Items()
}

// Templates returns the loaded template reference data.
func (s *NotificationScreen) Templates() []api.Template {
	return s.templates
}

// Search returns the notifications whose title contains term.
func (s *NotificationScreen) Search(term string) []api.Notification {
	return s.list.Filter(term)
}

// ApplyAdd prepends a freshly sent notification, newest first.
func (s *NotificationScreen) ApplyAdd(n api.Notification) {
	s.list.Prepend(n)
}

// Activate re-enables a notification through the façade and patches the
// screen state from the server's record.
func (s *NotificationScreen) Activate(ctx context.Context, id int64) (*api.Notification, error) {
	updated, err := s.client.EnableNotification(ctx, id)
	if err != nil {
		return nil, err
	}
	s.list.Update(*updated)
	return updated, nil
}

// Delete removes the notification through the façade, then drops it from
// the screen state.
func (s *NotificationScreen) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteNotification(ctx, id); err != nil {
		return err
	}
	s.list.Remove(fmt.Sprintf("%d", id))
	return nil
}

func (s *NotificationScreen) categoryName(id int64) string {
	for _, category := range s.categories {
		if category.ID == id {
			return category.Description
		}
	}
	return "Unknown Module"
}

// Render writes the list, filtered by term.
func (s *NotificationScreen) Render(w io.Writer, term string) {
	rows := s.Search(term)
	if term != "" {
		fmt.Fprintf(w, "Notifications matching %q (%d of %d)\n\n", term, len(rows), s.list.Len())
	} else {
		fmt.Fprintf(w, "Notifications (%d)\n\n", len(rows))
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "No notifications found.")
		return
	}
	for _, n := range rows {
		fmt.Fprintf(w, "ID: %d | %s [%s]\n", n.ID, n.Title, statusText(n.IsActive))
		if n.CreatedAt != nil {
			fmt.Fprintf(w, "   Created: %s\n", n.CreatedAt.Format("02/01/2006 15:04"))
		}
		if n.SentAt != nil {
			fmt.Fprintf(w, "   Sent: %s\n", n.SentAt.Format("02/01/2006 15:04"))
		}
		fmt.Fprintf(w, "   Category: %s\n", s.categoryName(n.CategoryID))
	}
}

// OpenAddForm runs the interactive send form, used when a dashboard quick
// action asked for it.
func (s *NotificationScreen) OpenAddForm(ctx context.Context, p *Prompter) (*api.Notification, error) {
	form := NewNotificationForm()

	if len(s.categories) > 0 {
		fmt.Fprintln(p.w, "Categories:")
		for _, category := range s.categories {
			fmt.Fprintf(p.w, "  %d. %s\n", category.ID, category.Description)
		}
		answer, err := p.Ask("Category id")
		if err != nil {
			return nil, err
		}
		if answer != "" {
			id, err := strconv.ParseInt(answer, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid category id: %w", err)
			}
			// Selecting a category pre-selects its collaborators.
			form.SelectCategory(id, s.collaborators)
		}
	}

	if len(s.templates) > 0 {
		fmt.Fprintln(p.w, "Templates:")
		for _, template := range s.templates {
			fmt.Fprintf(p.w, "  %d. %s\n", template.ID, template.Name)
		}
	}
	answer, err := p.Ask("Template id")
	if err != nil {
		return nil, err
	}
	if answer != "" {
		id, err := strconv.ParseInt(answer, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid template id: %w", err)
		}
		form.TemplateID = id
	}

	if form.Title, err = p.Ask("Title"); err != nil {
		return nil, err
	}

	filter, err := p.Ask("Filter recipients (optional)")
	if err != nil {
		return nil, err
	}
	candidates := FilterRecipients(s.collaborators, filter)
	if len(candidates) > 0 {
		fmt.Fprintln(p.w, "Recipients:")
		for _, c := range candidates {
			marker := " "
			for _, selected := range form.Recipients {
				if selected.ID == c.ID {
					marker = "x"
				}
			}
			fmt.Fprintf(p.w, "  [%s] %s — %s <%s>\n", marker, c.ID, c.FullName, c.Email)
		}
		answer, err := p.Ask("Toggle recipient ids, comma separated (optional)")
		if err != nil {
			return nil, err
		}
		for _, id := range splitIDs(answer) {
			for _, c := range candidates {
				if c.ID == id {
					form.ToggleRecipient(c)
				}
			}
		}
	}

	sent, err := form.Submit(ctx, s.client)
	if err != nil {
		return nil, err
	}
	s.list.Prepend(*sent)
	return sent, nil
}
