package console

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/anas-cht/notifications-project/internal/api"
)

// Every Add/Edit form follows the same cycle: fill fields, validate
// synchronously into a field→message map, and only on a clean validation
// call the façade. Only a successful response reaches the parent screen.

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

// OK reports whether validation passed.
func (e FieldErrors) OK() bool {
	return len(e) == 0
}

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return strings.Join(parts, "; ")
}

// SignInForm collects the sign-in credentials.
type SignInForm struct {
	Email    string
	Password string
}

func (f *SignInForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailRe.MatchString(f.Email) {
		errs["email"] = "Please enter a valid email"
	}
	if f.Password == "" {
		errs["password"] = "Password is required"
	} else if len(f.Password) < 8 {
		errs["password"] = "Password must be at least 8 characters"
	}
	return errs
}

// CollaboratorForm backs both the Add and the Edit collaborator form.
type CollaboratorForm struct {
	ID          string
	FullName    string
	Email       string
	Email2      string
	PhoneNumber string
	Active      bool
	CategoryID  *int64
}

// NewCollaboratorForm returns the empty Add form; collaborators start
// active.
func NewCollaboratorForm() *CollaboratorForm {
	return &CollaboratorForm{Active: true}
}

// EditCollaboratorForm initializes the form from the selected collaborator.
// Fields map by name from the server record, which is the contract of
// truth.
func EditCollaboratorForm(c api.Collaborator) *CollaboratorForm {
	return &CollaboratorForm{
		ID:          c.ID,
		FullName:    c.FullName,
		Email:       c.Email,
		Email2:      c.Email2,
		PhoneNumber: c.PhoneNumber,
		Active:      c.IsActive,
		CategoryID:  c.CategoryID,
	}
}

func (f *CollaboratorForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.ID) == "" {
		errs["id"] = "id is required"
	}
	if strings.TrimSpace(f.FullName) == "" {
		errs["fullName"] = "Full Name is required"
	}
	if strings.TrimSpace(f.PhoneNumber) == "" {
		errs["phoneNumber"] = "Phone Number is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailRe.MatchString(f.Email) {
		errs["email"] = "Please enter a valid email"
	}
	return errs
}

func (f *CollaboratorForm) collaborator() api.Collaborator {
	return api.Collaborator{
		ID:          f.ID,
		FullName:    f.FullName,
		Email:       f.Email,
		Email2:      f.Email2,
		PhoneNumber: f.PhoneNumber,
		IsActive:    f.Active,
		CategoryID:  f.CategoryID,
	}
}

// SubmitAdd validates and creates the collaborator, returning the server's
// record. No network call happens on a validation failure.
func (f *CollaboratorForm) SubmitAdd(ctx context.Context, client *api.Client) (*api.Collaborator, error) {
	if errs := f.Validate(); !errs.OK() {
		return nil, errs
	}
	return client.AddCollaborator(ctx, f.collaborator())
}

// SubmitEdit validates and updates the collaborator.
func (f *CollaboratorForm) SubmitEdit(ctx context.Context, client *api.Client) (*api.Collaborator, error) {
	if errs := f.Validate(); !errs.OK() {
		return nil, errs
	}
	return client.UpdateCollaborator(ctx, f.collaborator())
}

// CategoryForm backs both the Add and the Edit category form.
type CategoryForm struct {
	ID          *int64
	Name        string
	Description string
	Active      bool
	Recipients  []api.Collaborator

	// original values, kept by the edit form to reject no-op saves
	originalName        string
	originalDescription string
	editing             bool
}

// NewCategoryForm returns the empty Add form; categories start active.
func NewCategoryForm() *CategoryForm {
	return &CategoryForm{Active: true}
}

// EditCategoryForm initializes the form from the selected category.
func EditCategoryForm(c api.Category) *CategoryForm {
	id := c.ID
	return &CategoryForm{
		ID:                  &id,
		Name:                c.Name,
		Description:         c.Description,
		Active:              c.IsActive,
		originalName:        c.Name,
		originalDescription: c.Description,
		editing:             true,
	}
}

func (f *CategoryForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Module name is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		errs["description"] = "Description is required"
	}
	return errs
}

// EligibleRecipients returns the collaborators the Add form may select:
// only those not yet assigned to a category, narrowed by the text filter
// over full name and email.
func EligibleRecipients(collaborators []api.Collaborator, filter string) []api.Collaborator {
	lowered := strings.ToLower(filter)
	var out []api.Collaborator
	for _, c := range collaborators {
		if c.CategoryID != nil {
			continue
		}
		if filter == "" || containsFold(c.FullName, lowered) || containsFold(c.Email, lowered) {
			out = append(out, c)
		}
	}
	return out
}

// ToggleRecipient adds the collaborator to the selection, or removes it
// when already selected. Membership is by id.
func (f *CategoryForm) ToggleRecipient(c api.Collaborator) {
	f.Recipients = toggleByID(f.Recipients, c)
}

// SubmitAdd validates and creates the category with its initial members.
func (f *CategoryForm) SubmitAdd(ctx context.Context, client *api.Client) (*api.Category, error) {
	if errs := f.Validate(); !errs.OK() {
		return nil, errs
	}
	return client.AddCategory(ctx, api.Category{
		Name:        f.Name,
		Description: f.Description,
		IsActive:    f.Active,
		Recipients:  f.Recipients,
	})
}

// ErrNoFieldsChanged rejects an edit that would save the category as-is.
var ErrNoFieldsChanged = fmt.Errorf("no fields changed")

// SubmitEdit validates and updates the category. Saving without changing
// anything is rejected before any network call.
func (f *CategoryForm) SubmitEdit(ctx context.Context, client *api.Client) (*api.Category, error) {
	if errs := f.Validate(); !errs.OK() {
		return nil, errs
	}
	if f.editing && f.Name == f.originalName && f.Description == f.originalDescription {
		return nil, ErrNoFieldsChanged
	}
	category := api.Category{
		Name:        f.Name,
		Description: f.Description,
		IsActive:    f.Active,
	}
	if f.ID != nil {
		category.ID = *f.ID
	}
	return client.UpdateCategory(ctx, category)
}

// NotificationForm backs the send-notification form.
type NotificationForm struct {
	Title      string
	CategoryID int64
	TemplateID int64
	Recipients []api.Collaborator
}

// NewNotificationForm returns the empty form.
func NewNotificationForm() *NotificationForm {
	return &NotificationForm{}
}

// SelectCategory sets the category and, when nothing was selected yet,
// pre-selects that category's collaborators as recipients.
func (f *NotificationForm) SelectCategory(categoryID int64, collaborators []api.Collaborator) {
	f.CategoryID = categoryID
	if len(f.Recipients) > 0 {
		return
	}
	for _, c := range collaborators {
		if c.InCategory(categoryID) {
			f.Recipients = append(f.Recipients, c)
		}
	}
}

// FilterRecipients narrows the collaborator checklist by full name or
// email.
func FilterRecipients(collaborators []api.Collaborator, filter string) []api.Collaborator {
	if filter == "" {
		return collaborators
	}
	lowered := strings.ToLower(filter)
	var out []api.Collaborator
	for _, c := range collaborators {
		if containsFold(c.FullName, lowered) || containsFold(c.Email, lowered) {
			out = append(out, c)
		}
	}
	return out
}

// ToggleRecipient adds or removes a recipient by id.
func (f *NotificationForm) ToggleRecipient(c api.Collaborator) {
	f.Recipients = toggleByID(f.Recipients, c)
}

func (f *NotificationForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Title is required"
	}
	if f.TemplateID == 0 {
		errs["template_id"] = "Template is required"
	}
	if len(f.Recipients) == 0 {
		errs["recipients"] = "At least one recipient is required"
	}
	return errs
}

// Submit validates and sends the notification. The recipient list is a
// point-in-time snapshot of the selected collaborators, not a live join.
func (f *NotificationForm) Submit(ctx context.Context, client *api.Client) (*api.Notification, error) {
	if errs := f.Validate(); !errs.OK() {
		return nil, errs
	}
	return client.SendNotification(ctx, api.Notification{
		Title:      f.Title,
		CategoryID: f.CategoryID,
		TemplateID: f.TemplateID,
		Recipients: f.Recipients,
	})
}

func toggleByID(selection []api.Collaborator, c api.Collaborator) []api.Collaborator {
	for i, existing := range selection {
		if existing.ID == c.ID {
			return append(selection[:i], selection[i+1:]...)
		}
	}
	return append(selection, c)
}
