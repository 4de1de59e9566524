package console

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anas-cht/notifications-project/internal/api"
)

// deadClient points at a closed port, so any request would fail loudly.
// Forms must reject invalid input before ever touching it.
func deadClient() *api.Client {
	return api.NewClient("http://127.0.0.1:1", nil)
}

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	var errs FieldErrors
	require.True(t, errors.As(err, &errs), "expected field errors, got %v", err)
	return errs
}

func TestSignInFormValidate(t *testing.T) {
	tests := []struct {
		name     string
		form     SignInForm
		wantErrs []string
	}{
		{name: "valid", form: SignInForm{Email: "ada@example.com", Password: "supersecret"}},
		{name: "empty", form: SignInForm{}, wantErrs: []string{"email", "password"}},
		{name: "bad email", form: SignInForm{Email: "not-an-email", Password: "supersecret"}, wantErrs: []string{"email"}},
		{name: "short password", form: SignInForm{Email: "ada@example.com", Password: "short"}, wantErrs: []string{"password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			if len(tt.wantErrs) == 0 {
				assert.True(t, errs.OK())
				return
			}
			for _, field := range tt.wantErrs {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestCollaboratorFormValidate(t *testing.T) {
	form := NewCollaboratorForm()
	assert.True(t, form.Active, "new collaborators start active")

	errs := form.Validate()
	assert.Contains(t, errs, "id")
	assert.Contains(t, errs, "fullName")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "phoneNumber")

	form.ID = "E1"
	form.FullName = "Jane Doe"
	form.Email = "jane"
	form.PhoneNumber = "555-0101"
	errs = form.Validate()
	assert.Equal(t, FieldErrors{"email": "Please enter a valid email"}, errs)

	form.Email = "jane@example.com"
	assert.True(t, form.Validate().OK())
}

func TestCollaboratorFormSubmitSkipsNetworkOnInvalid(t *testing.T) {
	form := NewCollaboratorForm()
	_, err := form.SubmitAdd(context.Background(), deadClient())
	fieldErrors(t, err)

	_, err = form.SubmitEdit(context.Background(), deadClient())
	fieldErrors(t, err)
}

func TestEditCollaboratorFormMapsFieldsByName(t *testing.T) {
	categoryID := int64(7)
	collaborator := api.Collaborator{
		ID:          "E1",
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		Email2:      "jane.doe@backup.example.com",
		PhoneNumber: "555-0101",
		IsActive:    true,
		CategoryID:  &categoryID,
	}

	form := EditCollaboratorForm(collaborator)
	assert.Equal(t, collaborator.FullName, form.FullName)
	assert.Equal(t, collaborator.Email, form.Email)
	assert.Equal(t, collaborator.Email2, form.Email2)
	assert.Equal(t, collaborator.PhoneNumber, form.PhoneNumber)
	assert.Equal(t, collaborator.IsActive, form.Active)
	assert.Equal(t, collaborator.CategoryID, form.CategoryID)
}

func TestCategoryFormValidate(t *testing.T) {
	form := NewCategoryForm()
	errs := form.Validate()
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "description")

	form.Name = "hr"
	form.Description = "Human Resources"
	assert.True(t, form.Validate().OK())
}

func TestCategoryFormRejectsNoOpEdit(t *testing.T) {
	form := EditCategoryForm(api.Category{ID: 1, Name: "hr", Description: "Human Resources", IsActive: true})

	// Saving without changes never reaches the network.
	_, err := form.SubmitEdit(context.Background(), deadClient())
	assert.ErrorIs(t, err, ErrNoFieldsChanged)
}

func TestEligibleRecipients(t *testing.T) {
	categoryID := int64(1)
	collaborators := []api.Collaborator{
		{ID: "E1", FullName: "Jane Doe", Email: "jane@example.com"},
		{ID: "E2", FullName: "John Smith", Email: "john@example.com", CategoryID: &categoryID},
		{ID: "E3", FullName: "Ada Admin", Email: "ada@example.com"},
	}

	eligible := EligibleRecipients(collaborators, "")
	var ids []string
	for _, c := range eligible {
		ids = append(ids, c.ID)
	}
	// Assigned collaborators are excluded.
	assert.Equal(t, []string{"E1", "E3"}, ids)

	eligible = EligibleRecipients(collaborators, "ada")
	require.Len(t, eligible, 1)
	assert.Equal(t, "E3", eligible[0].ID)
}

func TestToggleRecipient(t *testing.T) {
	form := NewCategoryForm()
	jane := api.Collaborator{ID: "E1", FullName: "Jane Doe"}

	form.ToggleRecipient(jane)
	assert.Len(t, form.Recipients, 1)

	form.ToggleRecipient(jane)
	assert.Empty(t, form.Recipients)
}

func TestNotificationFormValidate(t *testing.T) {
	form := NewNotificationForm()
	errs := form.Validate()
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "template_id")
	assert.Contains(t, errs, "recipients")

	form.Title = "Planned downtime"
	form.TemplateID = 1
	form.Recipients = []api.Collaborator{{ID: "E1"}}
	assert.True(t, form.Validate().OK())

	_, err := NewNotificationForm().Submit(context.Background(), deadClient())
	fieldErrors(t, err)
}

func TestSelectCategoryPreSelectsItsCollaborators(t *testing.T) {
	categoryID := int64(1)
	otherID := int64(2)
	collaborators := []api.Collaborator{
		{ID: "E1", CategoryID: &categoryID},
		{ID: "E2", CategoryID: &otherID},
		{ID: "E3"},
		{ID: "E4", CategoryID: &categoryID},
	}

	form := NewNotificationForm()
	form.SelectCategory(1, collaborators)
	assert.Equal(t, int64(1), form.CategoryID)
	var ids []string
	for _, c := range form.Recipients {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"E1", "E4"}, ids)

	// An existing manual selection is preserved on category change.
	form.SelectCategory(2, collaborators)
	assert.Equal(t, int64(2), form.CategoryID)
	assert.Len(t, form.Recipients, 2)
}

func TestFilterRecipients(t *testing.T) {
	collaborators := []api.Collaborator{
		{ID: "E1", FullName: "Jane Doe", Email: "jane@example.com"},
		{ID: "E2", FullName: "John Smith", Email: "john@example.com"},
	}

	assert.Len(t, FilterRecipients(collaborators, ""), 2)
	filtered := FilterRecipients(collaborators, "SMITH")
	require.Len(t, filtered, 1)
	assert.Equal(t, "E2", filtered[0].ID)
}

func TestFieldErrorsMessage(t *testing.T) {
	errs := FieldErrors{"email": "Email is required", "title": "Title is required"}
	assert.Equal(t, "email: Email is required; title: Title is required", errs.Error())
}
