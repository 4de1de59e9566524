package api_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anas-cht/notifications-project/internal/api"
	"github.com/anas-cht/notifications-project/internal/api/apitest"
)

// tokenHolder is a mutable token source, so tests can swap the token
// between calls the way signin/logout do.
type tokenHolder struct {
	token string
}

func (h *tokenHolder) Token() (string, error) {
	if h.token == "" {
		return "", errors.New("no token stored")
	}
	return h.token, nil
}

func newTestClient(t *testing.T) (*api.Client, *apitest.Server, *tokenHolder) {
	t.Helper()

	stub := apitest.NewServer()
	server := httptest.NewServer(stub.Router())
	t.Cleanup(server.Close)

	holder := &tokenHolder{}
	client := api.NewClient(server.URL, holder, api.WithTimeout(5*time.Second))
	return client, stub, holder
}

func signIn(t *testing.T, client *api.Client, stub *apitest.Server, holder *tokenHolder) {
	t.Helper()
	response, err := client.SignIn(context.Background(), api.SignInRequest{
		Email:    stub.AdminEmail,
		Password: stub.AdminPassword,
	})
	require.NoError(t, err)
	holder.token = response.Token
}

func TestSignIn(t *testing.T) {
	client, stub, _ := newTestClient(t)

	response, err := client.SignIn(context.Background(), api.SignInRequest{
		Email:    stub.AdminEmail,
		Password: stub.AdminPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, stub.Admin, response.AdminDTO)
	assert.NotEmpty(t, response.Token)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	client, stub, _ := newTestClient(t)

	_, err := client.SignIn(context.Background(), api.SignInRequest{
		Email:    stub.AdminEmail,
		Password: "wrong-password",
	})
	apiErr, ok := api.AsError(err)
	require.True(t, ok, "expected a typed api error, got %v", err)
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "Invalid email or password.", apiErr.Message)
	assert.True(t, apiErr.IsAuthFailure())
}

func TestTokenReadFreshPerCall(t *testing.T) {
	client, stub, holder := newTestClient(t)
	signIn(t, client, stub, holder)

	_, err := client.AllCategories(context.Background())
	require.NoError(t, err)

	// Clearing the token between calls takes effect immediately.
	holder.token = ""
	_, err = client.AllCategories(context.Background())
	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "not signed in", apiErr.Message)
}

func TestAuthedCallRejectsGarbageToken(t *testing.T) {
	client, stub, holder := newTestClient(t)
	signIn(t, client, stub, holder)

	holder.token = "not-a-jwt"
	_, err := client.AllCollaborators(context.Background())
	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 401, apiErr.Status)
	assert.True(t, apiErr.IsAuthFailure())
}

func TestCollaboratorLifecycle(t *testing.T) {
	client, stub, holder := newTestClient(t)
	signIn(t, client, stub, holder)

	created, err := client.AddCollaborator(context.Background(), api.Collaborator{
		ID:          "E100",
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		PhoneNumber: "555-0101",
		IsActive:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "E100", created.ID)

	// Duplicate ids are rejected with the server message.
	_, err = client.AddCollaborator(context.Background(), *created)
	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 409, apiErr.Status)
	assert.Equal(t, "collaborator id already exists", apiErr.Message)

	created.FullName = "Jane Q. Doe"
	updated, err := client.UpdateCollaborator(context.Background(), *created)
	require.NoError(t, err)
	assert.Equal(t, "Jane Q. Doe", updated.FullName)

	toggled, err := client.DisableCollaborator(context.Background(), "E100")
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	toggled, err = client.DisableCollaborator(context.Background(), "E100")
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)

	all, err := client.AllCollaborators(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Jane Q. Doe", all[0].FullName)
}

func TestCategoryLifecycle(t *testing.T) {
	client, stub, holder := newTestClient(t)
	signIn(t, client, stub, holder)
	stub.SeedCollaborators(api.Collaborator{ID: "E1", FullName: "Jane Doe", Email: "jane@example.com", IsActive: true})

	created, err := client.AddCategory(context.Background(), api.Category{
		Name:        "hr",
		Description: "Human Resources",
		IsActive:    true,
		Recipients:  []api.Collaborator{{ID: "E1"}},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 1, created.CollaboratorsCount)

	// Initial members got assigned to the new category.
	collaborators, err := client.AllCollaborators(context.Background())
	require.NoError(t, err)
	require.Len(t, collaborators, 1)
	require.NotNil(t, collaborators[0].CategoryID)
	assert.Equal(t, created.ID, *collaborators[0].CategoryID)

	created.Description = "People Operations"
	updated, err := client.UpdateCategory(context.Background(), *created)
	require.NoError(t, err)
	assert.Equal(t, "People Operations", updated.Description)

	toggled, err := client.ChangeCategoryStatus(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
}

func TestNotificationLifecycle(t *testing.T) {
	client, stub, holder := newTestClient(t)
	signIn(t, client, stub, holder)
	stub.SeedCategories(api.Category{ID: 7, Name: "hr", Description: "Human Resources", IsActive: true})
	stub.SeedTemplates(api.Template{ID: 1, Name: "Maintenance window"})

	sent, err := client.SendNotification(context.Background(), api.Notification{
		Title:      "Planned downtime",
		CategoryID: 7,
		TemplateID: 1,
		Recipients: []api.Collaborator{{ID: "E1"}},
	})
	require.NoError(t, err)
	assert.NotZero(t, sent.ID)
	require.NotNil(t, sent.SentAt)
	assert.True(t, sent.IsActive)

	// Sending bumped the category's notification counter.
	categories, err := client.AllCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, 1, categories[0].NotificationsCount)

	enabled, err := client.EnableNotification(context.Background(), sent.ID)
	require.NoError(t, err)
	assert.True(t, enabled.IsActive)

	require.NoError(t, client.DeleteNotification(context.Background(), sent.ID))

	notifications, err := client.AllNotifications(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestTemplates(t *testing.T) {
	client, stub, holder := newTestClient(t)
	signIn(t, client, stub, holder)
	stub.SeedTemplates(
		api.Template{ID: 1, Name: "Maintenance window"},
		api.Template{ID: 2, Name: "Security advisory"},
	)

	templates, err := client.AllTemplates(context.Background())
	require.NoError(t, err)
	assert.Len(t, templates, 2)
}

func TestErrorStringIncludesContext(t *testing.T) {
	err := &api.Error{Op: "addcategory", Status: 409, Message: "duplicate"}
	assert.Equal(t, "addcategory: duplicate", err.Error())

	err = &api.Error{Op: "allcategorys", Status: 500}
	assert.Equal(t, "allcategorys: request failed with status 500", err.Error())
}
