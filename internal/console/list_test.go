package console

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anas-cht/notifications-project/internal/api"
)

func newCollaboratorList() *List[api.Collaborator] {
	return NewList(
		func(c api.Collaborator) string { return c.ID },
		func(c api.Collaborator, term string) bool {
			return containsFold(c.FullName, term) || containsFold(c.Email, term)
		},
	)
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	list := newCollaboratorList()
	list.Reset([]api.Collaborator{
		{ID: "E1", FullName: "Jane Doe", Email: "jane@example.com"},
		{ID: "E2", FullName: "John Smith", Email: "john@example.com"},
		{ID: "E3", FullName: "Ada Admin", Email: "ADA@example.com"},
	})

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "empty term returns everything", term: "", want: []string{"E1", "E2", "E3"}},
		{name: "matches name", term: "jane", want: []string{"E1"}},
		{name: "matches uppercased term", term: "JOHN", want: []string{"E2"}},
		{name: "matches email regardless of stored case", term: "ada@", want: []string{"E3"}},
		{name: "substring across entries", term: "example.com", want: []string{"E1", "E2", "E3"}},
		{name: "no match", term: "zelda", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, c := range list.Filter(tt.term) {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestAddReplacesExistingID(t *testing.T) {
	list := newCollaboratorList()
	list.Reset([]api.Collaborator{{ID: "E1", FullName: "Jane Doe"}})

	list.Add(api.Collaborator{ID: "E1", FullName: "Jane Q. Doe"})
	assert.Equal(t, 1, list.Len())
	assert.Equal(t, "Jane Q. Doe", list.Items()[0].FullName)

	list.Add(api.Collaborator{ID: "E2", FullName: "John Smith"})
	assert.Equal(t, 2, list.Len())
}

func TestPrependPutsNewestFirst(t *testing.T) {
	list := newCollaboratorList()
	list.Reset([]api.Collaborator{{ID: "E1"}, {ID: "E2"}})

	list.Prepend(api.Collaborator{ID: "E3"})
	assert.Equal(t, "E3", list.Items()[0].ID)
	assert.Equal(t, 3, list.Len())
}

func TestUpdateIsNoOpWhenAbsent(t *testing.T) {
	list := newCollaboratorList()
	list.Reset([]api.Collaborator{{ID: "E1", FullName: "Jane Doe"}})

	list.Update(api.Collaborator{ID: "E9", FullName: "Ghost"})
	assert.Equal(t, 1, list.Len())
	assert.Equal(t, "Jane Doe", list.Items()[0].FullName)
}

func TestRemove(t *testing.T) {
	list := newCollaboratorList()
	list.Reset([]api.Collaborator{{ID: "E1"}, {ID: "E2"}})

	list.Remove("E1")
	assert.Equal(t, 1, list.Len())
	assert.Equal(t, "E2", list.Items()[0].ID)

	list.Remove("unknown")
	assert.Equal(t, 1, list.Len())
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Active", statusText(true))
	assert.Equal(t, "Inactive", statusText(false))
}
