package api

import "time"

// Data transfer objects for the notification platform API. Field names and
// JSON keys follow the server contract exactly.

// AdminDTO is the admin profile as returned by the sign-in endpoint.
type AdminDTO struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// SignInRequest: payload for admin sign-in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse: payload returned on successful sign-in.
type SignInResponse struct {
	AdminDTO AdminDTO `json:"adminDto"`
	Token    string   `json:"token"`
}

// Collaborator is a notification recipient. The id is assigned externally
// (a matricule), not by the server.
type Collaborator struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Email2      string `json:"email2"`
	PhoneNumber string `json:"phoneNumber"`
	IsActive    bool   `json:"isActive"`
	// Nil until the collaborator is assigned to a category.
	CategoryID *int64 `json:"category_id,omitempty"`
}

// InCategory reports whether the collaborator is assigned to the category.
func (c Collaborator) InCategory(categoryID int64) bool {
	return c.CategoryID != nil && *c.CategoryID == categoryID
}

// Category groups collaborators and notifications. The counters are
// computed server-side and are read-only here.
type Category struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	IsActive           bool   `json:"isActive"`
	CollaboratorsCount int    `json:"collaborators_count"`
	NotificationsCount int    `json:"notifications_count"`
	// Only populated when creating a category with initial members.
	Recipients []Collaborator `json:"recipients,omitempty"`
}

// Notification is a titled message sent to a snapshot of collaborators.
type Notification struct {
	ID         int64          `json:"id"`
	Title      string         `json:"title"`
	CreatedAt  *time.Time     `json:"createdAt,omitempty"`
	SentAt     *time.Time     `json:"sentAt,omitempty"`
	IsActive   bool           `json:"isActive"`
	CategoryID int64          `json:"category_id"`
	TemplateID int64          `json:"template_id"`
	Recipients []Collaborator `json:"recipients,omitempty"`
}

// Template is a named, reusable message body.
type Template struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
