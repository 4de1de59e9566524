// Package apitest provides an in-memory stand-in for the notification
// platform API, exposing the same REST surface the console talks to in
// production. Tests point the façade at it through httptest.
package apitest

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/anas-cht/notifications-project/internal/api"
)

// Server implements the platform API against in-memory collections.
type Server struct {
	mu sync.Mutex

	AdminEmail    string
	AdminPassword string
	Admin         api.AdminDTO

	secret []byte
	now    func() time.Time

	collaborators []api.Collaborator
	categories    []api.Category
	notifications []api.Notification
	templates     []api.Template

	nextCategoryID     int64
	nextNotificationID int64
	nextTemplateID     int64

	engine *gin.Engine
}

// NewServer builds a stub with a default admin account.
func NewServer() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		AdminEmail:    "admin@example.com",
		AdminPassword: "password123",
		Admin: api.AdminDTO{
			ID:          "admin-1",
			FullName:    "Ada Admin",
			Email:       "admin@example.com",
			PhoneNumber: "555-0100",
		},
		secret:             []byte("apitest-secret"),
		now:                time.Now,
		nextCategoryID:     1,
		nextNotificationID: 1,
		nextTemplateID:     1,
	}

	engine := gin.New()
	engine.POST("/api/auth/signin", s.signIn)

	authed := engine.Group("/", s.requireBearer)
	authed.GET("/api/category/allcategorys", s.allCategories)
	authed.POST("/api/category/addcategory", s.addCategory)
	authed.POST("/api/category/updatecategory", s.updateCategory)
	authed.PUT("/api/category/statuschange/:id", s.changeCategoryStatus)
	authed.GET("/api/collaborator/allcollaborators", s.allCollaborators)
	authed.POST("/api/collaborator/addcollaborator", s.addCollaborator)
	authed.POST("/api/collaborator/updatecollaborator", s.updateCollaborator)
	authed.PUT("/api/collaborator/disablecollaborator/:id", s.disableCollaborator)
	authed.GET("/api/notification/getallnotifications", s.allNotifications)
	authed.GET("/api/notification/getalltemplates", s.allTemplates)
	authed.POST("/api/notification/sendnotification", s.sendNotification)
	authed.PUT("/api/notification/enablenotification/:id", s.enableNotification)
	authed.PUT("/api/notification/deletenotification/:id", s.deleteNotification)

	s.engine = engine
	return s
}

// Router returns the handler to mount in an httptest server.
func (s *Server) Router() http.Handler {
	return s.engine
}

// SetNow overrides the clock used for createdAt/sentAt stamps.
func (s *Server) SetNow(now func() time.Time) {
	s.now = now
}

// Seed helpers

func (s *Server) SeedCollaborators(collaborators ...api.Collaborator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collaborators = append(s.collaborators, collaborators...)
}

func (s *Server) SeedCategories(categories ...api.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, category := range categories {
		if category.ID >= s.nextCategoryID {
			s.nextCategoryID = category.ID + 1
		}
		s.categories = append(s.categories, category)
	}
}

func (s *Server) SeedTemplates(templates ...api.Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, template := range templates {
		if template.ID >= s.nextTemplateID {
			s.nextTemplateID = template.ID + 1
		}
		s.templates = append(s.templates, template)
	}
}

func (s *Server) SeedNotifications(notifications ...api.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, notification := range notifications {
		if notification.ID >= s.nextNotificationID {
			s.nextNotificationID = notification.ID + 1
		}
		s.notifications = append(s.notifications, notification)
	}
}

// Notifications returns a copy of the stored notifications.
func (s *Server) Notifications() []api.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// auth

func (s *Server) signIn(c *gin.Context) {
	var req api.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Email != s.AdminEmail || req.Password != s.AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password."})
		return
	}

	claims := jwt.MapClaims{
		"sub": s.Admin.ID,
		"exp": s.now().Add(24 * time.Hour).Unix(),
		"iat": s.now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "token signing failed"})
		return
	}

	c.JSON(http.StatusOK, api.SignInResponse{AdminDTO: s.Admin, Token: token})
}

func (s *Server) requireBearer(c *gin.Context) {
	header := c.GetHeader("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
		return
	}
	_, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}
	c.Next()
}

// categories

func (s *Server) allCategories(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.categories)
}

func (s *Server) addCategory(c *gin.Context) {
	var category api.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	category.ID = s.nextCategoryID
	s.nextCategoryID++
	category.CollaboratorsCount = len(category.Recipients)
	category.NotificationsCount = 0

	// Initial members get assigned to the new category.
	for _, recipient := range category.Recipients {
		for i := range s.collaborators {
			if s.collaborators[i].ID == recipient.ID {
				id := category.ID
				s.collaborators[i].CategoryID = &id
			}
		}
	}
	category.Recipients = nil

	s.categories = append(s.categories, category)
	c.JSON(http.StatusOK, category)
}

func (s *Server) updateCategory(c *gin.Context) {
	var category api.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == category.ID {
			s.categories[i].Name = category.Name
			s.categories[i].Description = category.Description
			s.categories[i].IsActive = category.IsActive
			c.JSON(http.StatusOK, s.categories[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "category not found"})
}

func (s *Server) changeCategoryStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid category id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].IsActive = !s.categories[i].IsActive
			c.JSON(http.StatusOK, s.categories[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "category not found"})
}

// collaborators

func (s *Server) allCollaborators(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.collaborators)
}

func (s *Server) addCollaborator(c *gin.Context) {
	var collaborator api.Collaborator
	if err := c.ShouldBindJSON(&collaborator); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.collaborators {
		if existing.ID == collaborator.ID {
			c.JSON(http.StatusConflict, gin.H{"message": "collaborator id already exists"})
			return
		}
	}
	s.collaborators = append(s.collaborators, collaborator)
	c.JSON(http.StatusOK, collaborator)
}

func (s *Server) updateCollaborator(c *gin.Context) {
	var collaborator api.Collaborator
	if err := c.ShouldBindJSON(&collaborator); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.collaborators {
		if s.collaborators[i].ID == collaborator.ID {
			s.collaborators[i] = collaborator
			c.JSON(http.StatusOK, collaborator)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "collaborator not found"})
}

func (s *Server) disableCollaborator(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.collaborators {
		if s.collaborators[i].ID == id {
			s.collaborators[i].IsActive = !s.collaborators[i].IsActive
			c.JSON(http.StatusOK, s.collaborators[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "collaborator not found"})
}

// notifications

func (s *Server) allNotifications(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.notifications)
}

func (s *Server) allTemplates(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.templates)
}

func (s *Server) sendNotification(c *gin.Context) {
	var notification api.Notification
	if err := c.ShouldBindJSON(&notification); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notification.ID = s.nextNotificationID
	s.nextNotificationID++
	now := s.now()
	notification.CreatedAt = &now
	notification.SentAt = &now
	notification.IsActive = true

	for i := range s.categories {
		if s.categories[i].ID == notification.CategoryID {
			s.categories[i].NotificationsCount++
		}
	}

	s.notifications = append([]api.Notification{notification}, s.notifications...)
	c.JSON(http.StatusOK, notification)
}

func (s *Server) enableNotification(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid notification id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].IsActive = true
			c.JSON(http.StatusOK, s.notifications[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "notification not found"})
}

func (s *Server) deleteNotification(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid notification id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "notification deleted"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "notification not found"})
}
