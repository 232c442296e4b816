package handlers

import (
	"github.com/classhub/backend/internal/auth"
	"github.com/classhub/backend/internal/database"
	"github.com/classhub/backend/internal/lessonplan"
	"github.com/classhub/backend/internal/notify"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	authService *auth.Service
	resolver    *lessonplan.Resolver
	hub         *notify.Hub
}

// NewHandlers creates a new handlers instance
func NewHandlers(authService *auth.Service) *Handlers {
	return &Handlers{
		authService: authService,
		resolver:    lessonplan.NewResolver(database.DB),
	}
}

// SetNotifyHub enables real-time substitution announcements
func (h *Handlers) SetNotifyHub(hub *notify.Hub) {
	h.hub = hub
}
