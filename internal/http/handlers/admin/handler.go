package admin

import "github.com/egzit/egzit/internal/provider"

// Handler hosts backoffice endpoints
type Handler struct {
	*provider.Container
}

// New creates an admin handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
