package public

import (
	"github.com/egzit/egzit/internal/provider"
)

// Handler hosts public-facing endpoints
type Handler struct {
	*provider.Container
}

// New creates a public handler
func New(container *provider.Container) *Handler {
	return &Handler{Container: container}
}
