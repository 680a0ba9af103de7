package health

import (
	"net/http"

	"hotel/shared/constant"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct{}

func New() Handler {
	return Handler{}
}

func (h *Handler) Router(r chi.Router) {
	r.Get("/health", h.Health)
}

// Health reports that the server accepts traffic
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message "Server is running"
// @Failure 503 {object} response.Error
// @Router /api/health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	response.WithMessage(w, http.StatusOK, constant.ResponseServerRunning)
}
