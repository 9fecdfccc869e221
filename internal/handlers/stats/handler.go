package stats

import (
	"net/http"

	"innstay/infras/otel"
	"innstay/internal/domains/stats/service"
	"innstay/shared/constant"
	"innstay/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Stats
	otel    otel.Otel
}

func New(service service.Stats, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/stats", func(routerGroup chi.Router) {
		routerGroup.Get("/views", handler.GetViews)
	})
}

// GetViews returns the site-wide page view counter.
// @Summary Get site views
// @Description Retrieve the total number of page views recorded across the site.
// @Tags Stats
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.ViewsResponse] "Total site views"
// @Failure 500 {object} response.Error
// @Router /v1/stats/views [get]
func (handler *Handler) GetViews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetViews")
	defer scope.End()

	views, err := handler.service.Views(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get site views")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Site views retrieved successfully")

	response.WithJSON(w, http.StatusOK, views)
}
