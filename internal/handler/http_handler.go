package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/LenzB1987/maid-finderapp/internal/domain"
	"github.com/LenzB1987/maid-finderapp/internal/search"
	"github.com/LenzB1987/maid-finderapp/internal/service"
	"github.com/LenzB1987/maid-finderapp/pkg/log"
	"github.com/LenzB1987/maid-finderapp/pkg/response"
)

// Handler handles HTTP requests for the caregiver search service.
type Handler struct {
	searchService service.CaregiverSearchService
}

// NewHandler creates a new HTTP handler.
func NewHandler(searchService service.CaregiverSearchService) *Handler {
	return &Handler{
		searchService: searchService,
	}
}

// RegisterRoutes registers all routes. Every operation is a public read.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		caregivers := api.Group("/caregivers")
		{
			caregivers.GET("/search", h.SearchCaregivers)
			caregivers.GET("/:id", h.GetCaregiver)
			caregivers.GET("/:id/reviews", h.ListReviews)
		}
	}
}

// SearchCaregivers runs a filtered, ranked, paginated caregiver search.
func (h *Handler) SearchCaregivers(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var params domain.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		l.Warn().Err(err).Msg("failed to bind search params")
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.searchService.Search(ctx, params)
	if err != nil {
		h.writeError(c, err, "failed to search caregivers")
		return
	}

	response.Success(c, result)
}

// GetCaregiver retrieves one caregiver with its rating aggregate.
func (h *Handler) GetCaregiver(c *gin.Context) {
	ctx := c.Request.Context()

	caregiverID := c.Param("id")

	caregiver, err := h.searchService.GetCaregiver(ctx, caregiverID)
	if err != nil {
		if errors.Is(err, service.ErrCaregiverNotFound) {
			response.NotFound(c, "caregiver not found")
			return
		}
		h.writeError(c, err, "failed to get caregiver")
		return
	}

	response.Success(c, caregiver)
}

// ListReviews retrieves one page of a caregiver's reviews. Paging params go
// through the same coercion as the search route, so a non-numeric limit is a
// 400 on both.
func (h *Handler) ListReviews(c *gin.Context) {
	ctx := c.Request.Context()

	caregiverID := c.Param("id")
	limit, err := search.CoerceInt("limit", c.Query("limit"), search.DefaultLimit)
	if err != nil {
		h.writeError(c, err, "invalid reviews paging")
		return
	}
	offset, err := search.CoerceInt("offset", c.Query("offset"), 0)
	if err != nil {
		h.writeError(c, err, "invalid reviews paging")
		return
	}

	result, err := h.searchService.ListReviews(ctx, caregiverID, limit, offset)
	if err != nil {
		h.writeError(c, err, "failed to list reviews")
		return
	}

	response.Success(c, result)
}

// writeError maps error kinds to status codes: malformed input is the
// caller's fault, store failures are retriable, anything else is a bug.
func (h *Handler) writeError(c *gin.Context, err error, msg string) {
	l := log.Ctx(c.Request.Context())

	if domain.IsValidation(err) {
		response.BadRequest(c, err.Error())
		return
	}
	if domain.IsDataAccess(err) {
		l.Error().Err(err).Msg(msg)
		response.ServiceUnavailable(c, "search temporarily unavailable, try again")
		return
	}
	l.Error().Err(err).Msg(msg)
	response.InternalError(c, msg)
}
