package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/sjperalta/debtbook-api/internal/i18n"
	"github.com/sjperalta/debtbook-api/internal/middleware"
	"github.com/sjperalta/debtbook-api/internal/policy"
	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/sjperalta/debtbook-api/internal/services"
	"github.com/sjperalta/debtbook-api/internal/validation"
	"github.com/sjperalta/debtbook-api/pkg/logger"
)

// currentPrincipal returns the authenticated caller or aborts with 401
func currentPrincipal(c *gin.Context) (policy.Principal, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok || principal.UserID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": i18n.T(c.GetHeader("Accept-Language"), i18n.MsgUnauthorized)})
		return policy.Principal{}, false
	}
	return principal, true
}

// respondError maps a service error to a status code and a localized body.
// Unexpected errors get the operation's own message (fallback) and are
// reported to Sentry.
func respondError(c *gin.Context, principal policy.Principal, err error, fallback string) {
	locale := principal.Locale

	if fieldErrs, ok := validation.AsFieldErrors(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrs})
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrFeatureDisabled):
		c.JSON(http.StatusNotFound, gin.H{"error": i18n.T(locale, keyFor(err))})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": i18n.T(locale, i18n.MsgForbidden)})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": i18n.T(locale, i18n.MsgUnauthorized)})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": i18n.T(locale, i18n.MsgInvalidState)})
	case errors.Is(err, services.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": i18n.T(locale, i18n.MsgDuplicate)})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": i18n.T(locale, i18n.MsgInvalidRequest)})
	default:
		logger.Error("Request failed", "path", c.FullPath(), "user_id", principal.UserID, "error", err)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(locale, fallback)})
	}
}

func keyFor(err error) string {
	if errors.Is(err, services.ErrFeatureDisabled) {
		return i18n.MsgFeatureDisabled
	}
	return i18n.MsgNotFound
}

// badRequest answers a body that could not be decoded
func badRequest(c *gin.Context, principal policy.Principal) {
	c.JSON(http.StatusBadRequest, gin.H{"error": i18n.T(principal.Locale, i18n.MsgInvalidRequest)})
}

// listQuery reads page, per_page and sort (format: field-direction)
func listQuery(c *gin.Context, filters ...string) *repository.ListQuery {
	query := repository.NewListQuery()
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		query.Page = page
	}
	if perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "20")); err == nil && perPage > 0 {
		query.PerPage = perPage
	}
	for _, f := range filters {
		query.Filters[f] = c.Query(f)
	}

	if sort := c.Query("sort"); sort != "" {
		parts := strings.Split(sort, "-")
		query.SortBy = parts[0]
		if len(parts) > 1 {
			query.SortDir = parts[1]
		}
	}
	return query
}

func pagination(query *repository.ListQuery, total int64) gin.H {
	return gin.H{
		"page":        query.Page,
		"per_page":    query.PerPage,
		"total":       total,
		"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
	}
}
