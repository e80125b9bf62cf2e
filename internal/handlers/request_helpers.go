package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"catalog-admin/internal/catalog"
	"catalog-admin/internal/logging"
	"catalog-admin/internal/store"
)

const storeTimeout = 5 * time.Second

// storeContext bounds store work by the request, so a client disconnect
// cancels it.
func storeContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), storeTimeout)
}

func ensureStoreConnection(ctx context.Context, client store.Client) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return client.Ping(checkCtx)
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	logger := logging.L.With(zap.String("route", route), zap.Int("status", status))
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("error", message))
	} else {
		logger.Info("request rejected", zap.String("error", message))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func respondMessage(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// respondStoreError maps domain and store failures onto HTTP statuses.
func respondStoreError(c *gin.Context, route string, err error, notFound string) {
	var validation *catalog.ValidationError
	var conflict *catalog.ConflictError

	switch {
	case errors.As(err, &validation):
		respondWithError(c, http.StatusBadRequest, route, validation.Msg)
	case errors.As(err, &conflict):
		respondWithError(c, http.StatusConflict, route, conflict.Msg)
	case errors.Is(err, store.ErrNotFound):
		if notFound == "" {
			notFound = "not found"
		}
		respondWithError(c, http.StatusNotFound, route, notFound)
	case errors.Is(err, store.ErrInvalidCursor):
		respondWithError(c, http.StatusBadRequest, route, "invalid cursor")
	case errors.Is(err, store.ErrConflict):
		respondWithError(c, http.StatusConflict, route, "duplicate entry")
	default:
		logging.L.Error("store error", zap.String("route", route), zap.Error(err))
		respondWithError(c, http.StatusInternalServerError, route, "db error")
	}
}

func respondValidationError(c *gin.Context, route string, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			case "phone10":
				details = append(details, "Phone number must be a valid 10-digit number.")
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		logging.L.Info("validation failed", zap.String("route", route), zap.Strings("details", details))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   details[0],
			"details": details,
		})
		return
	}

	respondWithError(c, http.StatusBadRequest, route, "invalid body")
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func bindJSON(c *gin.Context, route string, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondValidationError(c, route, err)
		return false
	}
	return true
}

// requireConfirmation is the server half of the console's confirmation
// dialog: destructive calls must say ?confirm=true.
func requireConfirmation(c *gin.Context, route string) bool {
	if c.Query("confirm") == "true" {
		return true
	}
	respondWithError(c, http.StatusPreconditionRequired, route, "confirmation required")
	return false
}

func pathID(c *gin.Context, route string) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondWithError(c, http.StatusBadRequest, route, "invalid id")
		return "", false
	}
	return id, true
}
