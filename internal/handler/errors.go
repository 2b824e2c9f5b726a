package handler

import (
	"errors"
	"net/http"

	"pump-radar/internal/mention"
	"pump-radar/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNoDictionary),
		errors.Is(err, service.ErrGroupNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrTickersUnavailable),
		errors.Is(err, mention.ErrEmptyDictionary):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrUnknownExchange),
		errors.Is(err, service.ErrInvalidGroupKind):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
