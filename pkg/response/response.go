package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/fox-tracks-go/internal/analysis"
	"github.com/jengzang/fox-tracks-go/internal/ingest"
	"github.com/jengzang/fox-tracks-go/internal/repository"
	"github.com/jengzang/fox-tracks-go/internal/trajectory"
)

// Response represents a standard API response
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created sends a 201 response for a newly stored resource
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "created",
		Data:    data,
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFound sends a 404 not found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError sends a 500 internal server error response
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// StatusOf maps a domain error to its HTTP status
func StatusOf(err error) int {
	switch {
	case errors.Is(err, trajectory.ErrInvalidArgument),
		errors.Is(err, trajectory.ErrMalformedObservation),
		errors.Is(err, ingest.ErrMissingColumn):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrSubjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, analysis.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// FromError sends the error with the status StatusOf picks for it
func FromError(c *gin.Context, err error) {
	Error(c, StatusOf(err), err.Error())
}
