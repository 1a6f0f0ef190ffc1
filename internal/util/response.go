package util

import (
	"errors"
	"net/http"
	"referee_training_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Response is the uniform API envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse wraps paged list payloads.
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Page(c *gin.Context, list interface{}, total int64, page, limit int) {
	Success(c, PageResponse{List: list, Total: total, Page: page, Limit: limit})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// FromError maps a service error onto the taxonomy and writes the response.
// Unknown errors are logged and reported as an internal failure without
// leaking store details.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		Unauthorized(c)
	case errors.Is(err, ErrForbidden):
		Forbidden(c)
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrQuestionNotFound),
		errors.Is(err, ErrTestNotFound),
		errors.Is(err, ErrClipNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrDuplicateSlug),
		errors.Is(err, ErrTagInUse),
		errors.Is(err, ErrTagCategoryInUse),
		errors.Is(err, ErrEmailRegistered),
		errors.Is(err, gorm.ErrDuplicatedKey):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInsufficientPool),
		errors.Is(err, ErrOversizedSelection),
		errors.Is(err, ErrLinksNotAllowed),
		errors.Is(err, ErrVideoTestNoClips),
		errors.Is(err, ErrNoEditProduced):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, err.Error())
	default:
		LogInternalError(c, err)
	}
}
