package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialcarehq/social-care-backend/internal/apperr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError maps any service-layer failure to its stable code and
// HTTP status. Internal detail stays in the wrapped error, not the body.
func RespondError(c *gin.Context, err error) {
	coded := apperr.Map(err)
	c.JSON(coded.Status, ErrorEnvelope{
		Error: APIError{
			Message: coded.Message,
			Code:    coded.Code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
