package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/loginauth/errors"
)

// RespondWithError writes err as the JSON error envelope. Errors that are not
// an *apperrors.AppError become a generic 500 without details.
func RespondWithError(c *gin.Context, err error) {
	appErr := apperrors.Wrap(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends a 200 response with body as JSON.
func RespondOK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}
