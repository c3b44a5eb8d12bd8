package middleware

import (
	"github.com/gin-gonic/gin"

	"shopledger/internal/core/apperror"
	"shopledger/internal/infrastructure/storage/postgres"
	"shopledger/pkg/logger"
)

// ErrorHandler transforms errors registered on the gin context into one
// consistent JSON shape. Handlers call c.Error and abort; this is the
// single place a response body for an error is produced.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if c.Writer.Written() {
			return
		}

		// Driver-level errors that escaped the repos. Check violations
		// are the database refusing an invariant (quantity >= 0 is the
		// backstop behind the conditional stock update).
		if postgres.IsSerializationFailure(err) {
			err = apperror.NewConcurrentModification("request", c.FullPath()).WithCause(err)
		} else if postgres.IsCheckViolation(err) {
			err = apperror.NewValidation("value rejected by a data constraint").WithCause(err)
		}

		if appErr, ok := apperror.AsAppError(err); ok {
			if appErr.Err != nil {
				logger.Error(c.Request.Context(), "request error",
					"code", appErr.Code,
					"cause", appErr.Err,
				)
			}
			c.JSON(appErr.HTTPStatus, gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
				"details": appErr.Details,
			})
			return
		}

		logger.Error(c.Request.Context(), "unhandled error", "error", err)
		c.JSON(500, gin.H{
			"code":    apperror.CodeInternal,
			"message": "Internal server error",
			"details": map[string]any{
				"request_id": c.GetString("request_id"),
			},
		})
	}
}
