package responses

import (
	"errors"
	"net/http"

	"web-mcp/utils/platformerrors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Code          string `json:"code"` // UUID from PlatformError
	Error         string `json:"error"`
	ErrorInstance error  `json:"-"`
	RequestID     string `json:"request_id,omitempty"`
}

// HandleError handles platform errors and returns appropriate HTTP responses
// Status code is automatically determined from the error type
func HandleError(reqCtx *gin.Context, err error, message string) {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		errResp := ErrorResponse{
			Code:          platformErr.UUID,
			Error:         message,
			ErrorInstance: platformErr,
			RequestID:     platformErr.RequestID,
		}
		reqCtx.AbortWithStatusJSON(platformerrors.ErrorTypeToHTTPStatus(platformErr.Type), errResp)
		return
	}

	// assign generic error response for non-platform errors
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:         message,
		ErrorInstance: err,
	})
}

// HandleNewError creates a new typed error at the route layer and handles it
// The uuid parameter should be provided from the route for error tracking
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string, uuid string) {
	err := platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerRoute, errorType, message, nil, uuid)
	platformerrors.LogError(log.Logger, err)
	_ = reqCtx.Error(err)
	HandleError(reqCtx, err, message)
}
