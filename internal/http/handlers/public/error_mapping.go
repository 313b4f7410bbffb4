package public

import (
	"errors"

	"github.com/egzit/egzit/internal/http/handlers/shared"
	"github.com/egzit/egzit/internal/http/response"
	"github.com/egzit/egzit/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	shared.RespondError(c, code, msg, err)
}

// mappedHandlerError maps a service error onto an API response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var moveCommonErrorRules = []mappedHandlerError{
	{target: service.ErrMoveNotFound, code: response.CodeNotFound, msg: "move not found"},
	{target: service.ErrMoveInvalidInput, code: response.CodeBadRequest, msg: "invalid move request"},
	{target: service.ErrMoveStatusInvalid, code: response.CodeBadRequest, msg: "the move cannot change to that status"},
	{target: service.ErrMoveVersionConflict, code: response.CodeConflict, msg: "the move changed underneath you, reload and retry"},
}

var trackingErrorRules = []mappedHandlerError{
	{target: service.ErrTrackingPositionInvalid, code: response.CodeBadRequest, msg: "invalid GPS coordinates"},
	{target: service.ErrTrackingNotInTransit, code: response.CodeBadRequest, msg: "the move is not in transit"},
}
