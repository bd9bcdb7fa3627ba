package utils

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindInvalidState
	KindConflict
	KindValidation
)

// BusinessError carries a caller-safe message for one of the business rule
// failure kinds. Internal errors never travel through it; see Internal.
type BusinessError struct {
	Kind    ErrorKind
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

func NotFound(msg string) error {
	return &BusinessError{Kind: KindNotFound, Message: msg}
}

func InvalidState(msg string) error {
	return &BusinessError{Kind: KindInvalidState, Message: msg}
}

func Conflict(msg string) error {
	return &BusinessError{Kind: KindConflict, Message: msg}
}

func Validation(msg string) error {
	return &BusinessError{Kind: KindValidation, Message: msg}
}

func IsBusinessError(err error) bool {
	var be *BusinessError
	return errors.As(err, &be)
}

// Internal logs the raw error with its action context and returns the
// generic error handed to external callers. Raw detail stays in the log.
func Internal(action, component string, err error) error {
	log.Printf("[%s] %s: %s %s\n", component, action, time.Now().Format(time.RFC3339), err.Error())
	return errors.New("an unexpected error has occurred, please try again later")
}

// PassThrough keeps business errors as-is and wraps everything else the way
// Internal does. Transition functions funnel their returns through this.
func PassThrough(action, component string, err error) error {
	if err == nil {
		return nil
	}
	if IsBusinessError(err) {
		return err
	}
	return Internal(action, component, err)
}

func httpStatus(err error) int {
	var be *BusinessError
	if !errors.As(err, &be) {
		return http.StatusInternalServerError
	}
	switch be.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidState:
		return http.StatusUnprocessableEntity
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func AbortWithError(ctx *gin.Context, err error) {
	ctx.JSON(httpStatus(err), gin.H{"error": err.Error()})
}
