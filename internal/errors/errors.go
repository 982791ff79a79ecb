package errors

import (
	"errors"
	"fmt"
)

const (
	ErrorFailedToConnectToTheDatabase = "Failed to connect to the database"
	ErrorFailedToConnectToRedis       = "Failed to connect to redis"
	ErrorFailedToRunTheServer         = "Failed to run the server"
	ErrorFailedToShutdownTheServer    = "Failed to shutdown the server"
	ErrFailedPendingPoll              = "Failed to poll pending transactions"
	ErrFailedResolveOutcome           = "Failed to resolve checkout outcome"
	ErrFailedLocateTransaction        = "Failed to locate transaction"
	ErrFailedLoadPurchases            = "Failed to load purchase set"
	ErrFailedFreeGrant                = "Failed to grant free access"
	ErrUserIDRequired                 = "User ID is required"
	ErrInvalidUserID                  = "Invalid User ID"
)

type BadRequestError struct {
	Message string
}

func NewBadRequestError(message string) *BadRequestError {
	return &BadRequestError{Message: message}
}

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("Bad request: %s", e.Message)
}

type NotFoundError struct {
	Resource string
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// IsNotFound reports whether err is a lookup miss. The resolution flow
// treats these as recoverable and substitutes placeholder data.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

type PurchaseDuplicateError struct{}

func NewPurchaseDuplicateError() *PurchaseDuplicateError {
	return &PurchaseDuplicateError{}
}

func (e *PurchaseDuplicateError) Error() string {
	return "purchase already exists"
}

type GatewayError struct {
	StatusCode int
	Message    string
}

func NewGatewayError(statusCode int, message string) *GatewayError {
	return &GatewayError{StatusCode: statusCode, Message: message}
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s", e.StatusCode, e.Message)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
