package utils

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidDateRange     = errors.New("end date is before start date")
	ErrInvalidBudget        = errors.New("budget is not a number")
	ErrItineraryUnavailable = errors.New("could not generate a detailed plan")
	ErrDestinationNotFound  = errors.New("destination not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrSessionNotFound      = errors.New("session not found")
	ErrDatabaseError        = errors.New("database error")
	ErrStorageError         = errors.New("storage error")
)
