// Package errors provides custom error types for the application.
package errors

import "errors"

// Document errors
var (
	ErrDocumentNotFound = errors.New("No document found with that ID")
	ErrInvalidID        = errors.New("invalid id")
	ErrEmptyUpdate      = errors.New("No fields to update")
)

// User errors
var (
	ErrUserNotFound       = errors.New("There is no user with that email address.")
	ErrInvalidCredentials = errors.New("Incorrect email or password")
	ErrMissingCredentials = errors.New("Please provide email and password!")
	ErrPasswordRoute      = errors.New("This route is not for password updates. Please use /updateMyPassword.")
	ErrWrongPassword      = errors.New("Your current password is wrong.")
	ErrPasswordMismatch   = errors.New("Passwords are not the same!")
	ErrUseSignup          = errors.New("This route is not defined! Please use /signup instead")
)

// Auth errors
var (
	ErrNotLoggedIn         = errors.New("You are not logged in! Please log in to get access.")
	ErrUserNoLongerExists  = errors.New("The user belonging to this token does no longer exist.")
	ErrPasswordChanged     = errors.New("User recently changed password! Please log in again.")
	ErrForbidden           = errors.New("You do not have permission to perform this action")
	ErrInvalidToken        = errors.New("Invalid token. Please log in again!")
	ErrTokenExpired        = errors.New("Your token has expired! Please log in again.")
	ErrResetTokenInvalid   = errors.New("Token is invalid or has expired")
	ErrEmailDeliveryFailed = errors.New("There was an error sending the email. Try again later!")
)

// Booking errors
var (
	ErrTourNotFound    = errors.New("tour not found")
	ErrPaymentDisabled = errors.New("Payments are not configured on this server")
	ErrCheckoutFailed  = errors.New("Could not create a checkout session")
)

// Review errors
var (
	ErrDuplicateReview = errors.New("You have already reviewed this tour")
)

// Rate limit errors
var (
	ErrTooManyRequests = errors.New("Too many requests from this IP, please try again in an hour!")
)
