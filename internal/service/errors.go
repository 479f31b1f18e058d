package service

import "errors"

// SupportEmail is where users are directed for the operations this interface
// deliberately does not provide.
const SupportEmail = "myrecipieboxsupport@example.com"

// Service errors double as the user-facing messages the HTTP layer returns,
// so their text is part of the wire contract.
var (
	ErrDuplicateName   = errors.New("Recipe name already exists. Please rename it.")
	ErrInvalidCategory = errors.New("Invalid category")
	ErrRecipeNotFound  = errors.New("Recipe not found.")
	ErrNoRecipes       = errors.New("No recipes found.")

	ErrDuplicateEmail     = errors.New("A user with this email already exists.")
	ErrDuplicateUsername  = errors.New("This username is already taken. Please choose a different one.")
	ErrUserNotFound       = errors.New("User not found.")
	ErrInvalidCredentials = errors.New("Invalid username or password.")

	ErrRecipeDeletionNotAvailable = errors.New(
		"Recipe deletion is not available through this interface. " +
			"Please email " + SupportEmail + " to request recipe deletion.")
	ErrAccountDeletionNotAvailable = errors.New(
		"Account deletion is not available through this interface. " +
			"Please email " + SupportEmail + " to request account deletion.")
	ErrPasswordResetNotAvailable = errors.New(
		"Password reset is not available through this interface. " +
			"Please email " + SupportEmail + " to request a password reset.")
)
