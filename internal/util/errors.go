package util

import "errors"

// Error taxonomy. Services return these (possibly wrapped with %w); the
// response helpers translate them to HTTP statuses.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrInsufficientPool   = errors.New("no eligible items for the requested filter")
	ErrOversizedSelection = errors.New("explicit selection exceeds requested count or contains ineligible items")
	ErrPersistence        = errors.New("persistence failure")

	ErrSessionNotFound    = errors.New("session not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrTestNotFound       = errors.New("test not found")
	ErrClipNotFound       = errors.New("video clip not found")
	ErrTagInUse           = errors.New("tag has dependent video clips")
	ErrTagCategoryInUse   = errors.New("tag category has dependent tags")
	ErrDuplicateSlug      = errors.New("an entry with this name already exists")
	ErrLinksNotAllowed    = errors.New("this tag category does not allow link URLs")
	ErrVideoTestNoClips   = errors.New("video test has no clips")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoEditProduced     = errors.New("edit requested but no edited asset was produced")
)
