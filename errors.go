package realworld

import "github.com/goliatone/go-errors"

const (
	TextCodeInvalidCreds    = "AUTH_INVALID_CREDENTIALS"
	TextCodeTokenExpired    = "AUTH_TOKEN_EXPIRED"
	TextCodeTokenMalformed  = "AUTH_TOKEN_MALFORMED"
	TextCodeTokenMissing    = "AUTH_TOKEN_MISSING"
	TextCodeEmptyPassword   = "AUTH_EMPTY_PASSWORD"
	TextCodeIdentityMissing = "AUTH_IDENTITY_NOT_FOUND"
	TextCodeRecordNotFound  = "RECORD_NOT_FOUND"
	TextCodeNoContent       = "COLLECTION_EMPTY"
)

// ErrCredentialsInvalid is returned for unknown users and for password
// mismatches alike, so a caller cannot tell which one happened.
var ErrCredentialsInvalid = errors.New("could not validate credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is the low-level bcrypt mismatch error.
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a bearer token is past its expiry claim.
var ErrTokenExpired = errors.New("authentication token expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens that fail parsing or signature checks.
var ErrTokenMalformed = errors.New("authentication token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMissing is returned when no bearer token is present on the request.
var ErrTokenMissing = errors.New("missing or malformed bearer token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMissing).
	WithCode(errors.CodeUnauthorized)

// ErrUnableToDecodeSession is returned when token claims cannot be read back.
var ErrUnableToDecodeSession = errors.New("unable to decode session claims", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrIdentityNotFound is returned for identities we cannot resolve.
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithTextCode(TextCodeIdentityMissing).
	WithCode(errors.CodeNotFound)

// ErrNoEmptyString rejects empty plaintext passwords before hashing.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)

// ErrNoContent signals an empty collection; the HTTP layer renders it as 204.
var ErrNoContent = errors.New("no content", errors.CategoryNotFound).
	WithTextCode(TextCodeNoContent)

// NewRecordNotFound builds the not-found error repositories report.
func NewRecordNotFound(metadata map[string]any) *errors.Error {
	return errors.New("record not found", errors.CategoryNotFound).
		WithTextCode(TextCodeRecordNotFound).
		WithCode(errors.CodeNotFound).
		WithMetadata(metadata)
}

// IsNoContent reports whether err is the empty-collection sentinel.
func IsNoContent(err error) bool {
	return errors.Is(err, ErrNoContent)
}

// validatePayload runs ozzo rules over a request payload and reports
// failures as bad input, so malformed bodies render as 400 while keeping
// the per-field map. Business-rule violations keep CategoryValidation.
func validatePayload(fn func() error, msg string) *errors.Error {
	err := errors.ValidateWithOzzo(fn, msg)
	if err == nil {
		return nil
	}
	err.Category = errors.CategoryBadInput
	return err.WithCode(errors.CodeBadRequest)
}
