package aiclient

import (
	"errors"
	"fmt"
	"strings"
)

// FailureKind discriminates why a generation call produced no text.
type FailureKind string

const (
	KindMissingCredential      FailureKind = "missing_credential"
	KindInvalidCredentialShape FailureKind = "invalid_credential_shape"
	KindBadRequest             FailureKind = "bad_request"
	KindInvalidCredential      FailureKind = "invalid_credential"
	KindAccessDenied           FailureKind = "access_denied"
	KindHTTPError              FailureKind = "http_error"
	KindRateLimited            FailureKind = "rate_limited"
	KindServiceError           FailureKind = "service_error"
	KindModelUnavailable       FailureKind = "model_unavailable"
	KindNetworkError           FailureKind = "network_error"
	KindNoCandidates           FailureKind = "no_candidates"
	KindEmptyBody              FailureKind = "empty_body"
	KindUnknown                FailureKind = "unknown"
	KindCanceled               FailureKind = "canceled"
	KindExhausted              FailureKind = "exhausted"
)

// Failure is the error returned by every generation path. Message is safe to
// show to an end user as is.
type Failure struct {
	Kind       FailureKind
	Model      string
	StatusCode int
	Message    string
	Err        error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// IsKind reports whether err is a *Failure of the given kind.
func IsKind(err error, kind FailureKind) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == kind
}

// KindOf returns the failure kind carried by err, or "" when err is not a *Failure.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

func missingCredential(envName string) *Failure {
	return &Failure{
		Kind:    KindMissingCredential,
		Message: fmt.Sprintf("API key missing. Set %s.", envName),
	}
}

func invalidCredentialShape(provider string) *Failure {
	return &Failure{
		Kind:    KindInvalidCredentialShape,
		Message: fmt.Sprintf("API key looks invalid. Please paste a full %s key.", provider),
	}
}

// statusFailure classifies a non-retryable HTTP status.
func statusFailure(model string, status int, body, envName string) *Failure {
	f := &Failure{Model: model, StatusCode: status}
	switch status {
	case 400:
		f.Kind = KindBadRequest
		f.Message = "Bad request (400)."
	case 401:
		f.Kind = KindInvalidCredential
		f.Message = fmt.Sprintf("Invalid API key (401). Check your %s.", envName)
	case 403:
		f.Kind = KindAccessDenied
		f.Message = strings.TrimSpace("Access denied (403). " + body)
	default:
		f.Kind = KindHTTPError
		f.Message = strings.TrimSpace(fmt.Sprintf("HTTP error %d. %s", status, body))
	}
	return f
}

func modelUnavailable(model string, status int, body string) *Failure {
	detail := body
	if detail == "" {
		detail = fmt.Sprintf("%d", status)
	}
	return &Failure{
		Kind:       KindModelUnavailable,
		Model:      model,
		StatusCode: status,
		Message:    fmt.Sprintf("Model %s not available: %s", model, detail),
	}
}

func exhaustedStatus(provider, model string, status int) *Failure {
	if status == 429 {
		return &Failure{
			Kind:       KindRateLimited,
			Model:      model,
			StatusCode: status,
			Message:    fmt.Sprintf("Rate limited (429) on %s after retries.", model),
		}
	}
	return &Failure{
		Kind:       KindServiceError,
		Model:      model,
		StatusCode: status,
		Message:    fmt.Sprintf("%s service error (%d) on %s after retries.", provider, status, model),
	}
}

func networkFailure(model string, err error) *Failure {
	return &Failure{
		Kind:    KindNetworkError,
		Model:   model,
		Message: fmt.Sprintf("Network error on %s: %v", model, err),
		Err:     err,
	}
}

func canceled(model string, err error) *Failure {
	return &Failure{
		Kind:    KindCanceled,
		Model:   model,
		Message: "Request canceled.",
		Err:     err,
	}
}

func noCandidates() *Failure {
	return &Failure{Kind: KindNoCandidates, Message: "No candidates returned."}
}

func emptyBody() *Failure {
	return &Failure{Kind: KindEmptyBody, Message: "Empty response body."}
}

func unknownFailure(err error) *Failure {
	msg := "Unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Failure{Kind: KindUnknown, Message: "AI error: " + msg, Err: err}
}

func exhausted() *Failure {
	return &Failure{Kind: KindExhausted, Message: "Request failed after retries. Please try again."}
}
