package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type FailureKind string

const (
	// FailureKindHTTP is a structured error response: StatusCode is set and
	// Detail/Reason carry whatever the body provided.
	FailureKindHTTP FailureKind = "http"
	// FailureKindTransport means the endpoint could not be reached at all.
	FailureKindTransport FailureKind = "transport"
	// FailureKindParse means the endpoint answered but the body did not decode.
	FailureKindParse FailureKind = "parse"
	// FailureKindOther covers everything the client could not classify.
	FailureKindOther FailureKind = "other"
)

const (
	transportFailureMessage = "Network error: API endpoint is unreachable."
	parseFailureMessage     = "Response parsing failed from API."
	genericFailureMessage   = "Request failed."
)

// Failure is the normalized form of every failed remote call. Kind makes the
// classification explicit so downstream policy never falls through silently on
// an unanticipated payload shape.
type Failure struct {
	Kind       FailureKind
	StatusCode int
	Detail     string
	Reason     string
}

func (f *Failure) Error() string {
	if f == nil {
		return ""
	}
	if f.Kind == FailureKindHTTP {
		return fmt.Sprintf("api error (%d): %s", f.StatusCode, f.Message())
	}
	return fmt.Sprintf("api error (%s): %s", f.Kind, f.Message())
}

// Message derives the user-facing text: payload detail wins, then payload
// error, then a canned message for transport and parse failures, then a
// generic fallback.
func (f *Failure) Message() string {
	if f == nil {
		return genericFailureMessage
	}
	if detail := strings.TrimSpace(f.Detail); detail != "" {
		return detail
	}
	if reason := strings.TrimSpace(f.Reason); reason != "" {
		return reason
	}
	switch f.Kind {
	case FailureKindTransport:
		return transportFailureMessage
	case FailureKindParse:
		return parseFailureMessage
	}
	return genericFailureMessage
}

func (f *Failure) Unauthorized() bool {
	return f != nil && f.Kind == FailureKindHTTP && f.StatusCode == http.StatusUnauthorized
}

func AsFailure(err error) *Failure {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}
	return nil
}
