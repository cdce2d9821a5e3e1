package apierror

import (
	"errors"
	"net/http"
)

// Normalize converts any failure into an *Error.
//
//   - an *Error anywhere in the wrap chain is returned as is
//   - a *TransportError is classified by status
//   - any other error becomes UNKNOWN_ERROR with its message
//   - anything else becomes UNKNOWN_ERROR with raw attached as Details
func Normalize(raw any) *Error {
	err, isErr := raw.(error)
	if !isErr || err == nil {
		return &Error{
			Message: CodeUnknownError.DefaultMessage(),
			Code:    CodeUnknownError,
			Details: raw,
		}
	}

	var ae *Error
	if errors.As(err, &ae) {
		if ae != nil {
			return ae
		}
		return &Error{Message: CodeUnknownError.DefaultMessage(), Code: CodeUnknownError}
	}

	var te *TransportError
	if errors.As(err, &te) {
		return fromTransport(te)
	}

	return &Error{Message: err.Error(), Code: CodeUnknownError, cause: err}
}

func fromTransport(te *TransportError) *Error {
	if te.StatusCode == 0 {
		msg := CodeNetworkError.DefaultMessage()
		if te.Err != nil && te.Err.Error() != "" {
			msg = te.Err.Error()
		}
		return &Error{Message: msg, Code: CodeNetworkError, cause: te}
	}

	body := DecodeBody(te.Body)
	e := &Error{Status: te.StatusCode, cause: te}

	switch te.StatusCode {
	case http.StatusBadRequest:
		e.Code = CodeBadRequest
		e.Details = details(body)
	case http.StatusUnauthorized:
		e.Code = CodeUnauthorized
	case http.StatusForbidden:
		e.Code = CodeForbidden
	case http.StatusNotFound:
		e.Code = CodeNotFound
	case http.StatusUnprocessableEntity:
		e.Code = CodeValidationError
		if sb, ok := body.(StructuredBody); ok && sb.Errors != nil {
			e.Details = sb.Errors
		} else {
			e.Details = details(body)
		}
	case http.StatusTooManyRequests:
		e.Code = CodeRateLimited
	case http.StatusInternalServerError:
		e.Code = CodeServerError
	default:
		e.Code = CodeNetworkError
		e.Details = details(body)
	}

	e.Message = e.Code.DefaultMessage()
	if e.Code == CodeNetworkError {
		// Unmapped statuses fall back to the transport text before the default.
		e.Message = te.Error()
	}
	if sb, ok := body.(StructuredBody); ok && sb.Message != "" {
		e.Message = sb.Message
	}
	return e
}
