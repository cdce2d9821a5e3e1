package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/yndnr/tankmate-go/internal/core/apierror"
	"github.com/yndnr/tankmate-go/internal/core/domain"
	"github.com/yndnr/tankmate-go/internal/core/validation"
)

// FormatError renders err for a terminal. Validation failures list every
// field; API failures show the message followed by any field errors the
// server returned.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var ve *validation.Error
	if errors.As(err, &ve) {
		var b strings.Builder
		b.WriteString("invalid input:")
		for _, v := range ve.Violations {
			b.WriteString("\n  - ")
			b.WriteString(v)
		}
		return b.String()
	}

	var ae *apierror.Error
	if errors.As(err, &ae) {
		msg := ae.Message
		if ae.Code == apierror.CodeUnauthorized {
			msg += "\nRun 'tankmate-cli login' to sign in again."
		}
		return msg + fieldLines(apierror.FieldErrors(ae))
	}

	var de *domain.DomainError
	if errors.As(err, &de) {
		switch {
		case de.Details != "" && de.Cause != nil:
			return fmt.Sprintf("%s: %s (%v)", de.Message, de.Details, de.Cause)
		case de.Details != "":
			return de.Message + ": " + de.Details
		case de.Cause != nil:
			return fmt.Sprintf("%s: %v", de.Message, de.Cause)
		}
		return de.Message
	}

	return err.Error()
}

// fieldLines lists per-field messages, skipping the general one which is
// already part of the headline.
func fieldLines(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k != apierror.GeneralField && fields[k] != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "\n  - %s: %s", k, fields[k])
	}
	return b.String()
}
