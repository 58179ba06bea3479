// Package config handles YAML config file loading for swupdate-apply.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	refPattern  = regexp.MustCompile(`\$\{([^}]*)\}`)
	namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
)

// ExpandError reports a ${...} reference that cannot be expanded.
type ExpandError struct {
	Ref    string
	Reason string
}

func (e *ExpandError) Error() string {
	return fmt.Sprintf("cannot expand %s: %s", e.Ref, e.Reason)
}

// ExpandEnv replaces environment references in input. Supported forms:
//
//	${VAR}          value of VAR, empty when unset
//	${VAR:-default} value of VAR, or default when VAR is unset or empty
//	${VAR:?message} value of VAR; an error carrying message when unset or empty
//
// Any other ${...} form, or an unterminated "${", is an *ExpandError.
// A bare $VAR is left untouched.
func ExpandEnv(input string) (string, error) {
	var firstErr error
	out := refPattern.ReplaceAllStringFunc(input, func(ref string) string {
		value, reason := expandRef(ref[2 : len(ref)-1])
		if reason != "" && firstErr == nil {
			firstErr = &ExpandError{Ref: ref, Reason: reason}
		}
		return value
	})
	if firstErr != nil {
		return "", firstErr
	}

	if rest := refPattern.ReplaceAllString(input, ""); strings.Contains(rest, "${") {
		ref := rest[strings.Index(rest, "${"):]
		if i := strings.IndexByte(ref, '\n'); i >= 0 {
			ref = ref[:i]
		}
		return "", &ExpandError{Ref: ref, Reason: "missing closing brace"}
	}
	return out, nil
}

// expandRef expands the body of one ${...} reference. A non-empty reason
// means the reference is invalid.
func expandRef(body string) (value, reason string) {
	name := namePattern.FindString(body)
	if name == "" {
		return "", "invalid variable name"
	}
	value = os.Getenv(name)

	switch op := body[len(name):]; {
	case op == "":
		return value, ""
	case strings.HasPrefix(op, ":-"):
		if value == "" {
			return op[2:], ""
		}
		return value, ""
	case strings.HasPrefix(op, ":?"):
		if value != "" {
			return value, ""
		}
		if msg := op[2:]; msg != "" {
			return "", msg
		}
		return "", name + " is required"
	default:
		return "", fmt.Sprintf("unsupported syntax %q", op)
	}
}
