package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code identifies a stable, machine-readable error condition. The values are
// part of the wire contract and must not change between releases.
type Code string

const (
	// Type graph and publication.
	CodeOverlap                     Code = "overlap"
	CodeRelationsIncorrectCatalogus Code = "relations-incorrect-catalogus"
	CodeProcestypeMismatch          Code = "procestype-mismatch"
	CodeInvalidAfleidingswijze      Code = "invalid-afleidingswijze-for-procestermijn"
	CodeMustBeEmpty                 Code = "must-be-empty"
	CodeRequired                    Code = "required"
	CodeNonConceptObject            Code = "non-concept-object"
	CodeNonConceptRelation          Code = "non-concept-relation"
	CodeConceptRelation             Code = "concept-relation"
	CodeVerlengingMismatch          Code = "verlenging-mismatch"

	// Zaken.
	CodeUnique                      Code = "unique"
	CodeIdentificatieNietUniek      Code = "identificatie-niet-uniek"
	CodeInformatieobjectLocked      Code = "informatieobject-locked"
	CodeIndicatieGebruiksrechtUnset Code = "indicatiegebruiksrecht-unset"
	CodeMissingResultaat            Code = "missing-resultaat"
	CodeZaaktypeMismatch            Code = "zaaktype-mismatch"
	CodeDeelzaakAlsHoofdzaak        Code = "deelzaak-als-hoofdzaak"
	CodeSelfForbidden               Code = "self-forbidden"
	CodeZonderArchiefactiedatum     Code = "objects-without-archiefactiedatum"

	// Generic.
	CodeInvalid               Code = "invalid"
	CodeNotFound              Code = "not-found"
	CodeBadRequest            Code = "bad-request"
	CodePermissionDenied      Code = "permission-denied"
	CodeDependencyUnavailable Code = "dependency-unavailable"
	CodeConflict              Code = "conflict"
	CodeInternal              Code = "internal"
)

// Error is a single validation failure. Field is empty for object-level
// failures; otherwise it names the offending (camelCase) attribute.
type Error struct {
	Code   Code   `json:"code"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Field, e.Reason, e.Code)
	}
	return fmt.Sprintf("%s (%s)", e.Reason, e.Code)
}

// New builds an object-level domain error.
func New(code Code, reason string) *Error {
	return &Error{Code: code, Reason: reason}
}

// NewField builds a field-level domain error.
func NewField(field string, code Code, reason string) *Error {
	return &Error{Code: code, Field: field, Reason: reason}
}

// Wrap attaches a domain code to an underlying infrastructure error while
// keeping the original message for operators.
func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Reason: err.Error()}
}

// List aggregates multiple failures so an operation can report every violated
// rule at once instead of stopping at the first.
type List []*Error

func (l List) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// ErrOrNil collapses an empty list to nil so callers can return it directly.
func (l List) ErrOrNil() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Is reports whether err is, or contains, a domain error with the given code.
func Is(err error, code Code) bool {
	var single *Error
	if errors.As(err, &single) {
		return single.Code == code
	}
	var list List
	if errors.As(err, &list) {
		for _, e := range list {
			if e.Code == code {
				return true
			}
		}
	}
	return false
}

// Flatten normalizes any error into the envelope entries served to clients.
func Flatten(err error) List {
	var list List
	if errors.As(err, &list) {
		return list
	}
	var single *Error
	if errors.As(err, &single) {
		return List{single}
	}
	return List{New(CodeInternal, err.Error())}
}

// HTTPStatus maps a domain error to a response status. Validation failures are
// 400 by default; a handful of codes carry stronger semantics.
func HTTPStatus(err error) int {
	switch {
	case Is(err, CodeNotFound):
		return http.StatusNotFound
	case Is(err, CodePermissionDenied):
		return http.StatusForbidden
	case Is(err, CodeConflict), Is(err, CodeIdentificatieNietUniek):
		return http.StatusConflict
	case Is(err, CodeDependencyUnavailable):
		return http.StatusBadGateway
	case Is(err, CodeInternal):
		return http.StatusInternalServerError
	}
	var single *Error
	var list List
	if errors.As(err, &single) || errors.As(err, &list) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
