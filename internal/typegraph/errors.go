package typegraph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a located schema error. The set is closed.
type ErrorKind uint8

const (
	KindDuplicateTypeDefinition ErrorKind = iota + 1
	KindDuplicateField
	KindMutationFieldIsDuplicate
	KindTypenameCannotBeDefined
	KindIDFieldMustBeNonNullIDType
	KindIsographObjectTypeNameNotDefined
	KindIsographObjectTypeNameIsScalar
	KindTypeExtensionMismatch
	KindExtendedTypeNotDefined
	KindUnsupportedTypeExtension

	// @exposeField directive mapping
	KindInvalidPrimaryDirectiveArgumentCount
	KindMissingPathArg
	KindMissingFieldMapArg
	KindPathValueShouldBeString
	KindInvalidFieldMap
	KindInvalidField
	KindInvalidMutationField
	KindNotAllToFieldsUsed
	KindFieldMapToCannotJustBeADot
	KindPrimaryDirectiveArgumentDoesNotExistOnField
	KindPrimaryDirectiveCannotRemapObject
	KindPrimaryDirectiveFieldNotFound
)

var errorKindNames = map[ErrorKind]string{
	KindDuplicateTypeDefinition:                     "DuplicateTypeDefinition",
	KindDuplicateField:                              "DuplicateField",
	KindMutationFieldIsDuplicate:                    "MutationFieldIsDuplicate",
	KindTypenameCannotBeDefined:                     "TypenameCannotBeDefined",
	KindIDFieldMustBeNonNullIDType:                  "IdFieldMustBeNonNullIdType",
	KindIsographObjectTypeNameNotDefined:            "IsographObjectTypeNameNotDefined",
	KindIsographObjectTypeNameIsScalar:              "IsographObjectTypeNameIsScalar",
	KindTypeExtensionMismatch:                       "TypeExtensionMismatch",
	KindExtendedTypeNotDefined:                      "ExtendedTypeNotDefined",
	KindUnsupportedTypeExtension:                    "UnsupportedTypeExtension",
	KindInvalidPrimaryDirectiveArgumentCount:        "InvalidPrimaryDirectiveArgumentCount",
	KindMissingPathArg:                              "MissingPathArg",
	KindMissingFieldMapArg:                          "MissingFieldMapArg",
	KindPathValueShouldBeString:                     "PathValueShouldBeString",
	KindInvalidFieldMap:                             "InvalidFieldMap",
	KindInvalidField:                                "InvalidField",
	KindInvalidMutationField:                        "InvalidMutationField",
	KindNotAllToFieldsUsed:                          "NotAllToFieldsUsed",
	KindFieldMapToCannotJustBeADot:                  "FieldMapToCannotJustBeADot",
	KindPrimaryDirectiveArgumentDoesNotExistOnField: "PrimaryDirectiveArgumentDoesNotExistOnField",
	KindPrimaryDirectiveCannotRemapObject:           "PrimaryDirectiveCannotRemapObject",
	KindPrimaryDirectiveFieldNotFound:               "PrimaryDirectiveFieldNotFound",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "UnknownErrorKind"
}

// Error is a user-caused schema error with the source location it refers to.
type Error struct {
	Kind     ErrorKind
	Message  string
	Location Location
}

func (e *Error) Error() string {
	if loc := e.Location.String(); loc != "" {
		return e.Message + " " + loc
	}
	return e.Message
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func newError(kind ErrorKind, loc Location, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Location: loc}
}

// Message templates. Keep wording stable; callers match on it in tests.

func errDuplicateTypeDefinition(definitionType, typeName string, loc Location) *Error {
	return newError(KindDuplicateTypeDefinition, loc,
		"Duplicate type definition (%s) named %q", definitionType, typeName)
}

func errDuplicateField(fieldName, parentType string, loc Location) *Error {
	return newError(KindDuplicateField, loc,
		"Duplicate field named %q on type %q", fieldName, parentType)
}

func errMutationFieldIsDuplicate(fieldName, parentType string, loc Location) *Error {
	return newError(KindMutationFieldIsDuplicate, loc,
		"Due to a mutation, a field named %q was to be created on type %q, but a field with that name already exists.", fieldName, parentType)
}

func errTypenameCannotBeDefined(parentType string, loc Location) *Error {
	return newError(KindTypenameCannotBeDefined, loc,
		"You cannot manually define the %q field, which is defined in %q.", typenameFieldName, parentType)
}

func errIDFieldMustBeNonNullIDType(parentType string, loc Location) *Error {
	return newError(KindIDFieldMustBeNonNullIDType, loc,
		"The %s field on %q must have type \"ID!\".", idFieldName, parentType)
}

func errObjectTypeNameNotDefined(typeName string, suggestion string, loc Location) *Error {
	e := newError(KindIsographObjectTypeNameNotDefined, loc, "Type %q is never defined.", typeName)
	if suggestion != "" {
		e.Message += fmt.Sprintf(" Did you mean %q?", suggestion)
	}
	return e
}

func errObjectTypeNameIsScalar(typeName, implementingObject string, loc Location) *Error {
	return newError(KindIsographObjectTypeNameIsScalar, loc,
		"%q attempted to implement %q. However, %q is a scalar, but only other object types can be implemented.",
		implementingObject, typeName, typeName)
}

func errTypeExtensionMismatch(typeName, isType, extendedAsType string, loc Location) *Error {
	return newError(KindTypeExtensionMismatch, loc,
		"The type `%s` is %s, but it is being extended as %s.", typeName, isType, extendedAsType)
}

func errExtendedTypeNotDefined(typeName, suggestion string, loc Location) *Error {
	e := newError(KindExtendedTypeNotDefined, loc, "Type %q is extended, but never defined.", typeName)
	if suggestion != "" {
		e.Message += fmt.Sprintf(" Did you mean %q?", suggestion)
	}
	return e
}

func errUnsupportedTypeExtension(typeName, what string, loc Location) *Error {
	return newError(KindUnsupportedTypeExtension, loc,
		"Adding %s in schema extensions is not allowed, yet (extending %q).", what, typeName)
}

func errInvalidPrimaryDirectiveArgumentCount(loc Location) *Error {
	return newError(KindInvalidPrimaryDirectiveArgumentCount, loc,
		"The @%s directive should have three arguments", exposeFieldDirectiveName)
}

func errMissingPathArg(loc Location) *Error {
	return newError(KindMissingPathArg, loc, "The @%s directive requires a path argument", exposeFieldDirectiveName)
}

func errMissingFieldMapArg(loc Location) *Error {
	return newError(KindMissingFieldMapArg, loc, "The @%s directive requires a field_map argument", exposeFieldDirectiveName)
}

func errPathValueShouldBeString(loc Location) *Error {
	return newError(KindPathValueShouldBeString, loc,
		"The @%s directive path argument value should be a string", exposeFieldDirectiveName)
}

func errInvalidFieldMap(loc Location) *Error {
	return newError(KindInvalidFieldMap, loc, "Invalid field_map in @%s directive", exposeFieldDirectiveName)
}

func errInvalidField(loc Location) *Error {
	return newError(KindInvalidField, loc, "Invalid field in @%s directive", exposeFieldDirectiveName)
}

func errInvalidMutationField(loc Location) *Error {
	return newError(KindInvalidMutationField, loc, "Invalid mutation field")
}

func errNotAllToFieldsUsed(unused []FieldMapItem, loc Location) *Error {
	names := make([]string, len(unused))
	for i, item := range unused {
		names[i] = "'" + item.ToArgumentName + "'"
	}
	return newError(KindNotAllToFieldsUsed, loc,
		"Not all fields specified as 'to' fields in the @%s directive field_map were found on the mutation field. Unused fields: %s",
		exposeFieldDirectiveName, strings.Join(names, ", "))
}

func errFieldMapToCannotJustBeADot(loc Location) *Error {
	return newError(KindFieldMapToCannotJustBeADot, loc,
		"In a @%s directive's field_map, the to field cannot be just a dot.", exposeFieldDirectiveName)
}

func errPrimaryDirectiveArgumentDoesNotExistOnField(primaryType, mutationObject, mutationField, fieldName string, loc Location) *Error {
	return newError(KindPrimaryDirectiveArgumentDoesNotExistOnField, loc,
		"Error when processing @%s directive on type `%s`. The field `%s.%s` does not have argument `%s`, or it was previously processed by another field_map item.",
		exposeFieldDirectiveName, primaryType, mutationObject, mutationField, fieldName)
}

func errPrimaryDirectiveCannotRemapObject(primaryType, fieldName string, loc Location) *Error {
	return newError(KindPrimaryDirectiveCannotRemapObject, loc,
		"Error when processing @%s directive on type `%s`. The field `%s` is an object, and cannot be remapped. Remap scalars only.",
		exposeFieldDirectiveName, primaryType, fieldName)
}

func errPrimaryDirectiveFieldNotFound(primaryType, fieldName string, loc Location) *Error {
	return newError(KindPrimaryDirectiveFieldNotFound, loc,
		"Error when processing @%s directive on type `%s`. The field `%s` is not found.",
		exposeFieldDirectiveName, primaryType, fieldName)
}
