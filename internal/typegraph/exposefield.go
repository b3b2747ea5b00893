package typegraph

import (
	"strings"

	language "github.com/hanpama/typegraph/internal/language"
)

const exposeFieldDirectiveName = "exposeField"

// ExposeField is a parsed @exposeField(field:, path:, field_map:) directive.
// It exposes a mutation field on the annotated type, feeding the type's own
// fields into the mutation's arguments.
type ExposeField struct {
	Field    string
	Path     string
	FieldMap []FieldMapItem
	Location Location
}

// FieldMapItem maps a field of the exposing type onto a mutation argument.
// A "to" of "input.user.id" targets the argument input and then the nested
// field path user.id.
type FieldMapItem struct {
	From           string
	ToArgumentName string
	ToFieldNames   []string
}

// ExposeFieldDirectives returns the @exposeField directives attached to obj.
func ExposeFieldDirectives(obj *SchemaObject) []*language.Directive {
	return obj.Directives.ForNames(exposeFieldDirectiveName)
}

// ParseExposeField reads the arguments of one @exposeField directive.
func ParseExposeField(d *language.Directive) (*ExposeField, error) {
	loc := locationOf(d.Position)
	if len(d.Arguments) != 3 {
		return nil, errInvalidPrimaryDirectiveArgumentCount(loc)
	}

	out := &ExposeField{Location: loc}

	path := d.Arguments.ForName("path")
	if path == nil {
		return nil, errMissingPathArg(loc)
	}
	s, ok := stringValue(path.Value)
	if !ok {
		return nil, errPathValueShouldBeString(locationOf(path.Position))
	}
	out.Path = s

	fieldMap := d.Arguments.ForName("field_map")
	if fieldMap == nil {
		return nil, errMissingFieldMapArg(loc)
	}
	items, err := parseFieldMap(fieldMap)
	if err != nil {
		return nil, err
	}
	out.FieldMap = items

	field := d.Arguments.ForName("field")
	if field == nil {
		return nil, errInvalidField(loc)
	}
	if out.Field, ok = stringValue(field.Value); !ok {
		return nil, errInvalidField(locationOf(field.Position))
	}
	return out, nil
}

func parseFieldMap(arg *language.Argument) ([]FieldMapItem, error) {
	loc := locationOf(arg.Position)
	if arg.Value == nil || arg.Value.Kind != language.ListValue {
		return nil, errInvalidFieldMap(loc)
	}
	items := make([]FieldMapItem, 0, len(arg.Value.Children))
	for _, child := range arg.Value.Children {
		v := child.Value
		if v == nil || v.Kind != language.ObjectValue {
			return nil, errInvalidFieldMap(loc)
		}
		var from, to string
		var hasFrom, hasTo bool
		for _, kv := range v.Children {
			switch kv.Name {
			case "from":
				from, hasFrom = stringValue(kv.Value)
			case "to":
				to, hasTo = stringValue(kv.Value)
			default:
				return nil, errInvalidFieldMap(locationOf(kv.Position))
			}
		}
		if !hasFrom || !hasTo {
			return nil, errInvalidFieldMap(locationOf(v.Position))
		}
		item, err := splitFieldMapTarget(from, to, locationOf(v.Position))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func splitFieldMapTarget(from, to string, loc Location) (FieldMapItem, error) {
	if to == "." {
		return FieldMapItem{}, errFieldMapToCannotJustBeADot(loc)
	}
	head, rest, nested := strings.Cut(to, ".")
	if head == "" {
		return FieldMapItem{}, errInvalidFieldMap(loc)
	}
	item := FieldMapItem{From: from, ToArgumentName: head}
	if nested {
		for _, name := range strings.Split(rest, ".") {
			if name == "" {
				return FieldMapItem{}, errInvalidFieldMap(loc)
			}
			item.ToFieldNames = append(item.ToFieldNames, name)
		}
	}
	return item, nil
}

func stringValue(v *language.Value) (string, bool) {
	if v == nil || (v.Kind != language.StringValue && v.Kind != language.BlockValue) {
		return "", false
	}
	return v.Raw, true
}
