package protoreg

import (
	"fmt"

	"github.com/hanpama/typegraph/internal/typegraph"
	"github.com/jhump/protoreflect/v2/protobuilder"
	"google.golang.org/protobuf/reflect/protoreflect"
)

type resolvedType struct {
	isRepeated bool
	isOptional bool
	fieldType  *protobuilder.FieldType
}

func (b *builder) resolveTypeRef(t *typegraph.TypeRef) (resolvedType, error) {
	switch t.Kind {
	case typegraph.TypeRefKindNamed:
		ft, err := b.mapNamedType(t.Named)
		if err != nil {
			return resolvedType{}, err
		}
		return resolvedType{
			isRepeated: false,
			isOptional: true,
			fieldType:  ft,
		}, nil
	case typegraph.TypeRefKindList:
		// Nested lists flatten to one repeated field.
		elemType, err := b.resolveTypeRef(t.OfType)
		if err != nil {
			return resolvedType{}, err
		}
		return resolvedType{
			isRepeated: true,
			isOptional: false,
			fieldType:  elemType.fieldType,
		}, nil
	case typegraph.TypeRefKindNonNull:
		innerType, err := b.resolveTypeRef(t.OfType)
		if err != nil {
			return resolvedType{}, err
		}
		return resolvedType{
			isRepeated: innerType.isRepeated,
			isOptional: false,
			fieldType:  innerType.fieldType,
		}, nil
	}
	return resolvedType{}, fmt.Errorf("unknown type reference kind %q", t.Kind)
}

func (b *builder) mapNamedType(typeName string) (*protobuilder.FieldType, error) {
	if mb, ok := b.messageBuilders[typeName]; ok {
		return protobuilder.FieldTypeMessage(mb), nil
	}
	if kind, ok := scalars[typeName]; ok {
		return protobuilder.FieldTypeScalar(kind), nil
	}
	if _, ok := b.schema.Lookup(typeName); ok {
		// User scalars and enums travel as strings.
		return protobuilder.FieldTypeScalar(protoreflect.StringKind), nil
	}
	return nil, fmt.Errorf("unknown type name %q", typeName)
}

var scalars = map[string]protoreflect.Kind{
	"Int":     protoreflect.Int32Kind,
	"Float":   protoreflect.DoubleKind,
	"Boolean": protoreflect.BoolKind,
	"String":  protoreflect.StringKind,
	"ID":      protoreflect.StringKind,
}
