package protoreg

import (
	"google.golang.org/protobuf/reflect/protoreflect"
)

// Registry holds the descriptors built from a schema, indexed by schema
// names.
type Registry struct {
	fileDescriptors    []protoreflect.FileDescriptor
	messageDescriptors map[string]protoreflect.MessageDescriptor
	fieldDescriptors   map[[2]string]protoreflect.FieldDescriptor
}

func (r *Registry) GetAllFiles() []protoreflect.FileDescriptor {
	return r.fileDescriptors
}

// GetMessageDescriptor returns the message generated for an object type.
func (r *Registry) GetMessageDescriptor(objectType string) protoreflect.MessageDescriptor {
	return r.messageDescriptors[objectType]
}

// GetFieldDescriptor returns the proto field generated for a server field.
func (r *Registry) GetFieldDescriptor(objectType, field string) protoreflect.FieldDescriptor {
	return r.fieldDescriptors[[2]string{objectType, field}]
}
