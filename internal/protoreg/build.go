package protoreg

import (
	"fmt"
	"path"
	"strings"

	"github.com/hanpama/typegraph/internal/typegraph"
	"github.com/jhump/protoreflect/v2/protobuilder"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// Build converts a finished schema into a single proto3 file holding one
// message per object. pkg is a dot-separated proto package name.
func Build(s *typegraph.Schema, pkg string) (*Registry, error) {
	b := &builder{
		schema:           s,
		messageBuilders:  make(map[string]*protobuilder.MessageBuilder),
		protoGQLFieldMap: make(map[[2]protoreflect.Name][2]string),
	}

	// Pass 1: declare messages so fields can reference any object
	fb := b.buildFileDescriptor(pkg)
	for _, obj := range s.Objects() {
		b.addObjectMessage(fb, obj)
	}

	// Pass 2: add fields
	for _, obj := range s.Objects() {
		if err := b.addObjectMessageFields(obj); err != nil {
			return nil, err
		}
	}

	fd, err := fb.Build()
	if err != nil {
		return nil, err
	}

	reg := &Registry{
		fileDescriptors:    []protoreflect.FileDescriptor{fd},
		messageDescriptors: make(map[string]protoreflect.MessageDescriptor),
		fieldDescriptors:   make(map[[2]string]protoreflect.FieldDescriptor),
	}
	messages := fd.Messages()
	for i := 0; i < messages.Len(); i++ {
		msg := messages.Get(i)
		gqlType := string(msg.Name())
		reg.messageDescriptors[gqlType] = msg
		fields := msg.Fields()
		for j := 0; j < fields.Len(); j++ {
			field := fields.Get(j)
			if gqlNames, ok := b.protoGQLFieldMap[[2]protoreflect.Name{msg.Name(), field.Name()}]; ok {
				reg.fieldDescriptors[gqlNames] = field
			}
		}
	}
	return reg, nil
}

type builder struct {
	schema          *typegraph.Schema
	messageBuilders map[string]*protobuilder.MessageBuilder

	// [message, proto field] -> [object type, schema field]
	protoGQLFieldMap map[[2]protoreflect.Name][2]string
}

func (b *builder) buildFileDescriptor(pkg string) *protobuilder.FileBuilder {
	fp := path.Join(path.Join(strings.Split(pkg, ".")...), "types.proto")
	pb := protobuilder.NewFile(fp)
	pb.SetPackageName(protoreflect.FullName(pkg))
	pb.SetSyntax(protoreflect.Proto3)
	return pb
}

func (b *builder) addObjectMessage(fb *protobuilder.FileBuilder, obj *typegraph.SchemaObject) {
	mb := protobuilder.NewMessage(nameProtoMessage(obj.Name))
	mb.SetComments(comment(obj.Description))
	b.messageBuilders[obj.Name] = mb
	fb.AddMessage(mb)
}

func (b *builder) addObjectMessageFields(obj *typegraph.SchemaObject) error {
	mb := b.messageBuilders[obj.Name]

	fieldBuilders := make([]*protobuilder.FieldBuilder, 0, len(obj.ServerFields))
	for _, id := range obj.ServerFields {
		field := b.schema.ServerField(id)
		// The message type already identifies the object.
		if strings.HasPrefix(field.Name, "__") {
			continue
		}
		rt, err := b.resolveTypeRef(field.Type)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", obj.Name, field.Name, err)
		}
		fieldName := nameProtoField(field.Name)

		fb := protobuilder.NewField(fieldName, rt.fieldType)
		fb.SetComments(comment(field.Description))
		if rt.isOptional {
			fb.SetProto3Optional(true)
		}
		if rt.isRepeated {
			fb.SetRepeated()
		}
		mb.AddField(fb)
		fieldBuilders = append(fieldBuilders, fb)
		b.protoGQLFieldMap[[2]protoreflect.Name{mb.Name(), fb.Name()}] = [2]string{obj.Name, field.Name}
	}
	allocateFieldNumbers(fieldBuilders)
	return nil
}

// comment turns a description into a leading proto comment, one space
// after each "//".
func comment(desc string) protobuilder.Comments {
	if desc == "" {
		return protobuilder.Comments{}
	}
	lines := strings.Split(desc, "\n")
	for i, line := range lines {
		lines[i] = " " + line
	}
	return protobuilder.Comments{LeadingComment: strings.Join(lines, "\n") + "\n"}
}
