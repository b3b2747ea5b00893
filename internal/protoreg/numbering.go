package protoreg

import (
	"hash/fnv"
	"sort"

	"github.com/jhump/protoreflect/v2/protobuilder"
	"google.golang.org/protobuf/reflect/protoreflect"
)

const (
	maxFieldNumber   = 31767
	reservedRangeMin = 19000
	reservedRangeMax = 19999
)

// allocateFieldNumbers numbers the fields of one message from a hash of
// their names, so adding a field never renumbers its siblings.
func allocateFieldNumbers(fieldBuilders []*protobuilder.FieldBuilder) {
	names := make([]string, len(fieldBuilders))
	for i, fb := range fieldBuilders {
		names[i] = string(fb.Name())
	}
	for i, n := range hashFieldNumbers(names) {
		fieldBuilders[i].SetNumber(protoreflect.FieldNumber(n))
	}
}

// hashFieldNumbers returns FNV-32a(name)%maxFieldNumber+1 for each name,
// probing linearly past collisions and the reserved range. Names are probed
// in sorted order so the result does not depend on declaration order.
func hashFieldNumbers(names []string) []int {
	order := make([]int, len(names))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return names[order[a]] < names[order[b]] })

	out := make([]int, len(names))
	used := make(map[int]bool, len(names))
	for _, idx := range order {
		n := int(fnv32(names[idx])%maxFieldNumber) + 1
		for used[n] || (n >= reservedRangeMin && n <= reservedRangeMax) {
			n++
			if n > maxFieldNumber {
				n = 1
			}
		}
		used[n] = true
		out[idx] = n
	}
	return out
}

func fnv32(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
