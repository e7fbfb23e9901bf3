package typemap

import (
	"maps"
	"slices"

	"github.com/cockroachdb/errors"
)

// ErrUnknownPreset is returned by Preset for names not in Presets.
var ErrUnknownPreset = errors.New("unknown typemap preset")

var presets = map[string]Table{
	"identity": {},
	"python": {
		Partial: map[string]string{
			"char":              "int",
			"short":             "int",
			"int":               "int",
			"long":              "int",
			"long long":         "int",
			"short int":         "int",
			"long int":          "int",
			"signed":            "int",
			"size_t":            "int",
			"Py_ssize_t":        "int",
			"ssize_t":           "int",
			"Py_hash_t":         "int",
			"int8_t":            "int",
			"int16_t":           "int",
			"int32_t":           "int",
			"int64_t":           "int",
			"uint8_t":           "int",
			"uint16_t":          "int",
			"uint32_t":          "int",
			"uint64_t":          "int",
			"intptr_t":          "int",
			"uintptr_t":         "int",
			"float":             "float",
			"double":            "float",
			"long double":       "float",
			"float32":           "float",
			"float64":           "float",
			"float complex":     "complex",
			"double complex":    "complex",
			"bint":              "bool",
			"char*":             "bytes",
			"Py_UCS4":           "str",
			"Py_UNICODE":        "str",
			"unicode":           "str",
			"basestring":        "str",
			"void":              "None",
			"object":            "object",
			"cython.int":        "int",
			"cython.long":       "int",
			"cython.double":     "float",
			"cython.float":      "float",
			"cython.bint":       "bool",
			"cython.Py_ssize_t": "int",
		},
		Buffer:  "memoryview",
		Pointer: "int",
	},
}

// Preset returns the named table.
func Preset(name string) (Table, error) {
	t, ok := presets[name]
	if !ok {
		return Table{}, errors.WithHintf(errors.Wrapf(ErrUnknownPreset, "%q", name),
			"known presets: %v", Presets())
	}
	return t, nil
}

// Presets lists the preset names in sorted order.
func Presets() []string {
	return slices.Sorted(maps.Keys(presets))
}
