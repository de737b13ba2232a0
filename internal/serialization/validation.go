package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize   = 16 * 1024 * 1024 // 16MB
	MaxParamCount   = 1_000_000
	MaxParamNameLen = 256
)

// ValidateParamOffsets checks that every parameter reads a whole float64
// inside the data section and that no two parameters share bytes.
func ValidateParamOffsets(params []ParamMeta, dataSize int64) error {
	if len(params) > MaxParamCount {
		return &ValidationError{
			Type:    "too_many_params",
			Details: fmt.Sprintf("got %d, max %d", len(params), MaxParamCount),
		}
	}

	sorted := make([]ParamMeta, len(params))
	copy(sorted, params)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, p := range sorted {
		if p.Offset < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Param:   p.Name,
				Details: fmt.Sprintf("offset=%d", p.Offset),
			}
		}
		if p.Offset%ValueSize != 0 {
			return &ValidationError{
				Type:    "misaligned_offset",
				Param:   p.Name,
				Details: fmt.Sprintf("offset %d is not a multiple of %d", p.Offset, ValueSize),
			}
		}
		if p.Offset > dataSize-ValueSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Param:   p.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", p.Offset, ValueSize, dataSize),
			}
		}
		if i < len(sorted)-1 && sorted[i+1].Offset == p.Offset {
			return &ValidationError{
				Type:    "offset_overlap",
				Param:   p.Name,
				Param2:  sorted[i+1].Name,
				Details: fmt.Sprintf("both at offset %d", p.Offset),
			}
		}
	}

	return nil
}

// ValidateParamName rejects empty, oversized and control-character names.
func ValidateParamName(name string) error {
	if name == "" {
		return &ValidationError{Type: "invalid_name", Details: "empty parameter name"}
	}
	if len(name) > MaxParamNameLen {
		return &ValidationError{
			Type:    "name_too_long",
			Param:   name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxParamNameLen),
		}
	}
	if strings.ContainsFunc(name, func(r rune) bool { return r < 0x20 || r == 0x7f }) {
		return &ValidationError{
			Type:    "invalid_name",
			Param:   name,
			Details: "contains control character",
		}
	}
	return nil
}

// ValidateHeader checks a decoded header against the size of the data
// section it describes.
func ValidateHeader(h *Header, dataSize int64) error {
	seen := make(map[string]struct{}, len(h.Params))
	for _, p := range h.Params {
		if err := ValidateParamName(p.Name); err != nil {
			return err
		}
		if _, dup := seen[p.Name]; dup {
			return &ValidationError{Type: "duplicate_name", Param: p.Name, Details: "listed twice"}
		}
		seen[p.Name] = struct{}{}
	}

	if err := ValidateParamOffsets(h.Params, dataSize); err != nil {
		return err
	}

	if want := int64(len(h.Params)) * ValueSize; dataSize != want {
		return &ValidationError{
			Type:    "size_mismatch",
			Details: fmt.Sprintf("data section is %d bytes, params need %d", dataSize, want),
		}
	}

	for _, n := range h.Layers {
		if n <= 0 {
			return &ValidationError{
				Type:    "invalid_layers",
				Details: fmt.Sprintf("layer sizes must be positive, got %v", h.Layers),
			}
		}
	}

	return nil
}
