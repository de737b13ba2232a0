package serialization

import (
	"crypto/sha256"
	"time"
)

// Format constants.
const (
	MagicBytes    = "MGRD"
	FormatVersion = 1
	ChecksumSize  = 32 // SHA-256
	ValueSize     = 8  // float64
	prefixSize    = 4 + 4 + 4 + 8
)

// Flags for the .mgrd format.
const (
	FlagHasMetadata   uint32 = 1 << 0 // custom metadata included
	FlagHasCheckpoint uint32 = 1 << 1 // training state included
)

// Header is the JSON header of a .mgrd file.
type Header struct {
	FormatVersion int               `json:"format_version"`
	ModelType     string            `json:"model_type"`           // e.g. "MLP"
	Layers        []int             `json:"layers"`               // MLP sizes, inputs first
	CreatedAt     time.Time         `json:"created_at"`           // When the file was created
	Params        []ParamMeta       `json:"params"`               // One entry per stored value
	Metadata      map[string]string `json:"metadata,omitempty"`   // Custom metadata
	Checkpoint    *CheckpointMeta   `json:"checkpoint,omitempty"` // Training state (optional)
}

// ParamMeta locates one parameter in the data section.
type ParamMeta struct {
	Name   string `json:"name"`   // e.g. "layers.0.neurons.1.w.2"
	Offset int64  `json:"offset"` // Bytes from the start of the data section
}

// CheckpointMeta contains training state information for checkpoints.
type CheckpointMeta struct {
	Epoch           int                `json:"epoch"`
	Loss            float64            `json:"loss"`
	Optimizer       string             `json:"optimizer"` // "sgd" or "adam"
	OptimizerConfig map[string]float64 `json:"optimizer_config,omitempty"`
}

// flags derives the flag word from a header.
func (h *Header) flags() uint32 {
	var f uint32
	if len(h.Metadata) > 0 {
		f |= FlagHasMetadata
	}
	if h.Checkpoint != nil {
		f |= FlagHasCheckpoint
	}
	return f
}

func checksum(data []byte) [ChecksumSize]byte {
	return sha256.Sum256(data)
}
