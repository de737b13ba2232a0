package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
)

// Read decodes a checkpoint from r.
//
// The data section is verified against the stored checksum and the header
// is validated before any value is decoded.
func Read(r io.Reader) (map[string]float64, Header, error) {
	var header Header

	magic := make([]byte, len(MagicBytes))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, header, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if string(magic) != MagicBytes {
		return nil, header, ErrInvalidMagic
	}

	var prefix struct {
		Version    uint32
		Flags      uint32
		HeaderSize uint64
	}
	if err := binary.Read(r, binary.LittleEndian, &prefix); err != nil {
		return nil, header, fmt.Errorf("failed to read fixed header: %w", err)
	}
	if prefix.Version != FormatVersion {
		return nil, header, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, prefix.Version, FormatVersion)
	}
	if prefix.HeaderSize > MaxHeaderSize {
		return nil, header, ErrHeaderTooLarge
	}

	headerBytes := make([]byte, prefix.HeaderSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, header, fmt.Errorf("failed to read header: %w", err)
	}
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, header, fmt.Errorf("failed to parse header JSON: %w", err)
	}
	if want := header.flags(); prefix.Flags != want {
		return nil, header, fmt.Errorf("%w: got %#x, header implies %#x", ErrFlagsMismatch, prefix.Flags, want)
	}

	var stored [ChecksumSize]byte
	if _, err := io.ReadFull(r, stored[:]); err != nil {
		return nil, header, fmt.Errorf("failed to read checksum: %w", err)
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(MaxParamCount*ValueSize)+1))
	if err != nil {
		return nil, header, fmt.Errorf("failed to read data: %w", err)
	}
	if checksum(data) != stored {
		return nil, header, ErrChecksumMismatch
	}

	if err := ValidateHeader(&header, int64(len(data))); err != nil {
		return nil, header, fmt.Errorf("validation failed: %w", err)
	}

	values := make(map[string]float64, len(header.Params))
	for _, p := range header.Params {
		values[p.Name] = math.Float64frombits(binary.LittleEndian.Uint64(data[p.Offset:]))
	}
	return values, header, nil
}

// Load reads a checkpoint from the file at path.
func Load(path string) (map[string]float64, Header, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, Header{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Read(file)
}
