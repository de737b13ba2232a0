package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"
)

// Write encodes values with header to w.
//
// Params, FormatVersion and (when zero) CreatedAt are filled in; every other
// header field is written as given. Parameters are stored sorted by name.
func Write(w io.Writer, values map[string]float64, header Header) error {
	names := make([]string, 0, len(values))
	for name := range values {
		if err := ValidateParamName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	header.FormatVersion = FormatVersion
	if header.CreatedAt.IsZero() {
		header.CreatedAt = time.Now().UTC()
	}
	header.Params = make([]ParamMeta, len(names))
	data := make([]byte, len(names)*ValueSize)
	for i, name := range names {
		offset := int64(i * ValueSize)
		header.Params[i] = ParamMeta{Name: name, Offset: offset}
		binary.LittleEndian.PutUint64(data[offset:], math.Float64bits(values[name]))
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if len(headerJSON) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	var buf bytes.Buffer
	buf.Grow(prefixSize + len(headerJSON) + ChecksumSize + len(data))
	buf.WriteString(MagicBytes)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(FormatVersion))
	_ = binary.Write(&buf, binary.LittleEndian, header.flags())
	_ = binary.Write(&buf, binary.LittleEndian, uint64(len(headerJSON)))
	buf.Write(headerJSON)
	sum := checksum(data)
	buf.Write(sum[:])
	buf.Write(data)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	return nil
}

// Save writes values with header to the file at path.
func Save(path string, values map[string]float64, header Header) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	return Write(file, values, header)
}
