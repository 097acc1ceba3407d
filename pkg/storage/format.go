package storage

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	MagicBytes    = "GODB"
	FormatVersion = 3
	FileExtension = ".godb"
)

// Body encodings recorded in FileHeader.Flags.
const (
	FlagLZ4Frame uint8 = 1 << iota
	FlagMsgpack

	bodyFlags = FlagLZ4Frame | FlagMsgpack
)

// FileHeader prefixes every data file. Version 3 dropped the two reserved
// bytes and started recording the body encoding in Flags.
type FileHeader struct {
	Magic   [4]byte
	Version uint8
	Flags   uint8
}

// WriteHeader writes the header for an LZ4 framed MessagePack body.
func WriteHeader(w io.Writer) error {
	header := FileHeader{Version: FormatVersion, Flags: bodyFlags}
	copy(header.Magic[:], MagicBytes)
	return binary.Write(w, binary.LittleEndian, header)
}

// ReadHeader reads the header and rejects files this build cannot decode.
func ReadHeader(r io.Reader) (*FileHeader, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if string(header.Magic[:]) != MagicBytes {
		return nil, fmt.Errorf("invalid file format: expected %s, got %q", MagicBytes, header.Magic[:])
	}
	if header.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported file version: %d", header.Version)
	}
	if header.Flags != bodyFlags {
		return nil, fmt.Errorf("unsupported body encoding: flags %#02x", header.Flags)
	}
	return &header, nil
}

// StorageData is the body of a data file: each collection as its documents in
// insertion order.
type StorageData struct {
	Collections map[string][]map[string]interface{} `msgpack:"collections"`
	Metadata    map[string]interface{}              `msgpack:"metadata,omitempty"`
}

// NewStorageData creates a new empty storage data structure
func NewStorageData() *StorageData {
	return &StorageData{
		Collections: make(map[string][]map[string]interface{}),
		Metadata:    make(map[string]interface{}),
	}
}
