package store

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"hash/crc32"
)

// recordVersionV1 is the only record layout the engine has ever written.
// A version byte future writers can bump without forcing a rewrite of
// existing records, per spec.
const recordVersionV1 byte = 1

const recordHeaderLen = 1 + 4 + 4 // version + length + checksum

// encodeRecord frames v as a version byte, a big-endian payload length, a
// CRC32 checksum of the payload, and the gob-encoded payload itself. big.Int
// and big.Rat already implement GobEncoder/GobDecoder, so every domain type
// built on them round-trips without custom marshalling code.
func encodeRecord(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("store: encode record: %w", err)
	}
	payload := buf.Bytes()

	out := make([]byte, 0, recordHeaderLen+len(payload))
	out = append(out, recordVersionV1)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	out = append(out, lenBuf[:]...)
	var sumBuf [4]byte
	binary.BigEndian.PutUint32(sumBuf[:], crc32.ChecksumIEEE(payload))
	out = append(out, sumBuf[:]...)
	out = append(out, payload...)
	return out, nil
}

// decodeRecord reverses encodeRecord, rejecting a version it doesn't
// recognize, a truncated payload, or a checksum mismatch — any of which
// indicates on-disk corruption rather than a logic bug, so callers treat a
// decodeRecord error as a non-fatal, block-scoped store failure.
func decodeRecord(data []byte, v any) error {
	if len(data) < recordHeaderLen {
		return fmt.Errorf("store: record too short (%d bytes)", len(data))
	}
	version := data[0]
	if version != recordVersionV1 {
		return fmt.Errorf("store: unsupported record version %d", version)
	}
	length := binary.BigEndian.Uint32(data[1:5])
	sum := binary.BigEndian.Uint32(data[5:9])
	payload := data[9:]
	if uint32(len(payload)) != length {
		return fmt.Errorf("store: record length mismatch: header says %d, have %d", length, len(payload))
	}
	if got := crc32.ChecksumIEEE(payload); got != sum {
		return fmt.Errorf("store: record checksum mismatch: header says %08x, computed %08x", sum, got)
	}
	return gob.NewDecoder(bytes.NewReader(payload)).Decode(v)
}
