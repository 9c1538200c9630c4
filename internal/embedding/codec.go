package embedding

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodedSize is the byte length of a stored vector: 4 bytes per dimension,
// little-endian IEEE-754 single precision. The layout is persisted, so it must
// remain readable across versions.
const EncodedSize = Dimensions * 4

// Encode packs a vector into its stable binary layout.
func Encode(vec []float32) []byte {
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// Decode unpacks a stored vector blob. It does not enforce Dimensions: the
// caller compares the decoded length so that a mis-sized vector can be
// reported as a dimension mismatch rather than a decode failure.
func Decode(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("vector blob length %d is not a multiple of 4", len(blob))
	}
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec, nil
}
