// Package formats reads and writes the H-div surface mesh formats: a
// line-oriented text format and the fixed-layout BI_BINARY format. Both
// describe the same geometry, a float64 vertex list plus triangular faces.
package formats

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hmat-c/polyview/pkg/mesh"
)

// BinarySuffix marks a file as BI_BINARY. Suffix dispatch is the only
// format-detection rule; file contents are never sniffed.
const BinarySuffix = ".bin"

// Format errors. Structural failures (magic, counts, truncation) and
// per-line parse failures are reported separately so callers can name the
// violated expectation.
var (
	ErrInvalidMagic         = errors.New("invalid binary preamble: expected BI_BINARY")
	ErrInvalidCount         = errors.New("invalid element count")
	ErrTruncatedData        = errors.New("truncated mesh data")
	ErrUnsupportedFaceArity = errors.New("only triangular faces are supported")
	ErrParse                = errors.New("malformed mesh text")
	ErrFaceIndexRange       = errors.New("face index out of range")
)

// Read parses a mesh file, choosing the parser by filename suffix.
func Read(path string) (*mesh.Mesh, error) {
	if strings.HasSuffix(path, BinarySuffix) {
		m, _, err := ReadBinaryFile(path)
		return m, err
	}
	return ReadTextFile(path)
}

// validateFaces checks every index against the vertex count. Both parsers
// run this after index normalization.
func validateFaces(faces [][3]int, vertexCount int) error {
	for i, f := range faces {
		for _, idx := range f {
			if idx < 0 || idx >= vertexCount {
				return fmt.Errorf("%w: face %d references vertex %d of %d",
					ErrFaceIndexRange, i, idx, vertexCount)
			}
		}
	}
	return nil
}
