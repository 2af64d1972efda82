package formats

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/hmat-c/polyview/pkg/mesh"
)

// binaryMagic is the newline-terminated ASCII preamble of a BI_BINARY file.
const binaryMagic = "BI_BINARY"

// BinaryHeader describes the full BI_BINARY schema, including the sections
// this reader skips. All integers are little-endian int64. The on-disk
// order after the magic line is:
//
//	VertexCount
//	VertexCount*3 float64 coordinates, row-major
//	FaceCount
//	NodesPerFace (must be 3)
//	IntAttrsPerFace
//	FloatAttrsPerFace
//	FaceCount*3 int64 vertex indices
//	FaceCount*3 float64 face centroids    (cached; skipped, always recomputed)
//	FaceCount*3 int32 face-to-node table  (skipped)
//	FaceCount*IntAttrsPerFace int64       (skipped)
//	FaceCount*FloatAttrsPerFace float64   (skipped)
//
// The skipped sections are declared here so a future reader can opt into
// the metadata without changing the layout contract.
type BinaryHeader struct {
	VertexCount       int64
	FaceCount         int64
	NodesPerFace      int64
	IntAttrsPerFace   int64
	FloatAttrsPerFace int64
}

// ReadBinaryFile parses a BI_BINARY mesh file from disk.
func ReadBinaryFile(path string) (*mesh.Mesh, *BinaryHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening mesh file: %w", err)
	}
	defer f.Close()

	m, hdr, err := ReadBinary(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, hdr, nil
}

// ReadBinary parses a BI_BINARY mesh from r. Values are read as native
// little-endian; that is a contract of the format, not negotiated.
func ReadBinary(r io.ReadSeeker) (*mesh.Mesh, *BinaryHeader, error) {
	if err := readMagicLine(r); err != nil {
		return nil, nil, err
	}

	hdr := &BinaryHeader{}
	if err := readInt64(r, &hdr.VertexCount); err != nil {
		return nil, nil, err
	}
	if hdr.VertexCount < 0 {
		return nil, nil, fmt.Errorf("%w: vertex count %d", ErrInvalidCount, hdr.VertexCount)
	}

	coords := make([]float64, 3*hdr.VertexCount)
	if err := binary.Read(r, binary.LittleEndian, coords); err != nil {
		return nil, nil, fmt.Errorf("%w: vertex coordinates: %v", ErrTruncatedData, err)
	}

	if err := readInt64(r, &hdr.FaceCount); err != nil {
		return nil, nil, err
	}
	if hdr.FaceCount < 0 {
		return nil, nil, fmt.Errorf("%w: face count %d", ErrInvalidCount, hdr.FaceCount)
	}
	if err := readInt64(r, &hdr.NodesPerFace); err != nil {
		return nil, nil, err
	}
	if hdr.NodesPerFace != 3 {
		return nil, nil, fmt.Errorf("%w: got %d nodes per face", ErrUnsupportedFaceArity, hdr.NodesPerFace)
	}
	if err := readInt64(r, &hdr.IntAttrsPerFace); err != nil {
		return nil, nil, err
	}
	if err := readInt64(r, &hdr.FloatAttrsPerFace); err != nil {
		return nil, nil, err
	}
	if hdr.IntAttrsPerFace < 0 || hdr.FloatAttrsPerFace < 0 {
		return nil, nil, fmt.Errorf("%w: attribute counts %d/%d",
			ErrInvalidCount, hdr.IntAttrsPerFace, hdr.FloatAttrsPerFace)
	}

	indices := make([]int64, 3*hdr.FaceCount)
	if err := binary.Read(r, binary.LittleEndian, indices); err != nil {
		return nil, nil, fmt.Errorf("%w: face indices: %v", ErrTruncatedData, err)
	}

	// Cached centroids and the face-to-node table are not trusted;
	// centroids are always recomputed from the vertices.
	if _, err := r.Seek(8*3*hdr.FaceCount, io.SeekCurrent); err != nil {
		return nil, nil, fmt.Errorf("%w: skipping centroid cache: %v", ErrTruncatedData, err)
	}
	if _, err := r.Seek(4*3*hdr.FaceCount, io.SeekCurrent); err != nil {
		return nil, nil, fmt.Errorf("%w: skipping face-to-node table: %v", ErrTruncatedData, err)
	}
	if hdr.IntAttrsPerFace > 0 {
		if _, err := r.Seek(8*hdr.IntAttrsPerFace*hdr.FaceCount, io.SeekCurrent); err != nil {
			return nil, nil, fmt.Errorf("%w: skipping int attributes: %v", ErrTruncatedData, err)
		}
	}
	if hdr.FloatAttrsPerFace > 0 {
		if _, err := r.Seek(8*hdr.FloatAttrsPerFace*hdr.FaceCount, io.SeekCurrent); err != nil {
			return nil, nil, fmt.Errorf("%w: skipping float attributes: %v", ErrTruncatedData, err)
		}
	}

	m := &mesh.Mesh{
		Vertices: make([]mgl64.Vec3, hdr.VertexCount),
		Faces:    make([][3]int, hdr.FaceCount),
	}
	for i := range m.Vertices {
		m.Vertices[i] = mgl64.Vec3{coords[3*i], coords[3*i+1], coords[3*i+2]}
	}
	for i := range m.Faces {
		m.Faces[i] = [3]int{int(indices[3*i]), int(indices[3*i+1]), int(indices[3*i+2])}
	}

	if err := validateFaces(m.Faces, len(m.Vertices)); err != nil {
		return nil, nil, err
	}
	return m, hdr, nil
}

// readMagicLine consumes the newline-terminated preamble and checks it.
func readMagicLine(r io.Reader) error {
	var line []byte
	buf := make([]byte, 1)
	for len(line) < 64 {
		if _, err := io.ReadFull(r, buf); err != nil {
			return fmt.Errorf("%w: reading preamble: %v", ErrTruncatedData, err)
		}
		if buf[0] == '\n' {
			if n := len(line); n > 0 && line[n-1] == '\r' {
				line = line[:n-1]
			}
			if string(line) != binaryMagic {
				return fmt.Errorf("%w: got %q", ErrInvalidMagic, line)
			}
			return nil
		}
		line = append(line, buf[0])
	}
	return fmt.Errorf("%w: got %q", ErrInvalidMagic, line)
}

func readInt64(r io.Reader, v *int64) error {
	if err := binary.Read(r, binary.LittleEndian, v); err != nil {
		return fmt.Errorf("%w: reading count: %v", ErrTruncatedData, err)
	}
	return nil
}
