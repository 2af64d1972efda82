package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/hmat-c/polyview/pkg/mesh"
)

func testMesh() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices: []mgl64.Vec3{
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
		Faces: [][3]int{
			{0, 1, 2},
			{1, 2, 3},
		},
	}
}

// buildBinary assembles raw BI_BINARY bytes with full header control, so
// tests can exercise layouts WriteBinary never produces.
func buildBinary(t *testing.T, coords []float64, indices []int64, nodesPerFace, intAttrs, floatAttrs int64) []byte {
	t.Helper()

	nv := int64(len(coords) / 3)
	nf := int64(len(indices) / 3)

	var buf bytes.Buffer
	buf.WriteString(binaryMagic + "\n")
	write := func(v any) {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("building fixture: %v", err)
		}
	}
	write(nv)
	write(coords)
	write(nf)
	write(nodesPerFace)
	write(intAttrs)
	write(floatAttrs)
	write(indices)
	write(make([]float64, 3*nf)) // centroid cache
	write(make([]int32, 3*nf))   // face-to-node table
	write(make([]int64, intAttrs*nf))
	write(make([]float64, floatAttrs*nf))
	return buf.Bytes()
}

func TestReadBinary_RoundTrip(t *testing.T) {
	want := testMesh()

	var buf bytes.Buffer
	if err := WriteBinary(&buf, want); err != nil {
		t.Fatalf("WriteBinary failed: %v", err)
	}

	got, hdr, err := ReadBinary(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadBinary failed: %v", err)
	}

	if hdr.VertexCount != 4 || hdr.FaceCount != 2 {
		t.Errorf("unexpected header counts: %d vertices, %d faces", hdr.VertexCount, hdr.FaceCount)
	}
	if hdr.NodesPerFace != 3 {
		t.Errorf("expected 3 nodes per face, got %d", hdr.NodesPerFace)
	}
	if len(got.Vertices) != len(want.Vertices) {
		t.Fatalf("expected %d vertices, got %d", len(want.Vertices), len(got.Vertices))
	}
	for i, v := range want.Vertices {
		if got.Vertices[i] != v {
			t.Errorf("vertex %d: expected %v, got %v", i, v, got.Vertices[i])
		}
	}
	for i, f := range want.Faces {
		if got.Faces[i] != f {
			t.Errorf("face %d: expected %v, got %v", i, f, got.Faces[i])
		}
	}
}

func TestReadBinary_InvalidMagic(t *testing.T) {
	data := []byte("NOT_A_MESH\n")
	data = append(data, make([]byte, 64)...)
	_, _, err := ReadBinary(bytes.NewReader(data))
	if !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("expected ErrInvalidMagic, got %v", err)
	}
}

func TestReadBinary_MissingNewline(t *testing.T) {
	// A preamble that never terminates must not be scanned forever.
	data := bytes.Repeat([]byte{'A'}, 200)
	_, _, err := ReadBinary(bytes.NewReader(data))
	if !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("expected ErrInvalidMagic, got %v", err)
	}
}

func TestReadBinary_UnsupportedFaceArity(t *testing.T) {
	data := buildBinary(t,
		[]float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1},
		[]int64{0, 1, 2, 3},
		4, 0, 0)
	_, _, err := ReadBinary(bytes.NewReader(data))
	if !errors.Is(err, ErrUnsupportedFaceArity) {
		t.Errorf("expected ErrUnsupportedFaceArity, got %v", err)
	}
}

func TestReadBinary_Truncated(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBinary(&buf, testMesh()); err != nil {
		t.Fatalf("WriteBinary failed: %v", err)
	}
	full := buf.Bytes()

	// Cut inside the vertex block and inside the index block.
	for _, n := range []int{12, 40, 10 + 8 + 4*24 + 8*4 + 5} {
		_, _, err := ReadBinary(bytes.NewReader(full[:n]))
		if !errors.Is(err, ErrTruncatedData) {
			t.Errorf("truncation at %d bytes: expected ErrTruncatedData, got %v", n, err)
		}
	}
}

func TestReadBinary_NegativeCounts(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBinary(&buf, testMesh()); err != nil {
		t.Fatalf("WriteBinary failed: %v", err)
	}
	data := buf.Bytes()

	// The vertex count sits right after the magic line.
	corrupted := append([]byte{}, data...)
	binary.LittleEndian.PutUint64(corrupted[len(binaryMagic)+1:], ^uint64(0)) // -1
	_, _, err := ReadBinary(bytes.NewReader(corrupted))
	if !errors.Is(err, ErrInvalidCount) {
		t.Errorf("expected ErrInvalidCount for negative vertex count, got %v", err)
	}
}

func TestReadBinary_SkipsFaceAttributes(t *testing.T) {
	data := buildBinary(t,
		[]float64{0, 0, 0, 1, 0, 0, 0, 1, 0},
		[]int64{0, 1, 2},
		3, 2, 1)

	m, hdr, err := ReadBinary(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadBinary failed: %v", err)
	}
	if hdr.IntAttrsPerFace != 2 || hdr.FloatAttrsPerFace != 1 {
		t.Errorf("unexpected attribute counts: %d/%d", hdr.IntAttrsPerFace, hdr.FloatAttrsPerFace)
	}
	if m.FaceCount() != 1 || m.Faces[0] != [3]int{0, 1, 2} {
		t.Errorf("unexpected faces: %v", m.Faces)
	}
}

func TestReadBinary_FaceIndexOutOfRange(t *testing.T) {
	data := buildBinary(t,
		[]float64{0, 0, 0, 1, 0, 0, 0, 1, 0},
		[]int64{0, 1, 3},
		3, 0, 0)
	_, _, err := ReadBinary(bytes.NewReader(data))
	if !errors.Is(err, ErrFaceIndexRange) {
		t.Errorf("expected ErrFaceIndexRange, got %v", err)
	}
}
