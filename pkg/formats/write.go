package formats

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hmat-c/polyview/pkg/mesh"
)

// WriteBinary writes m in the full BI_BINARY layout. The centroid cache is
// recomputed from the vertices, the face-to-node table is zeroed, and no
// per-face attributes are emitted (IntAttrsPerFace = FloatAttrsPerFace = 0).
func WriteBinary(w io.Writer, m *mesh.Mesh) error {
	if _, err := io.WriteString(w, binaryMagic+"\n"); err != nil {
		return fmt.Errorf("writing preamble: %w", err)
	}

	write := func(v any) error {
		return binary.Write(w, binary.LittleEndian, v)
	}

	if err := write(int64(len(m.Vertices))); err != nil {
		return fmt.Errorf("writing vertex count: %w", err)
	}
	coords := make([]float64, 0, 3*len(m.Vertices))
	for _, v := range m.Vertices {
		coords = append(coords, v[0], v[1], v[2])
	}
	if err := write(coords); err != nil {
		return fmt.Errorf("writing vertices: %w", err)
	}

	for _, v := range []int64{int64(len(m.Faces)), 3, 0, 0} {
		if err := write(v); err != nil {
			return fmt.Errorf("writing face header: %w", err)
		}
	}

	indices := make([]int64, 0, 3*len(m.Faces))
	for _, f := range m.Faces {
		indices = append(indices, int64(f[0]), int64(f[1]), int64(f[2]))
	}
	if err := write(indices); err != nil {
		return fmt.Errorf("writing faces: %w", err)
	}

	cache := make([]float64, 0, 3*len(m.Faces))
	for _, c := range m.Centroids() {
		cache = append(cache, c[0], c[1], c[2])
	}
	if err := write(cache); err != nil {
		return fmt.Errorf("writing centroid cache: %w", err)
	}

	if err := write(make([]int32, 3*len(m.Faces))); err != nil {
		return fmt.Errorf("writing face-to-node table: %w", err)
	}
	return nil
}

// WriteBinaryFile writes m to path in BI_BINARY form.
func WriteBinaryFile(path string, m *mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating mesh file: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := WriteBinary(bw, m); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing mesh file: %w", err)
	}
	return f.Close()
}

// WriteText writes m in the text layout with 0-based face indices. The
// three reserved header lines mirror the binary header (nodes per face and
// the two attribute counts); readers ignore them.
func WriteText(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d\n", len(m.Vertices))
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "%s %s %s\n",
			strconv.FormatFloat(v[0], 'g', -1, 64),
			strconv.FormatFloat(v[1], 'g', -1, 64),
			strconv.FormatFloat(v[2], 'g', -1, 64))
	}

	fmt.Fprintf(bw, "%d\n", len(m.Faces))
	fmt.Fprint(bw, "3\n0\n0\n")
	for _, f := range m.Faces {
		fmt.Fprintf(bw, "%d %d %d\n", f[0], f[1], f[2])
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing mesh text: %w", err)
	}
	return nil
}

// WriteTextFile writes m to path in text form.
func WriteTextFile(path string, m *mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating mesh file: %w", err)
	}
	defer f.Close()

	if err := WriteText(f, m); err != nil {
		return err
	}
	return f.Close()
}
