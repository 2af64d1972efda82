package formats

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/hmat-c/polyview/pkg/mesh"
)

// Text layout, line-exact (no comments or blank lines):
//
//	line 0              vertex count Nv
//	lines 1..Nv         "x y z" per vertex
//	line Nv+1           face count Nf
//	lines Nv+2..Nv+4    reserved header lines, ignored
//	lines Nv+5..        three vertex indices per face, Nf lines
//
// reservedHeaderLines is the count of ignored lines between the face count
// and the face list.
const reservedHeaderLines = 3

// ReadTextFile parses a text mesh file from disk.
//
// Face indices may be 0-based or 1-based; the file carries no marker. If
// the maximum index over the whole face list reaches the vertex count, the
// entire list is treated as 1-based and shifted down once, uniformly. A
// genuinely 1-based file that never references its last vertex cannot be
// told apart from a 0-based one; such a file is read as 0-based.
func ReadTextFile(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mesh file: %w", err)
	}
	defer f.Close()

	m, err := readText(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func readText(f *os.File) (*mesh.Mesh, error) {
	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading mesh file: %w", err)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrTruncatedData)
	}
	nv, err := parseCount(lines[0], 1, "vertex count")
	if err != nil {
		return nil, err
	}

	if len(lines) < nv+2 {
		return nil, fmt.Errorf("%w: expected %d vertex lines", ErrTruncatedData, nv)
	}
	vertices := make([]mgl64.Vec3, nv)
	for i := 0; i < nv; i++ {
		lineNum := i + 1
		fields := strings.Fields(lines[lineNum])
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: expected 3 coordinates, got %d",
				ErrParse, lineNum+1, len(fields))
		}
		for c := 0; c < 3; c++ {
			v, err := strconv.ParseFloat(fields[c], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: coordinate %q", ErrParse, lineNum+1, fields[c])
			}
			vertices[i][c] = v
		}
	}

	faceCountLine := nv + 1
	nf, err := parseCount(lines[faceCountLine], faceCountLine+1, "face count")
	if err != nil {
		return nil, err
	}

	faceStart := faceCountLine + reservedHeaderLines + 1
	if len(lines) < faceStart+nf {
		return nil, fmt.Errorf("%w: expected %d face lines", ErrTruncatedData, nf)
	}
	faces := make([][3]int, nf)
	maxIndex := -1
	for i := 0; i < nf; i++ {
		lineNum := faceStart + i
		fields := strings.Fields(lines[lineNum])
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: expected 3 vertex indices, got %d",
				ErrParse, lineNum+1, len(fields))
		}
		for c := 0; c < 3; c++ {
			idx, err := strconv.Atoi(fields[c])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: index %q", ErrParse, lineNum+1, fields[c])
			}
			faces[i][c] = idx
			if idx > maxIndex {
				maxIndex = idx
			}
		}
	}

	// Global index-base decision over the full face list.
	if maxIndex >= nv {
		for i := range faces {
			for c := 0; c < 3; c++ {
				faces[i][c]--
			}
		}
	}

	m := &mesh.Mesh{Vertices: vertices, Faces: faces}
	if err := validateFaces(m.Faces, len(m.Vertices)); err != nil {
		return nil, err
	}
	return m, nil
}

func parseCount(line string, lineNum int, what string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %s %q", ErrInvalidCount, lineNum, what, strings.TrimSpace(line))
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: line %d: %s %d", ErrInvalidCount, lineNum, what, n)
	}
	return n, nil
}
