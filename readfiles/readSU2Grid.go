package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/notargets/gonedelec/mesh2D"
)

// From here: https://su2code.github.io/docs_v7/Mesh-File/
type SU2ElementType uint8

const (
	ELType_LINE     SU2ElementType = 3
	ELType_Triangle SU2ElementType = 5
)

/*
ReadSU2 reads a triangle mesh in SU2 format. NDIME is recorded as the mesh
dimension. A file with NDIME = 3 is accepted when it holds a triangulated
surface, in which case the z coordinate is dropped. Markers become tagged
boundary edges of the mesh.
*/
func ReadSU2(filename string, verbose bool) (m *mesh2D.Mesh, err error) {
	var (
		file *os.File
	)
	if verbose {
		slog.Info("reading SU2 file", "file", filename)
	}
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer file.Close()
	if m, err = ReadSU2From(file); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if verbose {
		slog.Info("read SU2 file", "dimension", m.Dim, "cells", m.NumCells(),
			"vertices", m.NumVertices(), "markers", len(m.BCEdges))
	}
	return
}

func ReadSU2From(r io.Reader) (m *mesh2D.Mesh, err error) {
	var (
		reader = bufio.NewReader(r)
		dim    int
		EToV   [][mesh2D.NEdges]int
		VX, VY []float64
	)
	if dim, err = readNumber(reader); err != nil {
		return
	}
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("NDIME = %d is not a valid dimension", dim)
	}
	if EToV, err = readElements(reader); err != nil {
		return
	}
	if VX, VY, err = readVertices(reader, dim); err != nil {
		return
	}
	if m, err = mesh2D.NewMesh(VX, VY, EToV); err != nil {
		return nil, err
	}
	m.Dim = dim
	if err = readBCs(reader, m); err != nil {
		return nil, err
	}
	return
}

func readBCs(reader *bufio.Reader, m *mesh2D.Mesh) (err error) {
	var (
		nType  int
		v1, v2 int
		NBCs   int
		nEdges int
		label  string
	)
	if NBCs, err = readNumber(reader); err != nil {
		// Markers are optional
		if err == io.EOF {
			err = nil
		}
		return
	}
	for n := 0; n < NBCs; n++ {
		if label, err = readLabel(reader); err != nil {
			return
		}
		if nEdges, err = readNumber(reader); err != nil {
			return
		}
		// Repeated labels append to the same tag
		for i := 0; i < nEdges; i++ {
			var line string
			if line, err = getLine(reader); err != nil {
				return
			}
			if _, err = fmt.Sscanf(line, "%d %d %d", &nType, &v1, &v2); err != nil {
				return fmt.Errorf("marker %s: bad line [%s]: %w", label, line, err)
			}
			if SU2ElementType(nType) != ELType_LINE {
				return fmt.Errorf("marker %s: BCs should only contain line elements in 2D, have type %d", label, nType)
			}
			if v1 < 0 || v2 < 0 || v1 >= m.NumVertices() || v2 >= m.NumVertices() {
				return fmt.Errorf("marker %s: vertex out of range in [%s]", label, line)
			}
			m.AddBoundaryEdge(label, v1, v2)
		}
	}
	return
}

func readVertices(reader *bufio.Reader, dim int) (VX, VY []float64, err error) {
	var (
		n       int
		Nv      int
		x, y, z float64
		line    string
	)
	if Nv, err = readNumber(reader); err != nil {
		return
	}
	VX, VY = make([]float64, Nv), make([]float64, Nv)
	for i := 0; i < Nv; i++ {
		if line, err = getLine(reader); err != nil {
			return
		}
		if dim == 3 {
			n, err = fmt.Sscanf(line, "%f %f %f", &x, &y, &z)
		} else {
			n, err = fmt.Sscanf(line, "%f %f", &x, &y)
		}
		if err != nil || n != dim {
			return nil, nil, fmt.Errorf("unable to read coordinates from [%s]", line)
		}
		VX[i], VY[i] = x, y
	}
	return
}

func readElements(reader *bufio.Reader) (EToV [][mesh2D.NEdges]int, err error) {
	var (
		n          int
		K          int
		nType      int
		v1, v2, v3 int
		line       string
	)
	if K, err = readNumber(reader); err != nil {
		return
	}
	EToV = make([][mesh2D.NEdges]int, K)
	for k := 0; k < K; k++ {
		if line, err = getLine(reader); err != nil {
			return
		}
		if n, err = fmt.Sscanf(line, "%d %d %d %d", &nType, &v1, &v2, &v3); err != nil || n != 4 {
			return nil, fmt.Errorf("unable to read vertices from [%s]", line)
		}
		if SU2ElementType(nType) != ELType_Triangle {
			return nil, fmt.Errorf("unable to deal with non-triangular elements, have type %d", nType)
		}
		EToV[k] = [mesh2D.NEdges]int{v1, v2, v3}
	}
	return
}

func getToken(reader *bufio.Reader) (token string, err error) {
	var (
		line string
	)
	if line, err = getLineNoComments(reader); err != nil {
		return
	}
	ind := strings.Index(line, "=")
	if ind < 0 {
		err = fmt.Errorf("badly formed input line [%s], should have an =", line)
		return
	}
	token = line[ind+1:]
	return
}

func readLabel(reader *bufio.Reader) (label string, err error) {
	var (
		token string
	)
	if token, err = getToken(reader); err != nil {
		return
	}
	if _, err = fmt.Sscanf(token, "%s", &label); err != nil {
		err = fmt.Errorf("unable to read label from token: [%s]", token)
		return
	}
	label = strings.Trim(label, " ")
	return
}

func readNumber(reader *bufio.Reader) (num int, err error) {
	var (
		token string
	)
	if token, err = getToken(reader); err != nil {
		return
	}
	if _, err = fmt.Sscanf(token, "%d", &num); err != nil {
		err = fmt.Errorf("unable to read number from token: [%s]", token)
	}
	return
}

func getLineNoComments(reader *bufio.Reader) (line string, err error) {
	for {
		if line, err = getLine(reader); err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if len(line) != 0 && !strings.HasPrefix(line, "%") {
			return
		}
	}
}

// getLine returns io.EOF only when no characters remain
func getLine(reader *bufio.Reader) (line string, err error) {
	line, err = reader.ReadString('\n')
	if err == io.EOF && len(line) != 0 {
		err = nil
	}
	line = strings.TrimRight(line, "\r\n")
	return
}

func skipLines(n int, reader *bufio.Reader) (err error) {
	for i := 0; i < n; i++ {
		if _, err = getLine(reader); err != nil {
			return
		}
	}
	return
}
