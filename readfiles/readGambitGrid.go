package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/gonedelec/mesh2D"
)

type Material struct {
	Group         int
	ElementCount  int
	MaterialValue float64
	Title         string
	Elements      []int // Zero based cell numbers
}

// Gambit element type and node count of a linear triangle
const (
	gambitTriangle      = 3
	gambitTriangleNodes = 3
)

/*
ReadGambit2D reads a 2D triangle mesh in Gambit neutral format. Boundary
condition sets become tagged boundary edges, named by the set title.
*/
func ReadGambit2D(filename string, verbose bool) (m *mesh2D.Mesh, err error) {
	var (
		file      *os.File
		materials []Material
	)
	if verbose {
		slog.Info("reading Gambit neutral file", "file", filename)
	}
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer file.Close()
	if m, materials, err = ReadGambit2DFrom(file); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if verbose {
		slog.Info("read Gambit neutral file", "cells", m.NumCells(),
			"vertices", m.NumVertices(), "markers", len(m.BCEdges))
		for _, mat := range materials {
			slog.Info("material group", "group", mat.Group, "title", mat.Title,
				"elements", mat.ElementCount, "value", mat.MaterialValue)
		}
	}
	return
}

func ReadGambit2DFrom(r io.Reader) (m *mesh2D.Mesh, materials []Material, err error) {
	var (
		reader                  = bufio.NewReader(r)
		Nv, K, Nmats, Nbcs, Nsd int
		VX, VY                  []float64
		EToV                    [][mesh2D.NEdges]int
	)
	// Control info and title block
	if err = skipLines(6, reader); err != nil {
		return
	}
	if Nv, K, Nmats, Nbcs, Nsd, err = readGambitHeader(reader); err != nil {
		return
	}
	if Nsd != 2 {
		return nil, nil, fmt.Errorf("only 2 space dimensions are supported, have %d", Nsd)
	}
	if err = skipLines(2, reader); err != nil {
		return
	}
	if VX, VY, err = readGambitVertices(Nv, reader); err != nil {
		return
	}
	if err = skipLines(2, reader); err != nil {
		return
	}
	if EToV, err = readGambitTris(K, Nv, reader); err != nil {
		return
	}
	if err = skipLines(2, reader); err != nil {
		return
	}
	materials = make([]Material, Nmats)
	for i := range materials {
		if materials[i], err = readMaterialGroup(reader, K); err != nil {
			return nil, nil, err
		}
		if err = skipLines(2, reader); err != nil {
			return
		}
	}
	if m, err = mesh2D.NewMesh(VX, VY, EToV); err != nil {
		return nil, nil, err
	}
	if err = readGambitBCs(Nbcs, reader, m); err != nil {
		return nil, nil, err
	}
	return
}

// readGambitHeader reads NUMNP NELEM NGRPS NBSETS NDFCD NDFVL
func readGambitHeader(reader *bufio.Reader) (Nv, K, Nmats, Nbcs, Nsd int, err error) {
	var (
		line   string
		n, dum int
	)
	if line, err = getLine(reader); err != nil {
		return
	}
	if n, err = fmt.Sscanf(line, "%d %d %d %d %d %d", &Nv, &K, &Nmats, &Nbcs, &Nsd, &dum); err != nil || n < 6 {
		err = fmt.Errorf("read %d of 6 header dimensions from [%s]", n, line)
	}
	return
}

func readGambitVertices(Nv int, reader *bufio.Reader) (VX, VY []float64, err error) {
	var (
		line   string
		n, ind int
		x, y   float64
	)
	VX, VY = make([]float64, Nv), make([]float64, Nv)
	for i := 0; i < Nv; i++ {
		if line, err = getLine(reader); err != nil {
			return
		}
		if n, err = fmt.Sscanf(line, "%d %f %f", &ind, &x, &y); err != nil || n < 3 {
			return nil, nil, fmt.Errorf("unable to read coordinates from [%s]", line)
		}
		if ind < 1 || ind > Nv {
			return nil, nil, fmt.Errorf("node %d out of range [1,%d]", ind, Nv)
		}
		VX[ind-1], VY[ind-1] = x, y
	}
	return
}

func readGambitTris(K, Nv int, reader *bufio.Reader) (EToV [][mesh2D.NEdges]int, err error) {
	var (
		line                string
		n, ind, typ, nnodes int
		v                   [mesh2D.NEdges]int
	)
	EToV = make([][mesh2D.NEdges]int, K)
	for i := 0; i < K; i++ {
		if line, err = getLine(reader); err != nil {
			return
		}
		if n, err = fmt.Sscanf(line, "%d %d %d %d %d %d", &ind, &typ, &nnodes, &v[0], &v[1], &v[2]); err != nil || n < 6 {
			return nil, fmt.Errorf("unable to read element from [%s]", line)
		}
		if typ != gambitTriangle || nnodes != gambitTriangleNodes {
			return nil, fmt.Errorf("unable to deal with element type %d with %d nodes", typ, nnodes)
		}
		if ind < 1 || ind > K {
			return nil, fmt.Errorf("element %d out of range [1,%d]", ind, K)
		}
		for j := range v {
			if v[j] < 1 || v[j] > Nv {
				return nil, fmt.Errorf("element %d references node %d, have %d nodes", ind, v[j], Nv)
			}
			EToV[ind-1][j] = v[j] - 1
		}
	}
	return
}

/*
readMaterialGroup reads one element group:

	GROUP:          1 ELEMENTS:        977 MATERIAL:          1 NFLAGS:          1
	                   fluid
	       0
	       1       2       3 ...
*/
func readMaterialGroup(reader *bufio.Reader, K int) (mat Material, err error) {
	var (
		line   string
		fields []string
	)
	if line, err = getLine(reader); err != nil {
		return
	}
	fields = strings.Fields(line)
	if len(fields) < 6 || fields[0] != "GROUP:" || fields[2] != "ELEMENTS:" || fields[4] != "MATERIAL:" {
		err = fmt.Errorf("badly formed element group header [%s]", line)
		return
	}
	if mat.Group, err = strconv.Atoi(fields[1]); err != nil {
		return
	}
	if mat.ElementCount, err = strconv.Atoi(fields[3]); err != nil {
		return
	}
	if mat.MaterialValue, err = strconv.ParseFloat(fields[5], 64); err != nil {
		return
	}
	if mat.Title, err = getLine(reader); err != nil {
		return
	}
	mat.Title = strings.TrimSpace(mat.Title)
	// Solver dependent flags
	if err = skipLines(1, reader); err != nil {
		return
	}
	mat.Elements = make([]int, 0, mat.ElementCount)
	for len(mat.Elements) < mat.ElementCount {
		if line, err = getLine(reader); err != nil {
			return
		}
		for _, f := range strings.Fields(line) {
			var k int
			if k, err = strconv.Atoi(f); err != nil {
				return
			}
			if k < 1 || k > K {
				err = fmt.Errorf("group %d references element %d, have %d", mat.Group, k, K)
				return
			}
			mat.Elements = append(mat.Elements, k-1)
		}
	}
	if len(mat.Elements) != mat.ElementCount {
		err = fmt.Errorf("group %d lists %d elements, header has %d", mat.Group, len(mat.Elements), mat.ElementCount)
	}
	return
}

/*
readGambitBCs reads boundary condition sets. Each set is a header line with
the set name and face count followed by element, element type, face lines.
Face f of a triangle runs from its vertex f-1 to vertex f mod 3.
*/
func readGambitBCs(Nbcs int, reader *bufio.Reader, m *mesh2D.Mesh) (err error) {
	var (
		line     string
		fields   []string
		numfaces int
	)
	for i := 0; i < Nbcs; i++ {
		// Section title, the previous set consumed its ENDOFSECTION
		if i != 0 {
			if err = skipLines(1, reader); err != nil {
				return
			}
		}
		if line, err = getLine(reader); err != nil {
			return
		}
		fields = strings.Fields(line)
		if len(fields) < 3 {
			return fmt.Errorf("badly formed boundary condition header [%s]", line)
		}
		label := fields[0]
		if numfaces, err = strconv.Atoi(fields[2]); err != nil {
			return fmt.Errorf("boundary condition %s: %w", label, err)
		}
		for j := 0; j < numfaces; j++ {
			var (
				n, kp1, typ, face int
			)
			if line, err = getLine(reader); err != nil {
				return
			}
			if n, err = fmt.Sscanf(line, "%d %d %d", &kp1, &typ, &face); err != nil || n < 3 {
				return fmt.Errorf("boundary condition %s: bad line [%s]", label, line)
			}
			if kp1 < 1 || kp1 > m.NumCells() || face < 1 || face > mesh2D.NEdges {
				return fmt.Errorf("boundary condition %s: element %d face %d out of range", label, kp1, face)
			}
			tri := m.EToV[kp1-1]
			m.AddBoundaryEdge(label, tri[face-1], tri[face%mesh2D.NEdges])
		}
		if err = skipLines(1, reader); err != nil {
			return
		}
	}
	return
}
