package geometry2D

import (
	"fmt"
	"math"
)

type Point struct {
	X [2]float64
}

func NewPoint(x, y float64) Point { return Point{X: [2]float64{x, y}} }

func (p Point) Minus(q Point) Point { return NewPoint(p.X[0]-q.X[0], p.X[1]-q.X[1]) }

/*
AffineMap carries the reference triangle (0,0), (1,0), (0,1) onto a physical triangle:

	x = V0 + Bk * xi

Bk and InvBk are stored row major, Bk[1] is dx/d(eta). DetBk is signed, it is negative for clockwise triangles.
*/
type AffineMap struct {
	V0        Point
	Bk, InvBk [4]float64
	DetBk     float64
}

func NewAffineMap(p0, p1, p2 Point) (am AffineMap) {
	var (
		e1 = p1.Minus(p0)
		e2 = p2.Minus(p0)
	)
	am.V0 = p0
	am.Bk = [4]float64{
		e1.X[0], e2.X[0],
		e1.X[1], e2.X[1],
	}
	am.DetBk = am.Bk[0]*am.Bk[3] - am.Bk[1]*am.Bk[2]
	oodet := 1. / am.DetBk
	am.InvBk = [4]float64{
		am.Bk[3] * oodet, -am.Bk[1] * oodet,
		-am.Bk[2] * oodet, am.Bk[0] * oodet,
	}
	return
}

// Apply maps a reference point into physical space
func (am AffineMap) Apply(xi, eta float64) Point {
	return NewPoint(
		am.V0.X[0]+am.Bk[0]*xi+am.Bk[1]*eta,
		am.V0.X[1]+am.Bk[2]*xi+am.Bk[3]*eta,
	)
}

// Area of the physical triangle
func (am AffineMap) Area() float64 { return 0.5 * math.Abs(am.DetBk) }

// IsDegenerate reports a triangle whose |det Bk| does not exceed tol
func (am AffineMap) IsDegenerate(tol float64) bool { return math.Abs(am.DetBk) <= tol }

func (am AffineMap) String() string {
	return fmt.Sprintf("v0 = %v, Bk = %v, detBk = %8.5f", am.V0.X, am.Bk, am.DetBk)
}

type BoundingBox struct {
	XMin [2]float64
	XMax [2]float64
}

func NewBoundingBox(Geometry []Point) (Box *BoundingBox) {
	if len(Geometry) == 0 {
		return nil
	}
	Box = new(BoundingBox)
	Box.XMin, Box.XMax = Geometry[0].X, Geometry[0].X
	for _, point := range Geometry {
		for i := 0; i < 2; i++ {
			if point.X[i] < Box.XMin[i] {
				Box.XMin[i] = point.X[i]
			}
			if point.X[i] > Box.XMax[i] {
				Box.XMax[i] = point.X[i]
			}
		}
	}
	return Box
}

func (bb *BoundingBox) Centroid() Point {
	return NewPoint(
		0.5*(bb.XMax[0]+bb.XMin[0]),
		0.5*(bb.XMax[1]+bb.XMin[1]),
	)
}
