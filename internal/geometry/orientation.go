package geometry

import "fmt"

// Orientation names which item dimension runs along each vehicle axis. The
// three letters map the item's length, width and height onto X, Y and Z in
// order: "lwh" is the item as declared, "wlh" rotates it 90 degrees on the
// floor, the remaining four lay it on a side or end.
type Orientation string

const (
	OrientLWH Orientation = "lwh"
	OrientWLH Orientation = "wlh"
	OrientLHW Orientation = "lhw"
	OrientHLW Orientation = "hlw"
	OrientWHL Orientation = "whl"
	OrientHWL Orientation = "hwl"
)

// AllOrientations lists every axis-aligned rotation in canonical order.
var AllOrientations = []Orientation{
	OrientLWH, OrientWLH, OrientLHW, OrientHLW, OrientWHL, OrientHWL,
}

// UprightOrientations are the two rotations that keep the item's height axis
// vertical. Items that declare no allowed orientations get these.
var UprightOrientations = []Orientation{OrientLWH, OrientWLH}

// Apply returns the item dimensions as seen by the vehicle when the item is
// rotated into o.
func (o Orientation) Apply(d Dims) Dims {
	pick := func(c byte) float64 {
		switch c {
		case 'l':
			return d.L
		case 'w':
			return d.W
		default:
			return d.H
		}
	}
	return Dims{L: pick(o[0]), W: pick(o[1]), H: pick(o[2])}
}

func ParseOrientation(s string) (Orientation, error) {
	for _, o := range AllOrientations {
		if s == string(o) {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown orientation %q", s)
}
