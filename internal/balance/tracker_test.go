package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadplan/internal/geometry"
)

const eps = 1e-6

func boxAt(x float64, l float64) geometry.Box {
	return geometry.NewBox(geometry.Vec{X: x}, geometry.Dims{L: l, W: 1000, H: 1000})
}

func TestSingleAxleTakesEverything(t *testing.T) {
	tr := NewTracker([]Axle{{Position: 5000, MaxLoad: 8000}}, 10000)
	tr.Add(boxAt(0, 1000), 1200)
	tr.Add(boxAt(9000, 1000), 800)

	loads := tr.AxleLoads()
	require.Len(t, loads, 1)
	assert.InDelta(t, 2000, loads[0], 1e-9)
}

func TestInterpolationBetweenAxles(t *testing.T) {
	tr := NewTracker([]Axle{{Position: 2000, MaxLoad: 6000}, {Position: 10000, MaxLoad: 6000}}, 20000)

	// Centroid at the exact midpoint of the wheelbase splits 50/50.
	tr.Add(boxAt(5000, 2000), 1000) // center x = 6000
	loads := tr.AxleLoads()
	assert.InDelta(t, 500, loads[0], 1e-9)
	assert.InDelta(t, 500, loads[1], 1e-9)

	// A centroid at an axle position lands entirely on that axle.
	tr2 := NewTracker([]Axle{{Position: 2000, MaxLoad: 6000}, {Position: 10000, MaxLoad: 6000}}, 20000)
	tr2.Add(boxAt(1000, 2000), 900) // center x = 2000
	loads = tr2.AxleLoads()
	assert.InDelta(t, 900, loads[0], 1e-9)
	assert.InDelta(t, 0, loads[1], 1e-9)
}

func TestOverhangExtrapolation(t *testing.T) {
	tr := NewTracker([]Axle{{Position: 2000, MaxLoad: 6000}, {Position: 10000, MaxLoad: 6000}}, 20000)

	// Centroid at x=1000, 1000 ahead of the front axle on an 8000 wheelbase:
	// front carries 9/8 of the weight, rear is unloaded by 1/8.
	tr.Add(boxAt(0, 2000), 800) // center x = 1000
	loads := tr.AxleLoads()
	assert.InDelta(t, 900, loads[0], 1e-9)
	assert.InDelta(t, -100, loads[1], 1e-9)

	// Moments balance: sum of loads equals the weight.
	assert.InDelta(t, 800, loads[0]+loads[1], 1e-9)
}

func TestAxlesSortedByConstructor(t *testing.T) {
	tr := NewTracker([]Axle{{Position: 9000, MaxLoad: 1}, {Position: 1500, MaxLoad: 2}}, 100)
	axles := tr.Axles()
	require.Len(t, axles, 2)
	assert.Equal(t, 1500.0, axles[0].Position)
	assert.Equal(t, 9000.0, axles[1].Position)
}

func TestAddRemoveRoundTrip(t *testing.T) {
	tr := NewTracker([]Axle{{Position: 1500, MaxLoad: 6000}, {Position: 9000, MaxLoad: 6000}}, 10000)

	b1, b2 := boxAt(0, 2000), boxAt(6000, 2000)
	tr.Add(b1, 1500)
	tr.Add(b2, 700)
	tr.Remove(b2, 700)

	ref := NewTracker([]Axle{{Position: 1500, MaxLoad: 6000}, {Position: 9000, MaxLoad: 6000}}, 10000)
	ref.Add(b1, 1500)

	assert.InDelta(t, ref.TotalWeight(), tr.TotalWeight(), 1e-9)
	assert.InDelta(t, ref.CenterOfGravity().X, tr.CenterOfGravity().X, 1e-9)
	for i := range ref.AxleLoads() {
		assert.InDelta(t, ref.AxleLoads()[i], tr.AxleLoads()[i], 1e-9)
	}
}

func TestCenterOfGravity(t *testing.T) {
	tr := NewTracker([]Axle{{Position: 5000, MaxLoad: 100000}}, 100000)
	assert.Equal(t, geometry.Vec{}, tr.CenterOfGravity())

	tr.Add(geometry.NewBox(geometry.Vec{X: 0, Y: 0, Z: 0}, geometry.Dims{L: 2000, W: 2000, H: 2000}), 100)
	tr.Add(geometry.NewBox(geometry.Vec{X: 4000, Y: 0, Z: 0}, geometry.Dims{L: 2000, W: 2000, H: 2000}), 300)

	cog := tr.CenterOfGravity()
	assert.InDelta(t, 4000, cog.X, 1e-9) // (100*1000 + 300*5000) / 400
	assert.InDelta(t, 1000, cog.Y, 1e-9)
	assert.InDelta(t, 1000, cog.Z, 1e-9)
}

func TestViolations(t *testing.T) {
	tr := NewTracker([]Axle{{Position: 2000, MaxLoad: 500}, {Position: 10000, MaxLoad: 5000}}, 4000)

	tr.Add(boxAt(1000, 2000), 3000) // center x = 2000, all on the front axle
	viol := tr.Violations(eps)
	require.Len(t, viol, 1)
	assert.Equal(t, ViolationAxle, viol[0].Kind)
	assert.Equal(t, 0, viol[0].Axle)
	assert.Contains(t, viol[0].String(), "axle 0")

	tr.Add(boxAt(8000, 2000), 2000)
	viol = tr.Violations(eps)
	require.NotEmpty(t, viol)
	assert.Equal(t, ViolationPayload, viol[0].Kind)
}

func TestPeekDoesNotMutate(t *testing.T) {
	tr := NewTracker([]Axle{{Position: 2000, MaxLoad: 1000}, {Position: 10000, MaxLoad: 1000}}, 1500)
	tr.Add(boxAt(5000, 2000), 900)
	before := tr.AxleLoads()

	ok, payload := tr.Peek(boxAt(5000, 2000), 900, eps)
	assert.False(t, ok)
	assert.True(t, payload, "payload limit trips before the axle limit")

	ok, payload = tr.Peek(boxAt(1000, 2000), 580, eps)
	assert.False(t, ok)
	assert.False(t, payload, "axle breach within payload budget")

	ok, _ = tr.Peek(boxAt(5000, 2000), 100, eps)
	assert.True(t, ok)

	assert.Equal(t, before, tr.AxleLoads())
	assert.InDelta(t, 900, tr.TotalWeight(), 1e-9)
}

func TestClone(t *testing.T) {
	tr := NewTracker([]Axle{{Position: 2000, MaxLoad: 6000}, {Position: 10000, MaxLoad: 6000}}, 20000)
	tr.Add(boxAt(5000, 2000), 1000)

	c := tr.Clone()
	c.Add(boxAt(5000, 2000), 500)

	assert.InDelta(t, 1000, tr.TotalWeight(), 1e-9)
	assert.InDelta(t, 1500, c.TotalWeight(), 1e-9)
	assert.NotEqual(t, tr.AxleLoads(), c.AxleLoads())
}
