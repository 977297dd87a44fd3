package collision

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/o0olele/collision-go/geometry"
)

func unitCube() *geometry.TriMesh {
	return geometry.NewBoxMesh(r3.Vector{}, r3.Vector{X: 1, Y: 1, Z: 1})
}

func bigCube() *geometry.TriMesh {
	return geometry.NewBoxMesh(r3.Vector{}, r3.Vector{X: 4, Y: 4, Z: 4})
}

func TestDetectorLifecycle(t *testing.T) {
	t.Run("init registers everything", func(t *testing.T) {
		d := NewDetector([]*geometry.TriMesh{unitCube(), bigCube()})
		test.That(t, d.Len(), test.ShouldEqual, 2)
		test.That(t, d.IsClosed(0), test.ShouldBeTrue)
		test.That(t, d.IsClosed(1), test.ShouldBeTrue)
	})

	t.Run("init replaces the collection", func(t *testing.T) {
		d := NewDetector([]*geometry.TriMesh{unitCube(), unitCube(), unitCube()})
		d.Init([]*geometry.TriMesh{bigCube()})
		test.That(t, d.Len(), test.ShouldEqual, 1)
	})

	t.Run("add returns dense slots", func(t *testing.T) {
		d := NewDetector(nil)
		test.That(t, d.AddMesh(unitCube()), test.ShouldEqual, 0)
		test.That(t, d.AddMesh(unitCube()), test.ShouldEqual, 1)
		test.That(t, d.Len(), test.ShouldEqual, 2)
	})

	t.Run("open mesh is recorded open", func(t *testing.T) {
		tri, err := geometry.NewTriMesh(
			[]r3.Vector{{}, {X: 1}, {Y: 1}},
			[][3]int{{0, 1, 2}},
		)
		test.That(t, err, test.ShouldBeNil)
		d := NewDetector([]*geometry.TriMesh{tri})
		test.That(t, d.IsClosed(0), test.ShouldBeFalse)
	})

	t.Run("out of range slot panics", func(t *testing.T) {
		d := NewDetector([]*geometry.TriMesh{unitCube()})
		test.That(t, func() { d.Intersections(5) }, test.ShouldPanic)
		test.That(t, func() { d.SetTransform(-1, geometry.Identity()) }, test.ShouldPanic)
		test.That(t, func() { d.RemoveMesh(1) }, test.ShouldPanic)
	})
}

func TestIntersections(t *testing.T) {
	t.Run("two crossing unit cubes", func(t *testing.T) {
		d := NewDetector([]*geometry.TriMesh{unitCube(), unitCube()})
		d.SetTransform(1, geometry.NewTranslation(r3.Vector{X: 0.5}))

		test.That(t, d.Intersections(0), test.ShouldResemble, []int{1})
		test.That(t, d.Intersections(1), test.ShouldResemble, []int{0})

		// crossing surfaces are never pure inclusions
		both := d.IntersectionsAndInclusions(0)
		test.That(t, both, test.ShouldResemble, []Intersection{{ID: 1, PureInclusion: false}})
	})

	t.Run("moving one far away empties the result", func(t *testing.T) {
		d := NewDetector([]*geometry.TriMesh{unitCube(), unitCube()})
		d.SetTransform(1, geometry.NewTranslation(r3.Vector{X: 0.5}))
		test.That(t, d.SetTransformAndIntersections(1, geometry.NewTranslation(r3.Vector{X: 10})),
			test.ShouldBeEmpty)
		test.That(t, d.Intersections(0), test.ShouldBeEmpty)
		test.That(t, d.IntersectionsAndInclusions(0), test.ShouldBeEmpty)
	})

	t.Run("result never contains the query body", func(t *testing.T) {
		d := NewDetector([]*geometry.TriMesh{unitCube(), unitCube(), unitCube()})
		for x := 0; x < d.Len(); x++ {
			for _, k := range d.Intersections(x) {
				test.That(t, k, test.ShouldNotEqual, x)
			}
		}
	})

	t.Run("results come in ascending slot order", func(t *testing.T) {
		d := NewDetector([]*geometry.TriMesh{unitCube(), unitCube(), unitCube(), unitCube()})
		test.That(t, d.Intersections(1), test.ShouldResemble, []int{0, 2, 3})
	})

	t.Run("crossings agree between the two query shapes", func(t *testing.T) {
		d := NewDetector([]*geometry.TriMesh{bigCube(), unitCube(), unitCube()})
		d.SetTransform(2, geometry.NewTranslation(r3.Vector{X: 0.5}))
		for x := 0; x < d.Len(); x++ {
			crossing := make([]int, 0)
			for _, e := range d.IntersectionsAndInclusions(x) {
				if !e.PureInclusion {
					crossing = append(crossing, e.ID)
				}
			}
			test.That(t, crossing, test.ShouldResemble, d.Intersections(x))
		}
	})

	t.Run("symmetry of surface crossings", func(t *testing.T) {
		d := NewDetector([]*geometry.TriMesh{unitCube(), unitCube(), unitCube()})
		d.SetTransform(1, geometry.NewTranslation(r3.Vector{X: 0.7}))
		d.SetTransform(2, geometry.NewTranslation(r3.Vector{X: 1.4}))
		for x := 0; x < d.Len(); x++ {
			for _, k := range d.Intersections(x) {
				test.That(t, d.Intersections(k), test.ShouldContain, x)
			}
		}
	})
}

func TestInclusions(t *testing.T) {
	t.Run("pure nesting reports exactly one inclusion", func(t *testing.T) {
		d := NewDetector([]*geometry.TriMesh{bigCube(), unitCube()})

		test.That(t, d.Intersections(0), test.ShouldBeEmpty)
		test.That(t, d.IntersectionsAndInclusions(0),
			test.ShouldResemble, []Intersection{{ID: 1, PureInclusion: true}})
		test.That(t, d.IntersectionsAndInclusions(1),
			test.ShouldResemble, []Intersection{{ID: 0, PureInclusion: true}})
	})

	t.Run("scaled colocated copies nest", func(t *testing.T) {
		// the frame algebra check: same mesh twice, one shrunk in place
		d := NewDetector([]*geometry.TriMesh{unitCube(), unitCube()})
		d.SetTransform(1, geometry.NewScale(0.5))
		test.That(t, d.IntersectionsAndInclusions(0),
			test.ShouldResemble, []Intersection{{ID: 1, PureInclusion: true}})
		test.That(t, d.IntersectionsAndInclusions(1),
			test.ShouldResemble, []Intersection{{ID: 0, PureInclusion: true}})
	})

	t.Run("open container reports nothing", func(t *testing.T) {
		big := bigCube()
		openBig := &geometry.TriMesh{Vertices: big.Vertices, Faces: big.Faces[:len(big.Faces)-1]}
		d := NewDetector([]*geometry.TriMesh{openBig, unitCube()})
		test.That(t, d.IsClosed(0), test.ShouldBeFalse)

		// neither direction may fire: 0 is open, and 1 does not contain 0
		test.That(t, d.IntersectionsAndInclusions(0), test.ShouldBeEmpty)
	})

	t.Run("open nested body is still found by the closed container", func(t *testing.T) {
		tri, err := geometry.NewTriMesh(
			[]r3.Vector{{X: 0.1}, {X: 0.2}, {X: 0.1, Y: 0.1}},
			[][3]int{{0, 1, 2}},
		)
		test.That(t, err, test.ShouldBeNil)
		d := NewDetector([]*geometry.TriMesh{bigCube(), tri})
		test.That(t, d.IntersectionsAndInclusions(0),
			test.ShouldResemble, []Intersection{{ID: 1, PureInclusion: true}})
		test.That(t, d.IntersectionsAndInclusions(1),
			test.ShouldResemble, []Intersection{{ID: 0, PureInclusion: true}})
	})

	t.Run("nested then moved out", func(t *testing.T) {
		d := NewDetector([]*geometry.TriMesh{bigCube(), unitCube()})
		res := d.SetTransformAndIntersectionsAndInclusions(1, geometry.NewTranslation(r3.Vector{X: 20}))
		test.That(t, res, test.ShouldBeEmpty)
		test.That(t, d.IntersectionsAndInclusions(0), test.ShouldBeEmpty)
	})
}

func TestEmptyMesh(t *testing.T) {
	d := NewDetector([]*geometry.TriMesh{{}, bigCube()})
	test.That(t, d.IsClosed(0), test.ShouldBeFalse)
	test.That(t, d.Intersections(0), test.ShouldBeEmpty)
	test.That(t, d.IntersectionsAndInclusions(0), test.ShouldBeEmpty)
	test.That(t, d.Intersections(1), test.ShouldBeEmpty)
	test.That(t, d.IntersectionsAndInclusions(1), test.ShouldBeEmpty)
}

func TestSetTransformIdempotence(t *testing.T) {
	d := NewDetector([]*geometry.TriMesh{unitCube(), unitCube()})
	shift := geometry.NewTranslation(r3.Vector{X: 0.5})

	d.SetTransform(1, shift)
	once := d.Intersections(0)
	d.SetTransform(1, shift)
	twice := d.Intersections(0)
	test.That(t, twice, test.ShouldResemble, once)
}

func TestCacheTransparency(t *testing.T) {
	scenario := func(d *Detector) [][]Intersection {
		d.SetTransform(1, geometry.NewTranslation(r3.Vector{X: 0.5}))
		d.SetTransform(2, geometry.NewTranslation(r3.Vector{X: 10}))
		out := make([][]Intersection, 0)
		for x := 0; x < d.Len(); x++ {
			out = append(out, d.IntersectionsAndInclusions(x))
		}
		d.SetTransform(2, geometry.NewTranslation(r3.Vector{}))
		for x := 0; x < d.Len(); x++ {
			out = append(out, d.IntersectionsAndInclusions(x))
		}
		return out
	}

	meshes := func() []*geometry.TriMesh {
		return []*geometry.TriMesh{bigCube(), unitCube(), unitCube()}
	}

	cached := scenario(NewDetector(meshes(), WithBoxCache(true)))
	uncached := scenario(NewDetector(meshes(), WithBoxCache(false)))
	test.That(t, cached, test.ShouldResemble, uncached)
}

func TestTranslationOnlyDetector(t *testing.T) {
	full := NewDetector([]*geometry.TriMesh{bigCube(), unitCube(), unitCube()})
	cheap := NewDetector([]*geometry.TriMesh{bigCube(), unitCube(), unitCube()}, WithTranslationOnly())

	for _, d := range []*Detector{full, cheap} {
		d.SetTransform(1, geometry.NewTranslation(r3.Vector{X: 1.8}))
		d.SetTransform(2, geometry.NewTranslation(r3.Vector{X: 10}))
	}
	for x := 0; x < full.Len(); x++ {
		test.That(t, cheap.Intersections(x), test.ShouldResemble, full.Intersections(x))
		test.That(t, cheap.IntersectionsAndInclusions(x), test.ShouldResemble, full.IntersectionsAndInclusions(x))
	}
}

func TestRemoveMesh(t *testing.T) {
	t.Run("slots shift down", func(t *testing.T) {
		d := NewDetector([]*geometry.TriMesh{unitCube(), bigCube(), unitCube()})
		d.SetTransform(2, geometry.NewTranslation(r3.Vector{X: 0.5}))

		// before: cube 0 crosses cube 2, both nest in box 1
		test.That(t, d.Intersections(0), test.ShouldResemble, []int{2})

		d.RemoveMesh(1)

		// the shifted cube keeps its geometry and transform under its new id
		test.That(t, d.Len(), test.ShouldEqual, 2)
		test.That(t, d.Intersections(0), test.ShouldResemble, []int{1})
		test.That(t, d.Intersections(1), test.ShouldResemble, []int{0})
		test.That(t, d.Transform(1).Translation(), test.ShouldResemble, r3.Vector{X: 0.5})
	})

	t.Run("remove then add reuses the tail slot", func(t *testing.T) {
		d := NewDetector([]*geometry.TriMesh{unitCube(), unitCube()})
		d.RemoveMesh(0)
		test.That(t, d.Len(), test.ShouldEqual, 1)
		slot := d.AddMesh(bigCube())
		test.That(t, slot, test.ShouldEqual, 1)
		test.That(t, d.IntersectionsAndInclusions(1),
			test.ShouldResemble, []Intersection{{ID: 0, PureInclusion: true}})
	})
}

func TestQueryLeavesStateUntouched(t *testing.T) {
	d := NewDetector([]*geometry.TriMesh{unitCube(), unitCube()})
	d.SetTransform(1, geometry.NewTranslation(r3.Vector{X: 0.5}))

	before := d.Len()
	d.Intersections(0)
	d.IntersectionsAndInclusions(1)
	test.That(t, d.Len(), test.ShouldEqual, before)
	test.That(t, d.Transform(1).Translation(), test.ShouldResemble, r3.Vector{X: 0.5})
}
