package scene

import (
	"testing"
)

func TestGenerateShapesParity(t *testing.T) {
	p := DefaultPalette()
	ss := GenerateShapes(Detailed, p, DefaultKinetics(), NewRand(5))
	if len(ss.Shapes) != 8 {
		t.Fatalf("expected 8 shapes, got %d", len(ss.Shapes))
	}
	for i, s := range ss.Shapes {
		wantP, wantS := p.Primary, p.Secondary
		if i%2 == 1 {
			wantP, wantS = p.Secondary, p.Primary
		}
		if s.Primary != wantP || s.Secondary != wantS {
			t.Errorf("shape %d: expected (%s, %s), got (%s, %s)",
				i, wantP.Hex(), wantS.Hex(), s.Primary.Hex(), s.Secondary.Hex())
		}
	}
}

func TestGenerateShapesKinetics(t *testing.T) {
	k := DefaultKinetics()
	ss := GenerateShapes(Detailed, DefaultPalette(), k, NewRand(11))
	for i, s := range ss.Shapes {
		for _, v := range []float64{s.RotationSpeed.X, s.RotationSpeed.Y, s.RotationSpeed.Z} {
			if !k.RotationSpeed.Contains(v) {
				t.Errorf("shape %d rotation speed %f out of range", i, v)
			}
		}
		if !k.FloatSpeed.Contains(s.FloatSpeed) {
			t.Errorf("shape %d float speed %f out of range", i, s.FloatSpeed)
		}
		if !k.FloatAmplitude.Contains(s.FloatAmplitude) {
			t.Errorf("shape %d amplitude %f out of range", i, s.FloatAmplitude)
		}
		if s.FloatPhase != float64(i) {
			t.Errorf("shape %d phase %f, want index", i, s.FloatPhase)
		}
		if len(s.Mesh.Vertices) == 0 || len(s.Mesh.Edges) == 0 {
			t.Errorf("shape %d (%s) has empty mesh", i, s.Kind)
		}
	}
}

func TestWireframeThreshold(t *testing.T) {
	k := DefaultKinetics()
	k.WireframeThreshold = 1
	for _, s := range GenerateShapes(Detailed, DefaultPalette(), k, NewRand(2)).Shapes {
		if s.Wireframe {
			t.Fatalf("shape %s should not be wireframe with threshold 1", s.Kind)
		}
	}
	k.WireframeThreshold = -1
	for _, s := range GenerateShapes(Detailed, DefaultPalette(), k, NewRand(2)).Shapes {
		if !s.Wireframe {
			t.Fatalf("shape %s should be wireframe with threshold -1", s.Kind)
		}
	}
}

func TestGenerateSimpleShapes(t *testing.T) {
	ss := GenerateShapes(Simple, DefaultPalette(), DefaultKinetics(), NewRand(9))
	kinds := ss.Kinds()
	if len(kinds) != len(SimpleKinds) {
		t.Fatalf("expected %d simple shapes, got %d", len(SimpleKinds), len(kinds))
	}
	for i, k := range kinds {
		if k != SimpleKinds[i] {
			t.Errorf("shape %d: expected %s, got %s", i, SimpleKinds[i], k)
		}
	}
	for _, s := range ss.Shapes {
		if !s.Wireframe || !s.Flat {
			t.Errorf("simple %s should be flat wireframe", s.Kind)
		}
	}
}

func TestShapeAdvance(t *testing.T) {
	s := &Shape{RotationSpeed: Vec3{0.01, -0.02, 0}, FloatSpeed: 1, FloatAmplitude: 2, FloatPhase: 0}
	s.advance(0)
	s.advance(0)
	if s.Rotation != (Vec3{0.02, -0.04, 0}) {
		t.Errorf("unexpected rotation %v", s.Rotation)
	}
	if s.Offset.Y != 0 {
		t.Errorf("expected zero offset at t=0, got %f", s.Offset.Y)
	}
	s.advance(1.5707963267948966)
	if s.Offset.Y < 1.999 {
		t.Errorf("expected offset near amplitude, got %f", s.Offset.Y)
	}
}

func TestBuildMeshEdges(t *testing.T) {
	tests := []struct {
		kind  Kind
		dims  Dims
		verts int
		edges int
	}{
		{Tetrahedron, Dims{Radius: 1}, 4, 6},
		{Octahedron, Dims{Radius: 1}, 6, 12},
		{Icosahedron, Dims{Radius: 1}, 12, 30},
		{Dodecahedron, Dims{Radius: 1}, 20, 30},
		{Box, Dims{Radius: 1}, 8, 12},
		{Cone, Dims{Radius: 1, Height: 1, Segments: 6}, 7, 12},
		{Cylinder, Dims{Radius: 1, Height: 1, Segments: 8}, 16, 24},
		{Torus, Dims{Radius: 1, Tube: 0.3, Segments: 4, Rings: 3}, 12, 24},
		{TorusKnot, Dims{Radius: 1, Tube: 0.2, Segments: 10}, 10, 10},
		{Sphere, Dims{Radius: 1, Segments: 8, Rings: 6}, 42, 88},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			m, err := BuildMesh(tt.kind, tt.dims)
			if err != nil {
				t.Fatal(err)
			}
			if len(m.Vertices) != tt.verts {
				t.Errorf("expected %d vertices, got %d", tt.verts, len(m.Vertices))
			}
			if len(m.Edges) != tt.edges {
				t.Errorf("expected %d edges, got %d", tt.edges, len(m.Edges))
			}
		})
	}
}

func TestBuildMeshUnknownKind(t *testing.T) {
	if _, err := BuildMesh(Kind(99), Dims{}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestThemeParse(t *testing.T) {
	if _, err := ParseTheme("solarized"); err == nil {
		t.Error("expected error for unknown theme")
	}
	th, err := ParseTheme("light")
	if err != nil || th != ThemeLight {
		t.Fatalf("expected light, got %v (%v)", th, err)
	}
	if th.Toggle() != ThemeDark {
		t.Error("light should toggle to dark")
	}
}
