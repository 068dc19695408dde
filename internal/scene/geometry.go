package scene

import (
	"fmt"
	"math"
)

type Kind int

const (
	Icosahedron Kind = iota
	Octahedron
	Tetrahedron
	Dodecahedron
	Cone
	Cylinder
	Torus
	TorusKnot
	Box
	Sphere
)

var kindNames = map[Kind]string{
	Icosahedron:  "icosahedron",
	Octahedron:   "octahedron",
	Tetrahedron:  "tetrahedron",
	Dodecahedron: "dodecahedron",
	Cone:         "cone",
	Cylinder:     "cylinder",
	Torus:        "torus",
	TorusKnot:    "torusKnot",
	Box:          "box",
	Sphere:       "sphere",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Dims carries the size parameters of a primitive. Unused fields are ignored
// by kinds that do not need them.
type Dims struct {
	Radius   float64
	Height   float64
	Tube     float64
	Segments int
	Rings    int
}

// Mesh is wireframe geometry in the shape's local frame.
type Mesh struct {
	Vertices []Vec3
	Edges    [][2]int
}

func (m *Mesh) addEdge(a, b int) { m.Edges = append(m.Edges, [2]int{a, b}) }

func (m *Mesh) addVertex(v Vec3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

var meshBuilders = map[Kind]func(Dims) Mesh{
	Icosahedron:  icosahedron,
	Octahedron:   octahedron,
	Tetrahedron:  tetrahedron,
	Dodecahedron: dodecahedron,
	Cone:         cone,
	Cylinder:     cylinder,
	Torus:        torus,
	TorusKnot:    torusKnot,
	Box:          box,
	Sphere:       sphere,
}

// BuildMesh returns the wireframe for kind scaled by dims.
func BuildMesh(kind Kind, dims Dims) (Mesh, error) {
	fn, ok := meshBuilders[kind]
	if !ok {
		return Mesh{}, fmt.Errorf("scene: unknown shape kind: %s", kind)
	}
	return fn(dims), nil
}

const phi = 1.618033988749895

func icosahedron(d Dims) Mesh {
	raw := []Vec3{
		{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
		{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
		{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
	}
	return polyhedron(raw, d.Radius)
}

func octahedron(d Dims) Mesh {
	raw := []Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	return polyhedron(raw, d.Radius)
}

func tetrahedron(d Dims) Mesh {
	raw := []Vec3{{1, 1, 1}, {-1, -1, 1}, {-1, 1, -1}, {1, -1, -1}}
	return polyhedron(raw, d.Radius)
}

func dodecahedron(d Dims) Mesh {
	r := 1 / phi
	raw := []Vec3{
		{-1, -1, -1}, {-1, -1, 1}, {-1, 1, -1}, {-1, 1, 1},
		{1, -1, -1}, {1, -1, 1}, {1, 1, -1}, {1, 1, 1},
		{0, -r, -phi}, {0, -r, phi}, {0, r, -phi}, {0, r, phi},
		{-r, -phi, 0}, {-r, phi, 0}, {r, -phi, 0}, {r, phi, 0},
		{-phi, 0, -r}, {phi, 0, -r}, {-phi, 0, r}, {phi, 0, r},
	}
	return polyhedron(raw, d.Radius)
}

// polyhedron projects raw vertices onto a sphere of radius r and connects
// every pair at the minimum vertex distance, which for the regular solids
// is exactly the edge set.
func polyhedron(raw []Vec3, r float64) Mesh {
	m := Mesh{Vertices: make([]Vec3, len(raw))}
	for i, v := range raw {
		m.Vertices[i] = v.Normalize().Scale(r)
	}
	minDist := math.Inf(1)
	for i := range m.Vertices {
		for j := i + 1; j < len(m.Vertices); j++ {
			minDist = math.Min(minDist, m.Vertices[i].Sub(m.Vertices[j]).Length())
		}
	}
	tol := minDist * 1e-6
	for i := range m.Vertices {
		for j := i + 1; j < len(m.Vertices); j++ {
			if math.Abs(m.Vertices[i].Sub(m.Vertices[j]).Length()-minDist) <= tol {
				m.addEdge(i, j)
			}
		}
	}
	return m
}

func ring(m *Mesh, r, y float64, segments int) []int {
	idx := make([]int, segments)
	for i := 0; i < segments; i++ {
		a := float64(i) * 2 * math.Pi / float64(segments)
		idx[i] = m.addVertex(Vec3{r * math.Cos(a), y, r * math.Sin(a)})
	}
	for i := 0; i < segments; i++ {
		m.addEdge(idx[i], idx[(i+1)%segments])
	}
	return idx
}

func cone(d Dims) Mesh {
	var m Mesh
	base := ring(&m, d.Radius, -d.Height/2, d.Segments)
	apex := m.addVertex(Vec3{0, d.Height / 2, 0})
	for _, b := range base {
		m.addEdge(b, apex)
	}
	return m
}

func cylinder(d Dims) Mesh {
	var m Mesh
	bottom := ring(&m, d.Radius, -d.Height/2, d.Segments)
	top := ring(&m, d.Radius, d.Height/2, d.Segments)
	for i := range bottom {
		m.addEdge(bottom[i], top[i])
	}
	return m
}

func torus(d Dims) Mesh {
	var m Mesh
	grid := make([][]int, d.Segments)
	for i := 0; i < d.Segments; i++ {
		u := float64(i) * 2 * math.Pi / float64(d.Segments)
		grid[i] = make([]int, d.Rings)
		for j := 0; j < d.Rings; j++ {
			v := float64(j) * 2 * math.Pi / float64(d.Rings)
			rr := d.Radius + d.Tube*math.Cos(v)
			grid[i][j] = m.addVertex(Vec3{rr * math.Cos(u), d.Tube * math.Sin(v), rr * math.Sin(u)})
		}
	}
	for i := 0; i < d.Segments; i++ {
		for j := 0; j < d.Rings; j++ {
			m.addEdge(grid[i][j], grid[i][(j+1)%d.Rings])
			m.addEdge(grid[i][j], grid[(i+1)%d.Segments][j])
		}
	}
	return m
}

// torusKnot traces the (2,3) knot centerline, offset outward by the tube.
func torusKnot(d Dims) Mesh {
	const p, q = 2.0, 3.0
	var m Mesh
	first := -1
	prev := -1
	for i := 0; i < d.Segments; i++ {
		t := float64(i) * 2 * math.Pi / float64(d.Segments)
		r := d.Radius * (2 + math.Cos(q*t)) / 3
		pt := Vec3{r * math.Cos(p*t), d.Radius * math.Sin(q*t) / 3, r * math.Sin(p*t)}
		pt = pt.Add(pt.Normalize().Scale(d.Tube))
		idx := m.addVertex(pt)
		if prev >= 0 {
			m.addEdge(prev, idx)
		} else {
			first = idx
		}
		prev = idx
	}
	if first >= 0 && prev != first {
		m.addEdge(prev, first)
	}
	return m
}

func box(d Dims) Mesh {
	s := d.Radius / 2
	m := Mesh{Vertices: []Vec3{
		{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s},
		{-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s},
	}}
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}} {
		m.addEdge(e[0], e[1])
	}
	return m
}

func sphere(d Dims) Mesh {
	var m Mesh
	top := m.addVertex(Vec3{0, d.Radius, 0})
	var prevRing []int
	for j := 1; j < d.Rings; j++ {
		lat := math.Pi * float64(j) / float64(d.Rings)
		y := d.Radius * math.Cos(lat)
		cur := ring(&m, d.Radius*math.Sin(lat), y, d.Segments)
		for i := range cur {
			if prevRing == nil {
				m.addEdge(top, cur[i])
			} else {
				m.addEdge(prevRing[i], cur[i])
			}
		}
		prevRing = cur
	}
	bottom := m.addVertex(Vec3{0, -d.Radius, 0})
	for _, v := range prevRing {
		m.addEdge(v, bottom)
	}
	return m
}
