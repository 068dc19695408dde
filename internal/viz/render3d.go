package viz

import (
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/folio3d/internal/scene"
)

// Projector maps world space onto canvas dots through a perspective camera
// looking from Position at Target, rolled about the view axis.
type Projector struct {
	eye                 scene.Vec3
	right, up, forward  scene.Vec3
	near, far           float64
	tanHalf, aspect     float64
	subWidth, subHeight int
}

func NewProjector(cam scene.Camera, subWidth, subHeight int) *Projector {
	forward := cam.Target.Sub(cam.Position).Normalize()
	up := cam.Up
	if up.Length() == 0 {
		up = scene.Vec3{Y: 1}
	}
	right := forward.Cross(up).Normalize()
	trueUp := right.Cross(forward)

	cr, sr := math.Cos(cam.Roll), math.Sin(cam.Roll)
	right, trueUp = right.Scale(cr).Add(trueUp.Scale(sr)), trueUp.Scale(cr).Sub(right.Scale(sr))

	fov := cam.FOV
	if fov <= 0 {
		fov = math.Pi / 4
	}
	aspect := cam.Aspect
	if aspect <= 0 {
		aspect = float64(subWidth) / math.Max(1, float64(subHeight))
	}
	return &Projector{
		eye:       cam.Position,
		right:     right,
		up:        trueUp,
		forward:   forward,
		near:      cam.Near,
		far:       cam.Far,
		tanHalf:   math.Tan(fov / 2),
		aspect:    aspect,
		subWidth:  subWidth,
		subHeight: subHeight,
	}
}

// Project converts a world point to dot coordinates.
// Returns x, y, depth, and visibility.
func (p *Projector) Project(v scene.Vec3) (int, int, float64, bool) {
	rel := v.Sub(p.eye)
	depth := rel.Dot(p.forward)
	if depth <= p.near || (p.far > 0 && depth >= p.far) {
		return 0, 0, depth, false
	}
	ndcX := rel.Dot(p.right) / (depth * p.tanHalf * p.aspect)
	ndcY := rel.Dot(p.up) / (depth * p.tanHalf)
	sx := int(math.Floor((ndcX + 1) / 2 * float64(p.subWidth)))
	sy := int(math.Floor((1 - ndcY) / 2 * float64(p.subHeight)))
	return sx, sy, depth, sx >= 0 && sx < p.subWidth && sy >= 0 && sy < p.subHeight
}

// near2D bounds how far off-canvas a projected endpoint may land before the
// edge is dropped instead of rasterized.
func (p *Projector) near2D(x, y int) bool {
	return absInt(x) <= 4*p.subWidth && absInt(y) <= 4*p.subHeight
}

type Edge struct {
	Start, End scene.Vec3
	From, To   colorful.Color
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{Edges: make([]Edge, 0)} }

func (w *Wireframe) AddEdge(s, e scene.Vec3, from, to colorful.Color) {
	w.Edges = append(w.Edges, Edge{s, e, from, to})
}

func (w *Wireframe) AddPoint(p scene.Vec3, c colorful.Color) {
	w.Edges = append(w.Edges, Edge{p, p, c, c})
}

func (w *Wireframe) Clear() { w.Edges = w.Edges[:0] }

// AddShape places a shape's mesh in world space. Wireframe and flat shapes
// draw edges in their primary color; solid shapes shade each edge from
// primary to secondary and mark their vertices.
func (w *Wireframe) AddShape(s scene.Shape) {
	world := make([]scene.Vec3, len(s.Mesh.Vertices))
	pos := s.Position()
	for i, v := range s.Mesh.Vertices {
		world[i] = v.RotateXYZ(s.Rotation).Add(pos)
	}
	for _, e := range s.Mesh.Edges {
		if e[0] >= len(world) || e[1] >= len(world) {
			continue
		}
		to := s.Secondary
		if s.Wireframe || s.Flat {
			to = s.Primary
		}
		w.AddEdge(world[e[0]], world[e[1]], s.Primary, to)
	}
	if !s.Wireframe && !s.Flat {
		for _, v := range world {
			w.AddPoint(v, s.Secondary)
		}
	}
}

type ProjectedEdge struct {
	X1, Y1, X2, Y2 int
	Depth          float64
	From, To       colorful.Color
}

// Render3D draws the wireframe to the canvas using a simple painter's algorithm.
func Render3D(c *Canvas, w *Wireframe, p *Projector) {
	if c == nil || w == nil || p == nil {
		return
	}
	proj := make([]ProjectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := p.Project(e.Start)
		x2, y2, d2, v2 := p.Project(e.End)
		// Both endpoints must be in front of the camera; one may be off-canvas.
		if (v1 || v2) && d1 > p.near && d2 > p.near && p.near2D(x1, y1) && p.near2D(x2, y2) {
			proj = append(proj, ProjectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.From, e.To})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].Depth > proj[j].Depth })
	for _, e := range proj {
		switch {
		case e.X1 == e.X2 && e.Y1 == e.Y2:
			c.SetColor(e.X1, e.Y1, e.From)
		case e.From == e.To:
			c.DrawLine(e.X1, e.Y1, e.X2, e.Y2, e.From)
		default:
			c.DrawGradientLine(e.X1, e.Y1, e.X2, e.Y2, e.From, e.To)
		}
	}
}
