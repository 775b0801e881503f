package geometry

// Segment represents a directed line segment from A to B.
type Segment struct {
	A, B Point2D
}

// NewSegment creates a segment between two points.
func NewSegment(a, b Point2D) Segment {
	return Segment{A: a, B: b}
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

// Project returns the scalar projection t of p onto the segment's carrier
// line, normalized so that t=0 at A and t=1 at B, together with the
// perpendicular distance from p to that line. For a degenerate segment
// (A == B) it returns t=0 and the plain distance to A.
func (s Segment) Project(p Point2D) (t, dist float64) {
	d := s.B.Sub(s.A)
	lenSq := d.Dot(d)
	if lenSq == 0 {
		return 0, p.Distance(s.A)
	}
	v := p.Sub(s.A)
	t = v.Dot(d) / lenSq
	dist = v.Cross(d)
	if dist < 0 {
		dist = -dist
	}
	return t, dist / s.Length()
}

// DistanceTo returns the distance from p to the nearest point of the
// segment itself (clamped to the endpoints).
func (s Segment) DistanceTo(p Point2D) float64 {
	t, _ := s.Project(p)
	if t <= 0 {
		return p.Distance(s.A)
	}
	if t >= 1 {
		return p.Distance(s.B)
	}
	closest := s.A.Add(s.B.Sub(s.A).Scale(t))
	return p.Distance(closest)
}
