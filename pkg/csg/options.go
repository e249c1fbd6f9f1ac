package csg

// Kernel-wide epsilon constants. EPS governs every near-zero distance
// test in split classification and positional dedup; AreaEPS is the
// degenerate-plane threshold NewPolygon passes to PlaneFromPoints, and
// AngleEPS is the turn threshold of the convexity checks (checkConvex,
// convexRing2D).
const (
	EPS        = 1e-5
	EPSSquared = EPS * EPS
	AngleEPS   = 0.1
	AreaEPS    = 4.99e-12
)

// TagCounter hands out identity tags that are unique within one counter.
// Every call made with the same Options shares its counter (see
// Options.Tags); passing it in explicitly avoids a package-global mutable
// counter.
type TagCounter struct {
	next int64
}

// NewTagCounter returns a counter starting at 1 (0 means "untagged").
func NewTagCounter() *TagCounter {
	return &TagCounter{next: 1}
}

// Next returns the next unique tag.
func (c *TagCounter) Next() int64 {
	t := c.next
	c.next++
	return t
}

// Options threads the kernel's configuration through every entry point.
// There is deliberately no package-level default; call DefaultOptions.
type Options struct {
	EPS      float64
	AngleEPS float64
	AreaEPS  float64

	// Debug enables Polygon convexity assertions and PolygonTree
	// tree-shape assertions (the source's _CSGDEBUG flag).
	Debug bool

	// MaxPolygons bounds the polygon count of a Boolean op's result; 0
	// means unlimited. Exceeding it surfaces csgerr.ResourceExhausted.
	MaxPolygons int

	// Tags supplies identity tags during canonicalization. Required;
	// DefaultOptions allocates one.
	Tags *TagCounter
}

// DefaultOptions returns the kernel's standard configuration.
func DefaultOptions() Options {
	return Options{
		EPS:      EPS,
		AngleEPS: AngleEPS,
		AreaEPS:  AreaEPS,
		Tags:     NewTagCounter(),
	}
}

func (o Options) epsSquared() float64 {
	return o.EPS * o.EPS
}
