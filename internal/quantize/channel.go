package quantize

// Channel selects one color component of a Pixel.
type Channel uint8

// Channels in tie-break precedence order.
const (
	Red Channel = iota
	Green
	Blue
)

// Value returns the component of p selected by c.
func (c Channel) Value(p Pixel) int {
	switch c {
	case Red:
		return p.R
	case Green:
		return p.G
	default:
		return p.B
	}
}

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}

// ChannelRanges holds max-min of each channel over a pixel collection.
type ChannelRanges struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Widest returns the channel with the largest range. Ties resolve to the
// earlier channel in Red, Green, Blue order.
func (cr ChannelRanges) Widest() Channel {
	biggest := max(cr.R, cr.G, cr.B)
	switch biggest {
	case cr.R:
		return Red
	case cr.G:
		return Green
	default:
		return Blue
	}
}

// Ranges computes the per-channel value range of pixels in a single pass.
//
// Returns ErrEmptyInput if pixels is empty.
func Ranges(pixels []Pixel) (ChannelRanges, error) {
	if len(pixels) == 0 {
		return ChannelRanges{}, ErrEmptyInput
	}
	return ranges(pixels, identity(len(pixels))), nil
}

// WidestChannel returns the channel along which pixels vary the most.
//
// Returns ErrEmptyInput if pixels is empty.
func WidestChannel(pixels []Pixel) (Channel, error) {
	cr, err := Ranges(pixels)
	if err != nil {
		return Red, err
	}
	return cr.Widest(), nil
}

// ranges scans pixels[idx[i]] for every i. idx must be non-empty.
func ranges(pixels []Pixel, idx []int) ChannelRanges {
	first := pixels[idx[0]]
	rMin, rMax := first.R, first.R
	gMin, gMax := first.G, first.G
	bMin, bMax := first.B, first.B

	for _, i := range idx[1:] {
		p := pixels[i]
		rMin, rMax = min(rMin, p.R), max(rMax, p.R)
		gMin, gMax = min(gMin, p.G), max(gMax, p.G)
		bMin, bMax = min(bMin, p.B), max(bMax, p.B)
	}

	return ChannelRanges{R: rMax - rMin, G: gMax - gMin, B: bMax - bMin}
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
