package hourglass

// Aspect is the canonical width:height ratio of the hourglass (120:200).
const Aspect = 3.0 / 5.0

// Geometry is the size of the hourglass in surface units. The shared apex
// sits at the origin; each chamber spans Height/2 vertically.
type Geometry struct {
	Width  float64
	Height float64
}

// Half returns the vertical extent of one chamber.
func (g Geometry) Half() float64 { return g.Height / 2 }

// HalfWidth returns the horizontal half-extent of a chamber base.
func (g Geometry) HalfWidth() float64 { return g.Width / 2 }

// FitGeometry sizes the hourglass to occupy at most widthRatio of the surface
// width and heightRatio of its height while keeping the 3:5 aspect.
func FitGeometry(surfaceW, surfaceH int, widthRatio, heightRatio float64) Geometry {
	w := float64(surfaceW) * widthRatio
	h := float64(surfaceH) * heightRatio
	if h <= 0 || w <= 0 {
		return Geometry{}
	}
	if w/h > Aspect {
		w = h * Aspect
	} else {
		h = w / Aspect
	}
	return Geometry{Width: w, Height: h}
}
