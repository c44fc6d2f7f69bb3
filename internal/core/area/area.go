// Package area estimates ground area from a binary segmentation mask
package area

// Mask is a binary segmentation grid, row-major, cells 0 or 1
type Mask struct {
	Width  int
	Height int
	Cells  []uint8
}

// Positive returns the number of cells equal to 1
func (m Mask) Positive() int {
	n := 0
	for _, c := range m.Cells {
		if c == 1 {
			n++
		}
	}
	return n
}

// Hectares converts a mask into hectares at a fixed ground sample distance.
// Count first as an integer, then scale: count * p^2 / 10000.
// Total over any grid, an empty or all-zero mask yields 0
func Hectares(m Mask, pixelSizeM float64) float64 {
	return float64(m.Positive()) * pixelSizeM * pixelSizeM / 10000
}
