package term

import (
	"math"

	"github.com/go-drift/carousel/pkg/animation"
	"github.com/go-drift/carousel/pkg/registry"
)

// Default cell metrics in carousel points.
const (
	DefaultColumnWidth = 8
	DefaultRowHeight   = 16
)

// Surface is an animation surface projected onto terminal cells.
type Surface struct {
	*animation.Surface

	// ColumnWidth and RowHeight are the size of one cell in points.
	ColumnWidth float64
	RowHeight   float64
}

// NewSurface creates a surface reading time from clk, using the default
// cell metrics.
func NewSurface(clk animation.Clock) *Surface {
	return &Surface{
		Surface:     animation.NewSurface(clk),
		ColumnWidth: DefaultColumnWidth,
		RowHeight:   DefaultRowHeight,
	}
}

// Points converts a column count to a width in points.
func (s *Surface) Points(columns int) float64 {
	return float64(columns) * s.ColumnWidth
}

// Columns converts a width in points to whole columns.
func (s *Surface) Columns(points float64) int {
	return int(math.Round(points / s.ColumnWidth))
}

// CellBounds returns the half-open cell rectangle item currently covers.
func (s *Surface) CellBounds(item *registry.Item) (left, top, right, bottom int) {
	f := s.Frame(item)
	left = s.Columns(f.Left)
	right = s.Columns(f.Right)
	top = int(math.Round(f.Top / s.RowHeight))
	bottom = int(math.Round(f.Bottom / s.RowHeight))
	return left, top, right, bottom
}
