// SPDX-License-Identifier: MIT

package profile

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/linstab/core"
)

// Grid extent and resolution. The ballooning extent covers three poloidal
// periods on each side of the outboard midplane.
const (
	// SegmentCount — symmetric π-wide segments of the folded grid.
	SegmentCount = 6
	// PointsPerSegment — resolution of each segment; the cylindrical grid
	// carries the same total point count.
	PointsPerSegment = 32
	// GridSpan — half-extent of the angular grid.
	GridSpan = 3 * math.Pi
)

var (
	// ErrNoFieldLineCoord is returned when a folded grid is requested but the
	// geometry carries no field-line coordinate.
	ErrNoFieldLineCoord = errors.New("profile: geometry has no field-line coordinate")

	// ErrBadFieldLineCoord is returned when the field-line coordinate is not
	// strictly ascending inside the open interval (0, π). The endpoints are
	// excluded so the folded segments never duplicate their boundary points.
	ErrBadFieldLineCoord = errors.New("profile: field-line coordinate must ascend inside (0, π)")
)

// Grid builds the angular evaluation grid for the given geometry.
//
// Cylindrical geometry yields SegmentCount·PointsPerSegment uniform points
// over [−3π, 3π]. Toroidal/General geometry folds the precomputed field-line
// coordinate (one half-period, ascending strictly inside (0, π)) into six
// symmetric segments: even segments ascend with the coordinate, odd segments
// traverse it mirrored, so the full grid is strictly ascending across the
// same ballooning extent.
func Grid(geo core.Geometry) ([]float64, error) {
	if geo.Kind == core.Cylindrical {
		return floats.Span(make([]float64, SegmentCount*PointsPerSegment), -GridSpan, GridSpan), nil
	}

	t := geo.FieldLineCoord
	if len(t) == 0 {
		return nil, fmt.Errorf("Grid: %w", ErrNoFieldLineCoord)
	}
	if len(t) < 2 || t[0] <= 0 || t[len(t)-1] >= math.Pi {
		return nil, fmt.Errorf("Grid: %w", ErrBadFieldLineCoord)
	}
	for j := 1; j < len(t); j++ {
		if t[j] <= t[j-1] {
			return nil, fmt.Errorf("Grid: point %d: %w", j, ErrBadFieldLineCoord)
		}
	}

	m := len(t)
	grid := make([]float64, 0, SegmentCount*m)
	for seg := 0; seg < SegmentCount; seg++ {
		base := float64(seg-SegmentCount/2) * math.Pi
		if seg%2 == 0 {
			for j := 0; j < m; j++ {
				grid = append(grid, base+t[j])
			}

			continue
		}
		for j := m - 1; j >= 0; j-- {
			grid = append(grid, base+math.Pi-t[j])
		}
	}

	return grid, nil
}
