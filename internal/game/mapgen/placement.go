package mapgen

import (
	"math"

	"github.com/mitchelldurbincs/CaptureTheFlag/internal/game/core"
)

// symmetrical fills rows from the home edge outward, each row growing from the
// center column alternately to the left and right. The base row stays free.
func symmetrical(frame *core.Grid, area SubArea, base core.Coordinate, n int) []core.Coordinate {
	spots := make([]core.Coordinate, 0, n)
	center := base.Col
	for r := area.Top; r < area.Top+area.Height && len(spots) < n; r++ {
		if r == base.Row {
			continue
		}
		for _, c := range centerOut(center, area.Left, area.Left+area.Width) {
			spot := core.NewCoordinate(r, c)
			if !frame.IsEmptyAt(spot) {
				continue
			}
			spots = append(spots, spot)
			if len(spots) == n {
				break
			}
		}
	}
	return spots
}

// centerOut orders the columns [lo, hi) as center, center-1, center+1, center-2, ...
func centerOut(center, lo, hi int) []int {
	cols := make([]int, 0, hi-lo)
	for d := 0; len(cols) < hi-lo; d++ {
		if d == 0 {
			cols = append(cols, center)
			continue
		}
		if c := center - d; c >= lo {
			cols = append(cols, c)
		}
		if c := center + d; c < hi {
			cols = append(cols, c)
		}
		if center-d < lo && center+d >= hi {
			break
		}
	}
	return cols
}

// spacedOut spreads pieces by always taking the free cell farthest from the base
// and every piece placed so far
func spacedOut(frame *core.Grid, area SubArea, base core.Coordinate, n int) []core.Coordinate {
	dist := make(map[core.Coordinate]float64, area.Height*area.Width)
	for r := area.Top; r < area.Top+area.Height; r++ {
		for c := area.Left; c < area.Left+area.Width; c++ {
			spot := core.NewCoordinate(r, c)
			dist[spot] = spot.EuclideanTo(base)
		}
	}

	spots := make([]core.Coordinate, 0, n)
	for len(spots) < n {
		best, found := core.Coordinate{}, false
		bestDist := -1.0
		for r := area.Top; r < area.Top+area.Height; r++ {
			for c := area.Left; c < area.Left+area.Width; c++ {
				spot := core.NewCoordinate(r, c)
				if !frame.IsEmptyAt(spot) || containsCoord(spots, spot) {
					continue
				}
				if d := dist[spot]; d > bestDist {
					best, bestDist, found = spot, d, true
				}
			}
		}
		if !found {
			break
		}
		spots = append(spots, best)
		for spot, d := range dist {
			dist[spot] = math.Min(d, spot.EuclideanTo(best))
		}
	}
	return spots
}

// defensive packs pieces as close to the base as possible
func defensive(frame *core.Grid, area SubArea, base core.Coordinate, n int) []core.Coordinate {
	spots := make([]core.Coordinate, 0, n)
	for len(spots) < n {
		best, found := core.Coordinate{}, false
		bestDist := math.Inf(1)
		for r := area.Top; r < area.Top+area.Height; r++ {
			for c := area.Left; c < area.Left+area.Width; c++ {
				spot := core.NewCoordinate(r, c)
				if !frame.IsEmptyAt(spot) || containsCoord(spots, spot) {
					continue
				}
				if d := spot.EuclideanTo(base); d < bestDist {
					best, bestDist, found = spot, d, true
				}
			}
		}
		if !found {
			break
		}
		spots = append(spots, best)
	}
	return spots
}

func containsCoord(list []core.Coordinate, c core.Coordinate) bool {
	for _, x := range list {
		if x.Equal(c) {
			return true
		}
	}
	return false
}
