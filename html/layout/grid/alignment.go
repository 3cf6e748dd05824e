package grid

import (
	pr "github.com/benoitkugler/webgrid/css/properties"
	"github.com/benoitkugler/webgrid/html/layout"
)

// contentDistribution returns the offset of the first track and the space
// added between two tracks, for justify-content or align-content.
// Nothing is done when there is no free space.
func contentDistribution(alignment pr.ContentAlignment, freeSpace Fl, trackCount int) (offset, between Fl) {
	if freeSpace <= 0 || trackCount == 0 {
		return 0, 0
	}
	n := Fl(trackCount)
	switch alignment {
	case pr.ContentEnd:
		return freeSpace, 0
	case pr.ContentCenter:
		return freeSpace / 2, 0
	case pr.ContentSpaceBetween:
		if trackCount == 1 {
			return 0, 0
		}
		return 0, freeSpace / (n - 1)
	case pr.ContentSpaceAround:
		return freeSpace / n / 2, freeSpace / n
	case pr.ContentSpaceEvenly:
		return freeSpace / (n + 1), freeSpace / (n + 1)
	default: // normal, start, stretch
		return 0, 0
	}
}

// alignTracks computes the track offsets inside a container of the given size.
func alignTracks(tracks *TrackCollection, alignment pr.ContentAlignment, containerSize Fl) {
	free := containerSize - tracks.TotalBaseSize()
	offset, between := contentDistribution(alignment, free, tracks.sizedTrackCount(0, len(tracks.Sets)))
	tracks.ComputeOffsets(offset, between)
}

// alignmentOffset returns the position of a box of the given size
// inside its grid area. Overflowing boxes are start aligned.
func alignmentOffset(alignment pr.ItemAlignment, areaSize, size Fl) Fl {
	free := areaSize - size
	if free <= 0 {
		return 0
	}
	switch alignment {
	case pr.ItemEnd:
		return free
	case pr.ItemCenter:
		return free / 2
	default:
		return 0
	}
}

// fragmentBaseline returns the first baseline of the fragment,
// synthesized from its bottom edge if needed.
func fragmentBaseline(fr *layout.Fragment) Fl {
	if fr.Baseline.Valid {
		return fr.Baseline.V
	}
	return fr.Height
}

// alignBaselines shifts the baseline aligned items sharing a row, so that
// their baselines coincide. rowStarts gives the first row of each item.
func alignBaselines(fragments []*layout.Fragment, rowStarts []int, isBaseline []bool) {
	maxBaselines := map[int]Fl{}
	for i, fr := range fragments {
		if !isBaseline[i] {
			continue
		}
		if b := fragmentBaseline(fr); b > maxBaselines[rowStarts[i]] {
			maxBaselines[rowStarts[i]] = b
		}
	}
	for i, fr := range fragments {
		if isBaseline[i] {
			fr.Y += maxBaselines[rowStarts[i]] - fragmentBaseline(fr)
		}
	}
}
