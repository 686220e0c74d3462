package ledger

import (
	"iter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// hourlyWindow is the widest range sampled at hourly granularity; wider
// ranges sample daily at local day-start to bound the number of points.
const hourlyWindow = 8 * 24 * time.Hour

// Point is one sample of a balance time series.
type Point struct {
	Time  time.Time
	Value decimal.Decimal
}

// Series lazily yields one Point per sampled instant in [from, to],
// where the value is KindTotalBefore(kind, instant). Ranges spanning at
// most 8 days sample hourly from the lower bound; wider ranges sample
// daily at the local start of day. An inverted range yields no points.
//
// Sign adjustment for charting (liabilities negated) is left to the
// consumer via model.KindAttributes.ChartSign.
func (s *Snapshot) Series(kind model.Kind, from, to time.Time) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		byHour := to.Sub(from) <= hourlyWindow
		for t := from; !t.After(to); {
			at := t
			if !byHour {
				at = startOfDay(t)
			}
			if !yield(Point{Time: at, Value: s.KindTotalBefore(kind, at)}) {
				return
			}
			if byHour {
				t = t.Add(time.Hour)
			} else {
				t = t.AddDate(0, 0, 1)
			}
		}
	}
}

// SeriesPoints collects Series into a slice.
func (s *Snapshot) SeriesPoints(kind model.Kind, from, to time.Time) []Point {
	var points []Point
	for p := range s.Series(kind, from, to) {
		points = append(points, p)
	}
	return points
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last second of t's day in its own location,
// the closing instant balance views query against.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}
