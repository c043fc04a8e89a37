package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type IntervalSuite struct {
	suite.Suite
}

func TestIntervalSuite(t *testing.T) {
	suite.Run(t, new(IntervalSuite))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func (s *IntervalSuite) TestOverlaps() {
	s.Run("open-ended interval overlaps any later-begun interval", func() {
		a := Interval{Begin: date(2018, 1, 1)}
		b := Interval{Begin: date(2025, 6, 1)}
		s.True(a.Overlaps(b))
		s.True(b.Overlaps(a))
	})

	s.Run("disjoint closed intervals do not overlap", func() {
		a := Interval{Begin: date(2018, 1, 1), End: datePtr(2018, 1, 9)}
		b := Interval{Begin: date(2018, 1, 10)}
		s.False(a.Overlaps(b))
		s.False(b.Overlaps(a))
	})

	s.Run("touching end dates overlap", func() {
		a := Interval{Begin: date(2018, 1, 1), End: datePtr(2018, 1, 10)}
		b := Interval{Begin: date(2018, 1, 10)}
		s.True(a.Overlaps(b))
	})

	s.Run("nested interval overlaps", func() {
		a := Interval{Begin: date(2018, 1, 1), End: datePtr(2020, 1, 1)}
		b := Interval{Begin: date(2018, 6, 1), End: datePtr(2018, 7, 1)}
		s.True(a.Overlaps(b))
		s.True(b.Overlaps(a))
	})
}

func (s *IntervalSuite) TestContains() {
	iv := Interval{Begin: date(2018, 1, 1), End: datePtr(2018, 12, 31)}

	s.True(iv.Contains(date(2018, 1, 1)))
	s.True(iv.Contains(date(2018, 12, 31)))
	s.False(iv.Contains(date(2017, 12, 31)))
	s.False(iv.Contains(date(2019, 1, 1)))

	open := Interval{Begin: date(2018, 1, 1)}
	s.True(open.Contains(date(2100, 1, 1)))
}
