package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type PeriodSuite struct {
	suite.Suite
}

func TestPeriodSuite(t *testing.T) {
	suite.Run(t, new(PeriodSuite))
}

func (s *PeriodSuite) TestParse() {
	s.Run("parses full period", func() {
		p, err := Parse("P2Y6M14D")
		s.Require().NoError(err)
		s.Equal(Period{Years: 2, Months: 6, Days: 14}, p)
	})

	s.Run("folds weeks into days", func() {
		p, err := Parse("P2W3D")
		s.Require().NoError(err)
		s.Equal(Period{Days: 17}, p)
	})

	s.Run("accepts single component", func() {
		p, err := Parse("P10Y")
		s.Require().NoError(err)
		s.Equal(Period{Years: 10}, p)
	})

	s.Run("rejects missing designator", func() {
		_, err := Parse("10Y")
		s.Error(err)
	})

	s.Run("rejects bare P", func() {
		_, err := Parse("P")
		s.Error(err)
	})

	s.Run("rejects time components", func() {
		_, err := Parse("P1YT2H")
		s.Error(err)
	})

	s.Run("rejects duplicate designator", func() {
		_, err := Parse("P1Y2Y")
		s.Error(err)
	})

	s.Run("rejects trailing value", func() {
		_, err := Parse("P1Y2")
		s.Error(err)
	})
}

func (s *PeriodSuite) TestString() {
	s.Run("round-trips through Parse", func() {
		for _, raw := range []string{"P10Y", "P6M", "P14D", "P1Y2M3D"} {
			p := MustParse(raw)
			s.Equal(raw, p.String())
		}
	})

	s.Run("zero period renders P0D", func() {
		s.Equal("P0D", Period{}.String())
	})
}

func (s *PeriodSuite) TestAddTo() {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	s.Run("adds calendar years", func() {
		got := MustParse("P10Y").AddTo(date(2018, time.October, 22))
		s.Equal(date(2028, time.October, 22), got)
	})

	s.Run("month overflow normalizes", func() {
		got := MustParse("P1M").AddTo(date(2021, time.January, 31))
		s.Equal(date(2021, time.March, 3), got)
	})

	s.Run("zero period is identity", func() {
		d := date(2020, time.May, 3)
		s.Equal(d, Period{}.AddTo(d))
	})
}
