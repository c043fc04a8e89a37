package zaken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"zaakregister/internal/catalogi"
)

type StateMachineSuite struct {
	suite.Suite
}

func TestStateMachineSuite(t *testing.T) {
	suite.Run(t, new(StateMachineSuite))
}

func (s *StateMachineSuite) closedZaak() *Zaak {
	einddatum := time.Date(2018, 10, 22, 0, 0, 0, 0, time.UTC)
	actiedatum := time.Date(2028, 10, 22, 0, 0, 0, 0, time.UTC)
	nominatie := catalogi.ArchiefnominatieVernietigen
	return &Zaak{
		Einddatum:                 &einddatum,
		Archiefnominatie:          &nominatie,
		Archiefactiedatum:         &actiedatum,
		ArchiefnominatieBerekend:  true,
		ArchiefactiedatumBerekend: true,
	}
}

func (s *StateMachineSuite) TestApplyStatus() {
	s.Run("a non-end status on an open zaak appends", func() {
		transition := ApplyStatus(&Zaak{}, 1, 3, time.Now())
		s.Equal(TransitionAppend, transition.Kind)
	})

	s.Run("the end status closes the zaak on the status date", func() {
		gezet := time.Date(2018, 10, 22, 10, 0, 0, 0, time.UTC)
		transition := ApplyStatus(&Zaak{}, 3, 3, gezet)
		s.Equal(TransitionClose, transition.Kind)
		s.Equal(time.Date(2018, 10, 22, 0, 0, 0, 0, time.UTC), transition.Einddatum)
	})

	s.Run("the einddatum ignores the time of day and normalises to UTC", func() {
		amsterdam := time.FixedZone("CET", 3600)
		gezet := time.Date(2019, 1, 1, 0, 30, 0, 0, amsterdam) // 2018-12-31T23:30Z
		transition := ApplyStatus(&Zaak{}, 2, 2, gezet)
		s.Equal(time.Date(2018, 12, 31, 0, 0, 0, 0, time.UTC), transition.Einddatum)
	})

	s.Run("a non-end status on a closed zaak reopens it", func() {
		transition := ApplyStatus(s.closedZaak(), 1, 3, time.Now())
		s.Equal(TransitionReopen, transition.Kind)
		s.True(transition.ClearArchiefnominatie)
		s.True(transition.ClearArchiefactiedatum)
	})

	s.Run("reopening leaves manually set archival fields alone", func() {
		zaak := s.closedZaak()
		zaak.ArchiefnominatieBerekend = false
		zaak.ArchiefactiedatumBerekend = false
		transition := ApplyStatus(zaak, 1, 3, time.Now())
		s.Equal(TransitionReopen, transition.Kind)
		s.False(transition.ClearArchiefnominatie)
		s.False(transition.ClearArchiefactiedatum)
	})

	s.Run("the end status on a closed zaak appends", func() {
		transition := ApplyStatus(s.closedZaak(), 3, 3, time.Now())
		s.Equal(TransitionAppend, transition.Kind)
	})
}

func (s *StateMachineSuite) TestTransitionApply() {
	s.Run("close sets the einddatum", func() {
		zaak := &Zaak{}
		einddatum := time.Date(2020, 5, 3, 0, 0, 0, 0, time.UTC)
		Transition{Kind: TransitionClose, Einddatum: einddatum}.Apply(zaak)
		s.Require().NotNil(zaak.Einddatum)
		s.Equal(einddatum, *zaak.Einddatum)
	})

	s.Run("reopen clears only the computed archival fields", func() {
		zaak := s.closedZaak()
		Transition{Kind: TransitionReopen, ClearArchiefnominatie: true, ClearArchiefactiedatum: true}.Apply(zaak)
		s.Nil(zaak.Einddatum)
		s.Nil(zaak.Archiefnominatie)
		s.Nil(zaak.Archiefactiedatum)
		s.False(zaak.ArchiefnominatieBerekend)
		s.False(zaak.ArchiefactiedatumBerekend)
	})

	s.Run("reopen without clear flags keeps manual archival fields", func() {
		zaak := s.closedZaak()
		Transition{Kind: TransitionReopen}.Apply(zaak)
		s.Nil(zaak.Einddatum)
		s.NotNil(zaak.Archiefnominatie)
		s.NotNil(zaak.Archiefactiedatum)
	})

	s.Run("append changes nothing", func() {
		zaak := s.closedZaak()
		before := *zaak.Einddatum
		Transition{Kind: TransitionAppend}.Apply(zaak)
		s.Require().NotNil(zaak.Einddatum)
		s.Equal(before, *zaak.Einddatum)
	})
}
