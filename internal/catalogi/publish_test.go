package catalogi

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"zaakregister/pkg/domainerrors"
)

type PublishSuite struct {
	suite.Suite
	req PublishRequirements
}

func (s *PublishSuite) SetupTest() {
	s.req = DefaultPublishRequirements()
}

func TestPublishSuite(t *testing.T) {
	suite.Run(t, new(PublishSuite))
}

func (s *PublishSuite) TestValidatePublish() {
	complete := PublishSnapshot{Statustypen: 2, Resultaattypen: 1, Roltypen: 1}

	s.Run("a complete snapshot publishes", func() {
		s.NoError(ValidatePublish(complete, s.req))
	})

	s.Run("an empty zaaktype reports every missing subordinate at once", func() {
		err := ValidatePublish(PublishSnapshot{}, s.req)
		errs := domainerrors.Flatten(err)
		s.Require().Len(errs, 3)
		s.Equal("statustypen", errs[0].Field)
		s.Equal("resultaattypen", errs[1].Field)
		s.Equal("roltypen", errs[2].Field)
		for _, e := range errs {
			s.Equal(domainerrors.CodeConceptRelation, e.Code)
		}
	})

	s.Run("one statustype is not enough", func() {
		snapshot := complete
		snapshot.Statustypen = 1
		errs := domainerrors.Flatten(ValidatePublish(snapshot, s.req))
		s.Require().Len(errs, 1)
		s.Equal("statustypen", errs[0].Field)
	})

	s.Run("a resultaattype without selectielijstklasse blocks publication", func() {
		snapshot := complete
		snapshot.ResultaattypenZonderSelectielijstklasse = 1
		errs := domainerrors.Flatten(ValidatePublish(snapshot, s.req))
		s.Require().Len(errs, 1)
		s.Equal("resultaattypen", errs[0].Field)
	})

	s.Run("overlap with a published version is reported on beginGeldigheid", func() {
		snapshot := complete
		snapshot.OverlapsPublishedVersion = true
		errs := domainerrors.Flatten(ValidatePublish(snapshot, s.req))
		s.Require().Len(errs, 1)
		s.Equal("beginGeldigheid", errs[0].Field)
		s.Equal(domainerrors.CodeOverlap, errs[0].Code)
	})

	s.Run("relaxed requirements accept a thinner zaaktype", func() {
		s.NoError(ValidatePublish(
			PublishSnapshot{Statustypen: 1},
			PublishRequirements{MinStatustypen: 1},
		))
	})
}
