package catalogi

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"zaakregister/internal/authz"
	"zaakregister/pkg/domainerrors"
)

type ConceptGateSuite struct {
	suite.Suite
	forced  authz.Scopes
	regular authz.Scopes
}

func (s *ConceptGateSuite) SetupTest() {
	s.forced = authz.NewScopes(string(authz.ScopeCatalogiSchrijven), string(authz.ScopeCatalogiGeforceerdBijwerken))
	s.regular = authz.NewScopes(string(authz.ScopeCatalogiSchrijven))
}

func TestConceptGateSuite(t *testing.T) {
	suite.Run(t, new(ConceptGateSuite))
}

func (s *ConceptGateSuite) TestGateCreateSubordinate() {
	s.Run("allowed under a concept zaaktype", func() {
		s.NoError(GateCreateSubordinate(true, s.regular))
	})
	s.Run("blocked under a published zaaktype", func() {
		err := GateCreateSubordinate(false, s.regular)
		s.True(domainerrors.Is(err, domainerrors.CodeNonConceptObject))
	})
	s.Run("forced scope bypasses the gate", func() {
		s.NoError(GateCreateSubordinate(false, s.forced))
	})
}

func (s *ConceptGateSuite) TestGateUpdate() {
	s.Run("concept definitions stay editable", func() {
		s.NoError(GateUpdate(true, false, s.regular))
	})
	s.Run("published definitions refuse edits", func() {
		err := GateUpdate(false, false, s.regular)
		s.True(domainerrors.Is(err, domainerrors.CodeNonConceptObject))
	})
	s.Run("closing the validity window is always allowed", func() {
		s.NoError(GateUpdate(false, true, s.regular))
	})
	s.Run("forced scope bypasses the gate", func() {
		s.NoError(GateUpdate(false, false, s.forced))
	})
}

func (s *ConceptGateSuite) TestGateUpdateSubordinate() {
	s.NoError(GateUpdateSubordinate(true, s.regular))
	s.True(domainerrors.Is(GateUpdateSubordinate(false, s.regular), domainerrors.CodeNonConceptObject))
	s.NoError(GateUpdateSubordinate(false, s.forced))
}

func (s *ConceptGateSuite) TestGateDelete() {
	s.NoError(GateDelete(true, s.regular))
	s.True(domainerrors.Is(GateDelete(false, s.regular), domainerrors.CodeNonConceptObject))
	s.NoError(GateDelete(false, s.forced))
}

func (s *ConceptGateSuite) TestGateRelateOnCreate() {
	s.Run("concept neighbours are fine", func() {
		s.NoError(GateRelateOnCreate(true, []bool{true, true}, s.regular))
	})
	s.Run("a published neighbour blocks the concept", func() {
		err := GateRelateOnCreate(true, []bool{true, false}, s.regular)
		s.True(domainerrors.Is(err, domainerrors.CodeNonConceptRelation))
	})
	s.Run("published entities skip the check", func() {
		s.NoError(GateRelateOnCreate(false, []bool{false}, s.regular))
	})
	s.Run("forced scope bypasses the gate", func() {
		s.NoError(GateRelateOnCreate(true, []bool{false}, s.forced))
	})
}

func (s *ConceptGateSuite) TestGateRelateOnUpdate() {
	s.True(domainerrors.Is(GateRelateOnUpdate([]bool{false}, false, s.regular), domainerrors.CodeNonConceptRelation))
	s.NoError(GateRelateOnUpdate([]bool{false}, true, s.regular))
	s.NoError(GateRelateOnUpdate([]bool{true}, false, s.regular))
	s.NoError(GateRelateOnUpdate([]bool{false}, false, s.forced))
}

func (s *ConceptGateSuite) TestGateDeleteWithRelations() {
	s.NoError(GateDeleteWithRelations(nil, s.regular))
	s.NoError(GateDeleteWithRelations([]bool{true}, s.regular))
	s.True(domainerrors.Is(GateDeleteWithRelations([]bool{true, false}, s.regular), domainerrors.CodeNonConceptRelation))
	s.NoError(GateDeleteWithRelations([]bool{false}, s.forced))
}

func (s *ConceptGateSuite) TestGateZaaktypeInformatieObjectTypeDelete() {
	s.Run("either side in concept keeps the relation removable", func() {
		s.NoError(GateZaaktypeInformatieObjectTypeDelete(true, false, s.regular))
		s.NoError(GateZaaktypeInformatieObjectTypeDelete(false, true, s.regular))
	})
	s.Run("two published sides pin the relation", func() {
		err := GateZaaktypeInformatieObjectTypeDelete(false, false, s.regular)
		s.True(domainerrors.Is(err, domainerrors.CodeNonConceptRelation))
	})
	s.Run("forced scope bypasses the gate", func() {
		s.NoError(GateZaaktypeInformatieObjectTypeDelete(false, false, s.forced))
	})
}
