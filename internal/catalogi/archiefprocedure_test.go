package catalogi

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"zaakregister/internal/selectielijst"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/period"
)

type ArchiefprocedureSuite struct {
	suite.Suite
}

func TestArchiefprocedureSuite(t *testing.T) {
	suite.Run(t, new(ArchiefprocedureSuite))
}

func (s *ArchiefprocedureSuite) params(err error) domainerrors.List {
	s.Require().Error(err)
	return domainerrors.Flatten(err)
}

func (s *ArchiefprocedureSuite) TestValidateArchiefprocedure() {
	termijn := period.MustParse("P10Y")

	s.Run("afgehandeld accepts an empty procedure", func() {
		s.NoError(ValidateArchiefprocedure(BrondatumArchiefprocedure{
			Afleidingswijze: AfleidingswijzeAfgehandeld,
		}))
	})

	s.Run("afgehandeld rejects every populated field at once", func() {
		errs := s.params(ValidateArchiefprocedure(BrondatumArchiefprocedure{
			Afleidingswijze: AfleidingswijzeAfgehandeld,
			Procestermijn:   &termijn,
			Datumkenmerk:    "einddatum",
			EinddatumBekend: true,
			Objecttype:      "verblijfsobject",
			Registratie:     "BAG",
		}))
		s.Len(errs, 5)
		for _, e := range errs {
			s.Equal(domainerrors.CodeMustBeEmpty, e.Code)
		}
	})

	s.Run("ander datumkenmerk requires its descriptor fields", func() {
		errs := s.params(ValidateArchiefprocedure(BrondatumArchiefprocedure{
			Afleidingswijze: AfleidingswijzeAnderDatumkenmerk,
		}))
		s.Len(errs, 3)
		fields := make([]string, 0, len(errs))
		for _, e := range errs {
			s.Equal(domainerrors.CodeRequired, e.Code)
			fields = append(fields, e.Field)
		}
		s.Equal([]string{
			"brondatumArchiefprocedure.datumkenmerk",
			"brondatumArchiefprocedure.objecttype",
			"brondatumArchiefprocedure.registratie",
		}, fields)
	})

	s.Run("eigenschap wants only a datumkenmerk", func() {
		s.NoError(ValidateArchiefprocedure(BrondatumArchiefprocedure{
			Afleidingswijze: AfleidingswijzeEigenschap,
			Datumkenmerk:    "brondatum",
		}))

		errs := s.params(ValidateArchiefprocedure(BrondatumArchiefprocedure{
			Afleidingswijze: AfleidingswijzeEigenschap,
			Datumkenmerk:    "brondatum",
			Objecttype:      "pand",
		}))
		s.Len(errs, 1)
		s.Equal("brondatumArchiefprocedure.objecttype", errs[0].Field)
	})

	s.Run("termijn requires a procestermijn", func() {
		s.NoError(ValidateArchiefprocedure(BrondatumArchiefprocedure{
			Afleidingswijze: AfleidingswijzeTermijn,
			Procestermijn:   &termijn,
		}))

		errs := s.params(ValidateArchiefprocedure(BrondatumArchiefprocedure{
			Afleidingswijze: AfleidingswijzeTermijn,
		}))
		s.Len(errs, 1)
		s.Equal("brondatumArchiefprocedure.procestermijn", errs[0].Field)
		s.Equal(domainerrors.CodeRequired, errs[0].Code)
	})

	s.Run("a zero procestermijn counts as empty", func() {
		zero := period.Period{}
		errs := s.params(ValidateArchiefprocedure(BrondatumArchiefprocedure{
			Afleidingswijze: AfleidingswijzeTermijn,
			Procestermijn:   &zero,
		}))
		s.Len(errs, 1)
		s.Equal("brondatumArchiefprocedure.procestermijn", errs[0].Field)
	})

	s.Run("zaakobject requires datumkenmerk and objecttype", func() {
		s.NoError(ValidateArchiefprocedure(BrondatumArchiefprocedure{
			Afleidingswijze: AfleidingswijzeZaakobject,
			Datumkenmerk:    "einddatum",
			Objecttype:      "verblijfsobject",
		}))

		errs := s.params(ValidateArchiefprocedure(BrondatumArchiefprocedure{
			Afleidingswijze: AfleidingswijzeZaakobject,
		}))
		s.Len(errs, 2)
	})

	s.Run("unknown afleidingswijze is rejected", func() {
		errs := s.params(ValidateArchiefprocedure(BrondatumArchiefprocedure{
			Afleidingswijze: "onbekend",
		}))
		s.Len(errs, 1)
		s.Equal("brondatumArchiefprocedure.afleidingswijze", errs[0].Field)
	})
}

func (s *ArchiefprocedureSuite) TestValidateAfleidingswijzeForProcestermijn() {
	s.Run("no procestermijn allows any afleidingswijze", func() {
		s.NoError(ValidateAfleidingswijzeForProcestermijn("", AfleidingswijzeEigenschap))
		s.NoError(ValidateAfleidingswijzeForProcestermijn("", AfleidingswijzeAfgehandeld))
	})

	s.Run("nihil demands afgehandeld", func() {
		s.NoError(ValidateAfleidingswijzeForProcestermijn(selectielijst.ProcestermijnNihil, AfleidingswijzeAfgehandeld))

		err := ValidateAfleidingswijzeForProcestermijn(selectielijst.ProcestermijnNihil, AfleidingswijzeAnderDatumkenmerk)
		s.True(domainerrors.Is(err, domainerrors.CodeInvalidAfleidingswijze))
	})

	s.Run("afgehandeld needs nihil", func() {
		err := ValidateAfleidingswijzeForProcestermijn(selectielijst.ProcestermijnIngeschatteBestaansduur, AfleidingswijzeAfgehandeld)
		s.True(domainerrors.Is(err, domainerrors.CodeInvalidAfleidingswijze))
	})

	s.Run("ingeschatte bestaansduur demands termijn", func() {
		s.NoError(ValidateAfleidingswijzeForProcestermijn(selectielijst.ProcestermijnIngeschatteBestaansduur, AfleidingswijzeTermijn))

		err := ValidateAfleidingswijzeForProcestermijn(selectielijst.ProcestermijnIngeschatteBestaansduur, AfleidingswijzeHoofdzaak)
		s.True(domainerrors.Is(err, domainerrors.CodeInvalidAfleidingswijze))
	})

	s.Run("termijn needs ingeschatte bestaansduur", func() {
		err := ValidateAfleidingswijzeForProcestermijn(selectielijst.ProcestermijnNihil, AfleidingswijzeTermijn)
		s.True(domainerrors.Is(err, domainerrors.CodeInvalidAfleidingswijze))
	})
}
