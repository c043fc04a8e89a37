package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"zaakregister/internal/authz"
	"zaakregister/internal/catalogi"
	"zaakregister/internal/notificaties"
	"zaakregister/internal/selectielijst"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/period"
)

const (
	procestypeURL = "https://selectielijst.example.nl/api/v1/procestypen/aa1a"
	klasseURL     = "https://selectielijst.example.nl/api/v1/resultaten/afgehandeld"
	klasseBTermijn = "https://selectielijst.example.nl/api/v1/resultaten/bestaansduur"
	klasseVreemd  = "https://selectielijst.example.nl/api/v1/resultaten/ander-procestype"
)

type ServiceSuite struct {
	suite.Suite
	store     *catalogi.MemoryStore
	publisher *notificaties.MemoryPublisher
	service   *Service

	ctx       context.Context
	forcedCtx context.Context

	catalogus *catalogi.Catalogus
}

func (s *ServiceSuite) SetupTest() {
	s.store = catalogi.NewMemoryStore()
	s.publisher = notificaties.NewMemoryPublisher()
	s.service = New(s.store, &selectielijst.StaticClient{
		Resultaten: map[string]*selectielijst.Resultaat{
			klasseURL: {
				URL:           klasseURL,
				ProcesType:    procestypeURL,
				Procestermijn: selectielijst.ProcestermijnNihil,
			},
			klasseBTermijn: {
				URL:           klasseBTermijn,
				ProcesType:    procestypeURL,
				Procestermijn: selectielijst.ProcestermijnIngeschatteBestaansduur,
			},
			klasseVreemd: {
				URL:        klasseVreemd,
				ProcesType: "https://selectielijst.example.nl/api/v1/procestypen/zz9z",
			},
		},
	}, WithPublisher(s.publisher))

	s.ctx = authz.WithScopes(context.Background(), authz.NewScopes(
		string(authz.ScopeCatalogiLezen), string(authz.ScopeCatalogiSchrijven)))
	s.forcedCtx = authz.WithScopes(context.Background(), authz.NewScopes(
		string(authz.ScopeCatalogiSchrijven), string(authz.ScopeCatalogiGeforceerdBijwerken)))

	catalogus, err := s.service.CreateCatalogus(s.ctx, "GEMNT", "123456782")
	s.Require().NoError(err)
	s.catalogus = catalogus
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) newZaaktype(omschrijving string, begin time.Time) *catalogi.Zaaktype {
	zaaktype, err := s.service.CreateZaaktype(s.ctx, &catalogi.Zaaktype{
		CatalogusID:                 s.catalogus.ID,
		Identificatie:               "ZAAKTYPE-" + omschrijving,
		Omschrijving:                omschrijving,
		Vertrouwelijkheidaanduiding: catalogi.VertrouwelijkheidOpenbaar,
		Doorlooptijd:                period.MustParse("P30D"),
		BeginGeldigheid:             begin,
		Versiedatum:                 begin,
		SelectielijstProcestype:     procestypeURL,
	})
	s.Require().NoError(err)
	return zaaktype
}

// addPublishSet gives the zaaktype the minimum subordinates for publication:
// a begin- and eindstatus, a resultaattype with selectielijstklasse and a
// roltype.
func (s *ServiceSuite) addPublishSet(zaaktypeID uuid.UUID) {
	for volgnummer, omschrijving := range map[int]string{1: "Ontvangen", 2: "Afgehandeld"} {
		_, err := s.service.CreateStatustype(s.ctx, &catalogi.Statustype{
			ZaaktypeID: zaaktypeID, Omschrijving: omschrijving, Volgnummer: volgnummer,
		})
		s.Require().NoError(err)
	}
	_, err := s.service.CreateResultaattype(s.ctx, &catalogi.Resultaattype{
		ZaaktypeID:          zaaktypeID,
		Omschrijving:        "Verleend",
		Selectielijstklasse: klasseURL,
		Archiefnominatie:    catalogi.ArchiefnominatieVernietigen,
		Brondatum:           catalogi.BrondatumArchiefprocedure{Afleidingswijze: catalogi.AfleidingswijzeAfgehandeld},
	})
	s.Require().NoError(err)
	_, err = s.service.CreateRoltype(s.ctx, &catalogi.Roltype{
		ZaaktypeID:           zaaktypeID,
		Omschrijving:         "Aanvrager",
		OmschrijvingGeneriek: catalogi.RolOmschrijvingInitiator,
	})
	s.Require().NoError(err)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *ServiceSuite) TestCreateCatalogus() {
	s.Run("rejects malformed domein and rsin together", func() {
		_, err := s.service.CreateCatalogus(s.ctx, "TOOLONG", "12AB")
		errs := domainerrors.Flatten(err)
		s.Require().Len(errs, 2)
		s.Equal("domein", errs[0].Field)
		s.Equal("rsin", errs[1].Field)
	})

	s.Run("rejects a duplicate (domein, rsin) pair", func() {
		_, err := s.service.CreateCatalogus(s.ctx, "GEMNT", "123456782")
		s.True(domainerrors.Is(err, domainerrors.CodeUnique))
	})
}

func (s *ServiceSuite) TestPublishZaaktype() {
	s.Run("an incomplete zaaktype reports exactly what is missing", func() {
		zaaktype := s.newZaaktype("Vergunningaanvraag", date(2018, 1, 1))
		_, err := s.service.CreateStatustype(s.ctx, &catalogi.Statustype{
			ZaaktypeID: zaaktype.ID, Omschrijving: "Ontvangen", Volgnummer: 1,
		})
		s.Require().NoError(err)
		_, err = s.service.CreateResultaattype(s.ctx, &catalogi.Resultaattype{
			ZaaktypeID:          zaaktype.ID,
			Omschrijving:        "Verleend",
			Selectielijstklasse: klasseURL,
			Brondatum:           catalogi.BrondatumArchiefprocedure{Afleidingswijze: catalogi.AfleidingswijzeAfgehandeld},
		})
		s.Require().NoError(err)
		_, err = s.service.CreateRoltype(s.ctx, &catalogi.Roltype{
			ZaaktypeID: zaaktype.ID, Omschrijving: "Aanvrager",
		})
		s.Require().NoError(err)

		_, err = s.service.PublishZaaktype(s.ctx, zaaktype.ID)
		errs := domainerrors.Flatten(err)
		s.Require().Len(errs, 1)
		s.Equal("statustypen", errs[0].Field)
		s.Equal(domainerrors.CodeConceptRelation, errs[0].Code)

		// Completing the statustypen unblocks publication.
		_, err = s.service.CreateStatustype(s.ctx, &catalogi.Statustype{
			ZaaktypeID: zaaktype.ID, Omschrijving: "Afgehandeld", Volgnummer: 2,
		})
		s.Require().NoError(err)
		published, err := s.service.PublishZaaktype(s.ctx, zaaktype.ID)
		s.Require().NoError(err)
		s.False(published.Concept)
	})

	s.Run("publish cascades to every subordinate definition", func() {
		zaaktype := s.newZaaktype("Meldingaanvraag", date(2018, 1, 1))
		s.addPublishSet(zaaktype.ID)
		_, err := s.service.CreateEigenschap(s.ctx, &catalogi.Eigenschap{
			ZaaktypeID: zaaktype.ID, Naam: "adres", Definitie: "Locatie van de melding",
		})
		s.Require().NoError(err)
		_, err = s.service.CreateZaakObjectType(s.ctx, &catalogi.ZaakObjectType{
			ZaaktypeID: zaaktype.ID, Objecttype: "pand",
		})
		s.Require().NoError(err)

		_, err = s.service.PublishZaaktype(s.ctx, zaaktype.ID)
		s.Require().NoError(err)

		statustypen, err := s.service.ListStatustypen(s.ctx, zaaktype.ID)
		s.Require().NoError(err)
		for _, statustype := range statustypen {
			s.False(statustype.Concept)
		}
		resultaattypen, err := s.service.ListResultaattypen(s.ctx, zaaktype.ID)
		s.Require().NoError(err)
		for _, resultaattype := range resultaattypen {
			s.False(resultaattype.Concept)
		}
		roltypen, err := s.service.ListRoltypen(s.ctx, zaaktype.ID)
		s.Require().NoError(err)
		for _, roltype := range roltypen {
			s.False(roltype.Concept)
		}
		eigenschappen, err := s.service.ListEigenschappen(s.ctx, zaaktype.ID)
		s.Require().NoError(err)
		s.Require().NotEmpty(eigenschappen)
		for _, eigenschap := range eigenschappen {
			s.False(eigenschap.Concept)
		}
		zaakobjecttypen, err := s.service.ListZaakObjectTypen(s.ctx, zaaktype.ID)
		s.Require().NoError(err)
		s.Require().NotEmpty(zaakobjecttypen)
		for _, zaakobjecttype := range zaakobjecttypen {
			s.False(zaakobjecttype.Concept)
		}

		events := s.publisher.Events()
		s.Require().NotEmpty(events)
		last := events[len(events)-1]
		s.Equal(notificaties.KanaalZaaktypen, last.Kanaal)
		s.Equal(notificaties.ActiePublish, last.Actie)
		s.Equal(zaaktype.ID.String(), last.Hoofdobject)
	})

	s.Run("publishing twice is rejected", func() {
		zaaktype := s.newZaaktype("Subsidieaanvraag", date(2018, 1, 1))
		s.addPublishSet(zaaktype.ID)
		_, err := s.service.PublishZaaktype(s.ctx, zaaktype.ID)
		s.Require().NoError(err)

		_, err = s.service.PublishZaaktype(s.ctx, zaaktype.ID)
		s.True(domainerrors.Is(err, domainerrors.CodeNonConceptObject))
	})

	s.Run("a resultaattype without selectielijstklasse blocks publication", func() {
		zaaktype := s.newZaaktype("Handhavingsverzoek", date(2018, 1, 1))
		s.addPublishSet(zaaktype.ID)
		_, err := s.service.CreateResultaattype(s.ctx, &catalogi.Resultaattype{
			ZaaktypeID:   zaaktype.ID,
			Omschrijving: "Afgebroken",
			Brondatum:    catalogi.BrondatumArchiefprocedure{Afleidingswijze: catalogi.AfleidingswijzeAfgehandeld},
		})
		s.Require().NoError(err)

		_, err = s.service.PublishZaaktype(s.ctx, zaaktype.ID)
		errs := domainerrors.Flatten(err)
		s.Require().Len(errs, 1)
		s.Equal("resultaattypen", errs[0].Field)
	})
}

func (s *ServiceSuite) TestPublishOverlap() {
	first := s.newZaaktype("Evenementvergunning", date(2018, 1, 1))
	s.addPublishSet(first.ID)
	_, err := s.service.PublishZaaktype(s.ctx, first.ID)
	s.Require().NoError(err)

	second := s.newZaaktype("Evenementvergunning", date(2018, 10, 10))
	s.addPublishSet(second.ID)

	s.Run("an open-ended published version blocks the successor", func() {
		_, err := s.service.PublishZaaktype(s.ctx, second.ID)
		errs := domainerrors.Flatten(err)
		s.Require().Len(errs, 1)
		s.Equal("beginGeldigheid", errs[0].Field)
		s.Equal(domainerrors.CodeOverlap, errs[0].Code)
	})

	s.Run("closing the predecessor's validity clears the way", func() {
		current, err := s.service.GetZaaktype(s.ctx, first.ID)
		s.Require().NoError(err)
		einde := date(2018, 10, 9)
		current.EindeGeldigheid = &einde
		_, err = s.service.UpdateZaaktype(s.ctx, current)
		s.Require().NoError(err)

		published, err := s.service.PublishZaaktype(s.ctx, second.ID)
		s.Require().NoError(err)
		s.False(published.Concept)
	})
}

func (s *ServiceSuite) TestUpdateZaaktype() {
	zaaktype := s.newZaaktype("Parkeervergunning", date(2018, 1, 1))
	s.addPublishSet(zaaktype.ID)
	_, err := s.service.PublishZaaktype(s.ctx, zaaktype.ID)
	s.Require().NoError(err)

	s.Run("published definitions refuse attribute changes", func() {
		current, err := s.service.GetZaaktype(s.ctx, zaaktype.ID)
		s.Require().NoError(err)
		current.Omschrijving = "Parkeerontheffing"
		_, err = s.service.UpdateZaaktype(s.ctx, current)
		s.True(domainerrors.Is(err, domainerrors.CodeNonConceptObject))
	})

	s.Run("the forced-update scope overrides the freeze", func() {
		current, err := s.service.GetZaaktype(s.forcedCtx, zaaktype.ID)
		s.Require().NoError(err)
		current.Omschrijving = "Parkeerontheffing"
		updated, err := s.service.UpdateZaaktype(s.forcedCtx, current)
		s.Require().NoError(err)
		s.Equal("Parkeerontheffing", updated.Omschrijving)
	})
}

func (s *ServiceSuite) TestSubordinateGating() {
	zaaktype := s.newZaaktype("Kapvergunning", date(2018, 1, 1))
	s.addPublishSet(zaaktype.ID)
	_, err := s.service.PublishZaaktype(s.ctx, zaaktype.ID)
	s.Require().NoError(err)

	s.Run("a published zaaktype admits no new subordinates", func() {
		_, err := s.service.CreateStatustype(s.ctx, &catalogi.Statustype{
			ZaaktypeID: zaaktype.ID, Omschrijving: "Heropend", Volgnummer: 3,
		})
		s.True(domainerrors.Is(err, domainerrors.CodeNonConceptObject))
	})

	s.Run("the forced-update scope still may add them", func() {
		_, err := s.service.CreateStatustype(s.forcedCtx, &catalogi.Statustype{
			ZaaktypeID: zaaktype.ID, Omschrijving: "Heropend", Volgnummer: 3,
		})
		s.NoError(err)
	})

	s.Run("volgnummer stays unique within the zaaktype", func() {
		concept := s.newZaaktype("Splitsingsvergunning", date(2018, 1, 1))
		_, err := s.service.CreateStatustype(s.ctx, &catalogi.Statustype{
			ZaaktypeID: concept.ID, Omschrijving: "Ontvangen", Volgnummer: 1,
		})
		s.Require().NoError(err)
		_, err = s.service.CreateStatustype(s.ctx, &catalogi.Statustype{
			ZaaktypeID: concept.ID, Omschrijving: "In behandeling", Volgnummer: 1,
		})
		s.True(domainerrors.Is(err, domainerrors.CodeUnique))
	})
}

func (s *ServiceSuite) TestCreateResultaattype() {
	zaaktype := s.newZaaktype("Omgevingsvergunning", date(2018, 1, 1))

	s.Run("rejects a selectielijstklasse of another procestype", func() {
		_, err := s.service.CreateResultaattype(s.ctx, &catalogi.Resultaattype{
			ZaaktypeID:          zaaktype.ID,
			Omschrijving:        "Verleend",
			Selectielijstklasse: klasseVreemd,
			Brondatum:           catalogi.BrondatumArchiefprocedure{Afleidingswijze: catalogi.AfleidingswijzeEigenschap, Datumkenmerk: "brondatum"},
		})
		s.True(domainerrors.Is(err, domainerrors.CodeProcestypeMismatch))
	})

	s.Run("rejects an afleidingswijze that contradicts the procestermijn", func() {
		_, err := s.service.CreateResultaattype(s.ctx, &catalogi.Resultaattype{
			ZaaktypeID:          zaaktype.ID,
			Omschrijving:        "Verleend",
			Selectielijstklasse: klasseURL,
			Brondatum:           catalogi.BrondatumArchiefprocedure{Afleidingswijze: catalogi.AfleidingswijzeEigenschap, Datumkenmerk: "brondatum"},
		})
		s.True(domainerrors.Is(err, domainerrors.CodeInvalidAfleidingswijze))
	})

	s.Run("accepts termijn with an estimated retention horizon", func() {
		termijn := period.MustParse("P5Y")
		created, err := s.service.CreateResultaattype(s.ctx, &catalogi.Resultaattype{
			ZaaktypeID:          zaaktype.ID,
			Omschrijving:        "Toegekend",
			Selectielijstklasse: klasseBTermijn,
			Brondatum:           catalogi.BrondatumArchiefprocedure{Afleidingswijze: catalogi.AfleidingswijzeTermijn, Procestermijn: &termijn},
		})
		s.Require().NoError(err)
		s.True(created.Concept)
	})

	s.Run("rejects a malformed archiefprocedure before touching the selectielijst", func() {
		_, err := s.service.CreateResultaattype(s.ctx, &catalogi.Resultaattype{
			ZaaktypeID:   zaaktype.ID,
			Omschrijving: "Verleend",
			Brondatum:    catalogi.BrondatumArchiefprocedure{Afleidingswijze: catalogi.AfleidingswijzeZaakobject},
		})
		errs := domainerrors.Flatten(err)
		s.Require().Len(errs, 2)
		s.Equal("brondatumArchiefprocedure.datumkenmerk", errs[0].Field)
		s.Equal("brondatumArchiefprocedure.objecttype", errs[1].Field)
	})
}

func (s *ServiceSuite) TestDeleteZaaktype() {
	s.Run("concept zaaktypen delete freely", func() {
		zaaktype := s.newZaaktype("Sloopmelding", date(2018, 1, 1))
		s.Require().NoError(s.service.DeleteZaaktype(s.ctx, zaaktype.ID))
		_, err := s.service.GetZaaktype(s.ctx, zaaktype.ID)
		s.True(domainerrors.Is(err, domainerrors.CodeNotFound))
	})

	s.Run("published zaaktypen need the forced-update scope", func() {
		zaaktype := s.newZaaktype("Inzageverzoek", date(2018, 1, 1))
		s.addPublishSet(zaaktype.ID)
		_, err := s.service.PublishZaaktype(s.ctx, zaaktype.ID)
		s.Require().NoError(err)

		err = s.service.DeleteZaaktype(s.ctx, zaaktype.ID)
		s.True(domainerrors.Is(err, domainerrors.CodeNonConceptObject))
		s.NoError(s.service.DeleteZaaktype(s.forcedCtx, zaaktype.ID))
	})
}
