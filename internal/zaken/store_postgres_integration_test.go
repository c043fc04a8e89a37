//go:build integration

package zaken_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"zaakregister/internal/catalogi"
	"zaakregister/internal/zaken"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/period"
	"zaakregister/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	ctx       context.Context
	container *containers.PostgresContainer
	store     *zaken.PostgresStore
	types     *catalogi.PostgresStore

	zaaktype *catalogi.Zaaktype
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.container = containers.NewPostgresContainer(s.T())
	s.store = zaken.NewPostgresStore(s.container.DB)
	s.types = catalogi.NewPostgresStore(s.container.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.container.TruncateAll(s.ctx,
		"catalogussen", "zaken", "zaak_identificatie_reeksen", "zaak_identificaties"))

	catalogus := &catalogi.Catalogus{ID: uuid.New(), Domein: "GEMNT", RSIN: "123456782"}
	s.Require().NoError(s.types.CreateCatalogus(s.ctx, catalogus))

	s.zaaktype = &catalogi.Zaaktype{
		ID:                          uuid.New(),
		CatalogusID:                 catalogus.ID,
		Identificatie:               "ZAAKTYPE-VERGUNNING",
		Omschrijving:                "Vergunningaanvraag",
		Vertrouwelijkheidaanduiding: catalogi.VertrouwelijkheidOpenbaar,
		Doorlooptijd:                period.MustParse("P30D"),
		BeginGeldigheid:             date(2018, 1, 1),
		Versiedatum:                 date(2018, 1, 1),
	}
	s.Require().NoError(s.types.CreateZaaktype(s.ctx, s.zaaktype))
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *PostgresStoreSuite) newZaak(identificatie string) *zaken.Zaak {
	zaak := &zaken.Zaak{
		ID:                 uuid.New(),
		Identificatie:      identificatie,
		Bronorganisatie:    "123456782",
		ZaaktypeID:         s.zaaktype.ID,
		Omschrijving:       "Aanvraag kapvergunning",
		Vertrouwelijkheidaanduiding: catalogi.VertrouwelijkheidOpenbaar,
		Registratiedatum:   date(2018, 3, 1),
		Startdatum:         date(2018, 3, 1),
		Archiefstatus:      zaken.ArchiefstatusNogTeArchiveren,
		Betalingsindicatie: zaken.BetalingsindicatieNvt,
	}
	s.Require().NoError(s.store.CreateZaak(s.ctx, zaak))
	return zaak
}

func (s *PostgresStoreSuite) TestZaakRoundTrip() {
	einddatumGepland := date(2018, 6, 1)
	nominatie := catalogi.ArchiefnominatieVernietigen
	actiedatum := date(2028, 3, 1)

	zaak := s.newZaak("ZAAK-2018-0000000001")
	zaak.Toelichting = "spoed"
	zaak.EinddatumGepland = &einddatumGepland
	zaak.Archiefnominatie = &nominatie
	zaak.Archiefactiedatum = &actiedatum
	zaak.ArchiefnominatieBerekend = true
	zaak.ArchiefactiedatumBerekend = true
	zaak.ProductenOfDiensten = []string{"https://producten.example.nl/kapvergunning"}
	s.Require().NoError(s.store.UpdateZaak(s.ctx, zaak))

	stored, err := s.store.GetZaak(s.ctx, zaak.ID)
	s.Require().NoError(err)
	s.Equal(zaak.Identificatie, stored.Identificatie)
	s.Equal(zaak.Toelichting, stored.Toelichting)
	s.Require().NotNil(stored.EinddatumGepland)
	s.True(einddatumGepland.Equal(*stored.EinddatumGepland))
	s.Require().NotNil(stored.Archiefnominatie)
	s.Equal(nominatie, *stored.Archiefnominatie)
	s.True(stored.ArchiefnominatieBerekend)
	s.True(stored.ArchiefactiedatumBerekend)
	s.Equal(zaak.ProductenOfDiensten, stored.ProductenOfDiensten)
}

func (s *PostgresStoreSuite) TestDuplicateIdentificatie() {
	s.newZaak("ZAAK-2018-0000000001")
	err := s.store.CreateZaak(s.ctx, &zaken.Zaak{
		ID:              uuid.New(),
		Identificatie:   "ZAAK-2018-0000000001",
		Bronorganisatie: "123456782",
		ZaaktypeID:      s.zaaktype.ID,
		Vertrouwelijkheidaanduiding: catalogi.VertrouwelijkheidOpenbaar,
		Registratiedatum: date(2018, 3, 1),
		Startdatum:       date(2018, 3, 1),
		Archiefstatus:    zaken.ArchiefstatusNogTeArchiveren,
		Betalingsindicatie: zaken.BetalingsindicatieNvt,
	})
	s.True(domainerrors.Is(err, domainerrors.CodeIdentificatieNietUniek))
}

func (s *PostgresStoreSuite) TestLastStatus() {
	statustype := &catalogi.Statustype{ID: uuid.New(), ZaaktypeID: s.zaaktype.ID, Omschrijving: "Ontvangen", Volgnummer: 1}
	s.Require().NoError(s.types.CreateStatustype(s.ctx, statustype))
	zaak := s.newZaak("ZAAK-2018-0000000001")

	_, err := s.store.LastStatus(s.ctx, zaak.ID)
	s.Require().True(errors.Is(err, zaken.ErrNotFound))

	eerste := &zaken.Status{ID: uuid.New(), ZaakID: zaak.ID, StatustypeID: statustype.ID, DatumStatusGezet: date(2018, 3, 1)}
	laatste := &zaken.Status{ID: uuid.New(), ZaakID: zaak.ID, StatustypeID: statustype.ID, DatumStatusGezet: date(2018, 5, 1)}
	s.Require().NoError(s.store.CreateStatus(s.ctx, laatste))
	s.Require().NoError(s.store.CreateStatus(s.ctx, eerste))

	last, err := s.store.LastStatus(s.ctx, zaak.ID)
	s.Require().NoError(err)
	s.Equal(laatste.ID, last.ID)
}

func (s *PostgresStoreSuite) TestResultaatUnique() {
	resultaattype := &catalogi.Resultaattype{
		ID: uuid.New(), ZaaktypeID: s.zaaktype.ID, Omschrijving: "Verleend",
		Brondatum: catalogi.BrondatumArchiefprocedure{Afleidingswijze: catalogi.AfleidingswijzeAfgehandeld},
	}
	s.Require().NoError(s.types.CreateResultaattype(s.ctx, resultaattype))
	zaak := s.newZaak("ZAAK-2018-0000000001")

	s.Require().NoError(s.store.CreateResultaat(s.ctx, &zaken.Resultaat{
		ID: uuid.New(), ZaakID: zaak.ID, ResultaattypeID: resultaattype.ID,
	}))
	err := s.store.CreateResultaat(s.ctx, &zaken.Resultaat{
		ID: uuid.New(), ZaakID: zaak.ID, ResultaattypeID: resultaattype.ID,
	})
	s.True(domainerrors.Is(err, domainerrors.CodeUnique))
}

func (s *PostgresStoreSuite) TestIdentificatieReeks() {
	first, err := s.store.ReserveIdentificatie(s.ctx, "123456782", 2018)
	s.Require().NoError(err)
	s.Equal("ZAAK-2018-0000000001", first.Identificatie)

	second, err := s.store.ReserveIdentificatie(s.ctx, "123456782", 2018)
	s.Require().NoError(err)
	s.Equal("ZAAK-2018-0000000002", second.Identificatie)

	other, err := s.store.ReserveIdentificatie(s.ctx, "999999999", 2018)
	s.Require().NoError(err)
	s.Equal("ZAAK-2018-0000000001", other.Identificatie, "sequences are scoped per bronorganisatie")

	s.Run("a reservation is consumed exactly once", func() {
		err := s.store.InTx(s.ctx, func(ctx context.Context) error {
			return s.store.ConsumeIdentificatie(ctx, "123456782", first.Identificatie)
		})
		s.Require().NoError(err)

		err = s.store.InTx(s.ctx, func(ctx context.Context) error {
			return s.store.ConsumeIdentificatie(ctx, "123456782", first.Identificatie)
		})
		s.True(domainerrors.Is(err, domainerrors.CodeIdentificatieNietUniek))
	})

	s.Run("an unreserved identificatie passes through", func() {
		err := s.store.InTx(s.ctx, func(ctx context.Context) error {
			return s.store.ConsumeIdentificatie(ctx, "123456782", "EIGEN-KENMERK-1")
		})
		s.NoError(err)
	})
}

func (s *PostgresStoreSuite) TestInTxRollsBack() {
	boom := errors.New("boom")
	zaakID := uuid.New()
	err := s.store.InTx(s.ctx, func(ctx context.Context) error {
		if err := s.store.CreateZaak(ctx, &zaken.Zaak{
			ID:              zaakID,
			Identificatie:   "ZAAK-2018-0000000099",
			Bronorganisatie: "123456782",
			ZaaktypeID:      s.zaaktype.ID,
			Vertrouwelijkheidaanduiding: catalogi.VertrouwelijkheidOpenbaar,
			Registratiedatum: date(2018, 3, 1),
			Startdatum:       date(2018, 3, 1),
			Archiefstatus:    zaken.ArchiefstatusNogTeArchiveren,
			Betalingsindicatie: zaken.BetalingsindicatieNvt,
		}); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	_, err = s.store.GetZaak(s.ctx, zaakID)
	s.True(errors.Is(err, zaken.ErrNotFound))
}

func (s *PostgresStoreSuite) TestLockZaakInTx() {
	zaak := s.newZaak("ZAAK-2018-0000000001")
	err := s.store.InTx(s.ctx, func(ctx context.Context) error {
		locked, err := s.store.LockZaak(ctx, zaak.ID)
		if err != nil {
			return err
		}
		locked.Omschrijving = "vergrendeld bijgewerkt"
		return s.store.UpdateZaak(ctx, locked)
	})
	s.Require().NoError(err)

	stored, err := s.store.GetZaak(s.ctx, zaak.ID)
	s.Require().NoError(err)
	s.Equal("vergrendeld bijgewerkt", stored.Omschrijving)
}
