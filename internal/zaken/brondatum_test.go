package zaken

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"zaakregister/internal/catalogi"
	"zaakregister/internal/objecten"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/period"
)

type BrondatumSuite struct {
	suite.Suite
	ctx      context.Context
	store    *MemoryStore
	objects  *objecten.StaticClient
	resolver *Resolver
	zaak     *Zaak
}

func (s *BrondatumSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewMemoryStore()
	s.objects = &objecten.StaticClient{Objects: map[string]map[string]any{}}
	s.resolver = NewResolver(s.store, s.objects)

	s.zaak = &Zaak{
		ID:              uuid.New(),
		Identificatie:   "ZAAK-2018-0000000001",
		Bronorganisatie: "123456782",
		ZaaktypeID:      uuid.New(),
		Startdatum:      time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
		Archiefstatus:   ArchiefstatusNogTeArchiveren,
	}
	s.Require().NoError(s.store.CreateZaak(s.ctx, s.zaak))
}

func TestBrondatumSuite(t *testing.T) {
	suite.Run(t, new(BrondatumSuite))
}

func (s *BrondatumSuite) resultaattype(proc catalogi.BrondatumArchiefprocedure, termijn *period.Period) *catalogi.Resultaattype {
	return &catalogi.Resultaattype{
		ID:                  uuid.New(),
		ZaaktypeID:          s.zaak.ZaaktypeID,
		Omschrijving:        "Verleend",
		Archiefnominatie:    catalogi.ArchiefnominatieVernietigen,
		Archiefactietermijn: termijn,
		Brondatum:           proc,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *BrondatumSuite) TestAfgehandeld() {
	termijn := period.MustParse("P10Y")
	resultaattype := s.resultaattype(catalogi.BrondatumArchiefprocedure{
		Afleidingswijze: catalogi.AfleidingswijzeAfgehandeld,
	}, &termijn)

	resolution, err := s.resolver.Resolve(s.ctx, s.zaak, resultaattype, time.Date(2018, 10, 22, 10, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.Equal(catalogi.ArchiefnominatieVernietigen, resolution.Archiefnominatie)
	s.Require().NotNil(resolution.Archiefactiedatum)
	s.Equal(date(2028, 10, 22), *resolution.Archiefactiedatum)
}

func (s *BrondatumSuite) TestWithoutTermijn() {
	resultaattype := s.resultaattype(catalogi.BrondatumArchiefprocedure{
		Afleidingswijze: catalogi.AfleidingswijzeAfgehandeld,
	}, nil)

	resolution, err := s.resolver.Resolve(s.ctx, s.zaak, resultaattype, time.Date(2018, 10, 22, 10, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.Require().NotNil(resolution.Archiefactiedatum)
	s.Equal(date(2018, 10, 22), *resolution.Archiefactiedatum, "without a termijn the actiedatum is the brondatum itself")
}

func (s *BrondatumSuite) TestIngangsdatumBesluit() {
	termijn := period.MustParse("P10Y")
	resultaattype := s.resultaattype(catalogi.BrondatumArchiefprocedure{
		Afleidingswijze: catalogi.AfleidingswijzeIngangsdatumBesluit,
	}, &termijn)

	s.Run("no besluiten means no actiedatum", func() {
		resolution, err := s.resolver.Resolve(s.ctx, s.zaak, resultaattype, date(2020, 6, 1))
		s.Require().NoError(err)
		s.Nil(resolution.Archiefactiedatum)
	})

	s.Run("the earliest ingangsdatum wins", func() {
		s.Require().NoError(s.store.CreateBesluit(s.ctx, &Besluit{
			ID: uuid.New(), ZaakID: s.zaak.ID, Identificatie: "BESLUIT-1", Ingangsdatum: date(2020, 7, 1),
		}))
		s.Require().NoError(s.store.CreateBesluit(s.ctx, &Besluit{
			ID: uuid.New(), ZaakID: s.zaak.ID, Identificatie: "BESLUIT-2", Ingangsdatum: date(2020, 5, 3),
		}))

		resolution, err := s.resolver.Resolve(s.ctx, s.zaak, resultaattype, date(2020, 8, 1))
		s.Require().NoError(err)
		s.Require().NotNil(resolution.Archiefactiedatum)
		s.Equal(date(2030, 5, 3), *resolution.Archiefactiedatum)
	})
}

func (s *BrondatumSuite) TestVervaldatumBesluit() {
	resultaattype := s.resultaattype(catalogi.BrondatumArchiefprocedure{
		Afleidingswijze: catalogi.AfleidingswijzeVervaldatumBesluit,
	}, nil)

	vervaldatum := date(2022, 3, 1)
	s.Require().NoError(s.store.CreateBesluit(s.ctx, &Besluit{
		ID: uuid.New(), ZaakID: s.zaak.ID, Identificatie: "BESLUIT-1",
		Ingangsdatum: date(2020, 1, 1), Vervaldatum: &vervaldatum,
	}))
	s.Require().NoError(s.store.CreateBesluit(s.ctx, &Besluit{
		ID: uuid.New(), ZaakID: s.zaak.ID, Identificatie: "BESLUIT-2",
		Ingangsdatum: date(2019, 1, 1),
	}))

	resolution, err := s.resolver.Resolve(s.ctx, s.zaak, resultaattype, date(2022, 6, 1))
	s.Require().NoError(err)
	s.Require().NotNil(resolution.Archiefactiedatum)
	s.Equal(vervaldatum, *resolution.Archiefactiedatum, "besluiten without vervaldatum are skipped")
}

func (s *BrondatumSuite) TestEigenschap() {
	termijn := period.MustParse("P10Y")
	resultaattype := s.resultaattype(catalogi.BrondatumArchiefprocedure{
		Afleidingswijze: catalogi.AfleidingswijzeEigenschap,
		Datumkenmerk:    "brondatum",
	}, &termijn)

	s.Run("a missing eigenschap blocks resolution", func() {
		_, err := s.resolver.Resolve(s.ctx, s.zaak, resultaattype, date(2019, 2, 1))
		s.True(domainerrors.Is(err, domainerrors.CodeZonderArchiefactiedatum))
	})

	s.Run("a timestamp value reduces to its date", func() {
		s.Require().NoError(s.store.CreateZaakEigenschap(s.ctx, &ZaakEigenschap{
			ID: uuid.New(), ZaakID: s.zaak.ID, EigenschapID: uuid.New(),
			Naam: "brondatum", Waarde: "2019-01-01T00:00:00Z",
		}))

		resolution, err := s.resolver.Resolve(s.ctx, s.zaak, resultaattype, date(2019, 2, 1))
		s.Require().NoError(err)
		s.Require().NotNil(resolution.Archiefactiedatum)
		s.Equal(date(2029, 1, 1), *resolution.Archiefactiedatum)
	})

	s.Run("an unparseable value blocks resolution", func() {
		zaak := &Zaak{ID: uuid.New(), Bronorganisatie: "123456782", ZaaktypeID: s.zaak.ZaaktypeID, Identificatie: "ZAAK-2018-0000000002", Startdatum: date(2018, 1, 1)}
		s.Require().NoError(s.store.CreateZaak(s.ctx, zaak))
		s.Require().NoError(s.store.CreateZaakEigenschap(s.ctx, &ZaakEigenschap{
			ID: uuid.New(), ZaakID: zaak.ID, EigenschapID: uuid.New(),
			Naam: "brondatum", Waarde: "volgende week",
		}))
		_, err := s.resolver.Resolve(s.ctx, zaak, resultaattype, date(2019, 2, 1))
		s.True(domainerrors.Is(err, domainerrors.CodeZonderArchiefactiedatum))
	})
}

func (s *BrondatumSuite) TestZaakobject() {
	resultaattype := s.resultaattype(catalogi.BrondatumArchiefprocedure{
		Afleidingswijze: catalogi.AfleidingswijzeZaakobject,
		Datumkenmerk:    "einddatum",
		Objecttype:      "pand",
	}, nil)

	s.Run("a missing zaakobject blocks resolution", func() {
		_, err := s.resolver.Resolve(s.ctx, s.zaak, resultaattype, date(2021, 1, 1))
		s.True(domainerrors.Is(err, domainerrors.CodeZonderArchiefactiedatum))
	})

	s.Run("the earliest object date wins", func() {
		s.objects.Objects["https://objecten.example.nl/panden/1"] = map[string]any{"einddatum": "2021-06-01"}
		s.objects.Objects["https://objecten.example.nl/panden/2"] = map[string]any{"einddatum": "2021-02-01"}
		for _, url := range []string{"https://objecten.example.nl/panden/1", "https://objecten.example.nl/panden/2"} {
			s.Require().NoError(s.store.CreateZaakObject(s.ctx, &ZaakObject{
				ID: uuid.New(), ZaakID: s.zaak.ID, Object: url, ObjectType: ObjectTypePand,
			}))
		}

		resolution, err := s.resolver.Resolve(s.ctx, s.zaak, resultaattype, date(2021, 7, 1))
		s.Require().NoError(err)
		s.Require().NotNil(resolution.Archiefactiedatum)
		s.Equal(date(2021, 2, 1), *resolution.Archiefactiedatum)
	})

	s.Run("an object without the date field blocks resolution", func() {
		zaak := &Zaak{ID: uuid.New(), Bronorganisatie: "123456782", ZaaktypeID: s.zaak.ZaaktypeID, Identificatie: "ZAAK-2018-0000000003", Startdatum: date(2018, 1, 1)}
		s.Require().NoError(s.store.CreateZaak(s.ctx, zaak))
		s.objects.Objects["https://objecten.example.nl/panden/leeg"] = map[string]any{"status": "actief"}
		s.Require().NoError(s.store.CreateZaakObject(s.ctx, &ZaakObject{
			ID: uuid.New(), ZaakID: zaak.ID, Object: "https://objecten.example.nl/panden/leeg", ObjectType: ObjectTypePand,
		}))
		_, err := s.resolver.Resolve(s.ctx, zaak, resultaattype, date(2021, 1, 1))
		s.True(domainerrors.Is(err, domainerrors.CodeZonderArchiefactiedatum))
	})
}

func (s *BrondatumSuite) TestHoofdzaak() {
	resultaattype := s.resultaattype(catalogi.BrondatumArchiefprocedure{
		Afleidingswijze: catalogi.AfleidingswijzeHoofdzaak,
	}, nil)

	s.Run("without a hoofdzaak the actiedatum stays unset", func() {
		resolution, err := s.resolver.Resolve(s.ctx, s.zaak, resultaattype, date(2020, 1, 1))
		s.Require().NoError(err)
		s.Nil(resolution.Archiefactiedatum)
	})

	s.Run("the hoofdzaak einddatum is the brondatum", func() {
		einddatum := date(2019, 12, 1)
		hoofdzaak := &Zaak{ID: uuid.New(), Bronorganisatie: "123456782", ZaaktypeID: s.zaak.ZaaktypeID, Identificatie: "ZAAK-2018-0000000004", Startdatum: date(2018, 1, 1), Einddatum: &einddatum}
		s.Require().NoError(s.store.CreateZaak(s.ctx, hoofdzaak))

		deelzaak := &Zaak{ID: uuid.New(), Bronorganisatie: "123456782", ZaaktypeID: s.zaak.ZaaktypeID, Identificatie: "ZAAK-2018-0000000005", Startdatum: date(2018, 1, 1), HoofdzaakID: &hoofdzaak.ID}
		s.Require().NoError(s.store.CreateZaak(s.ctx, deelzaak))

		resolution, err := s.resolver.Resolve(s.ctx, deelzaak, resultaattype, date(2020, 1, 1))
		s.Require().NoError(err)
		s.Require().NotNil(resolution.Archiefactiedatum)
		s.Equal(einddatum, *resolution.Archiefactiedatum)
	})
}

func (s *BrondatumSuite) TestGerelateerdeZaak() {
	resultaattype := s.resultaattype(catalogi.BrondatumArchiefprocedure{
		Afleidingswijze: catalogi.AfleidingswijzeGerelateerdeZaak,
	}, nil)

	eersteEinde := date(2019, 3, 1)
	tweedeEinde := date(2019, 8, 1)
	eerste := &Zaak{ID: uuid.New(), Bronorganisatie: "123456782", ZaaktypeID: s.zaak.ZaaktypeID, Identificatie: "ZAAK-2018-0000000006", Startdatum: date(2018, 1, 1), Einddatum: &eersteEinde}
	tweede := &Zaak{ID: uuid.New(), Bronorganisatie: "123456782", ZaaktypeID: s.zaak.ZaaktypeID, Identificatie: "ZAAK-2018-0000000007", Startdatum: date(2018, 1, 1), Einddatum: &tweedeEinde}
	s.Require().NoError(s.store.CreateZaak(s.ctx, eerste))
	s.Require().NoError(s.store.CreateZaak(s.ctx, tweede))

	zaak := &Zaak{ID: uuid.New(), Bronorganisatie: "123456782", ZaaktypeID: s.zaak.ZaaktypeID, Identificatie: "ZAAK-2018-0000000008", Startdatum: date(2018, 1, 1), RelevanteAndereZaken: []uuid.UUID{eerste.ID, tweede.ID}}
	s.Require().NoError(s.store.CreateZaak(s.ctx, zaak))

	resolution, err := s.resolver.Resolve(s.ctx, zaak, resultaattype, date(2020, 1, 1))
	s.Require().NoError(err)
	s.Require().NotNil(resolution.Archiefactiedatum)
	s.Equal(eersteEinde, *resolution.Archiefactiedatum)
}

func (s *BrondatumSuite) TestTermijn() {
	procestermijn := period.MustParse("P5Y")
	archieftermijn := period.MustParse("P1Y")
	resultaattype := s.resultaattype(catalogi.BrondatumArchiefprocedure{
		Afleidingswijze: catalogi.AfleidingswijzeTermijn,
		Procestermijn:   &procestermijn,
	}, &archieftermijn)

	resolution, err := s.resolver.Resolve(s.ctx, s.zaak, resultaattype, date(2020, 2, 10))
	s.Require().NoError(err)
	s.Require().NotNil(resolution.Archiefactiedatum)
	s.Equal(date(2025, 2, 10), *resolution.Archiefactiedatum, "the procestermijn substitutes the archiefactietermijn")
}

func (s *BrondatumSuite) TestAnderDatumkenmerk() {
	resultaattype := s.resultaattype(catalogi.BrondatumArchiefprocedure{
		Afleidingswijze: catalogi.AfleidingswijzeAnderDatumkenmerk,
		Datumkenmerk:    "besluitdatum",
		Objecttype:      "verblijfsobject",
		Registratie:     "BAG",
	}, nil)

	resolution, err := s.resolver.Resolve(s.ctx, s.zaak, resultaattype, date(2020, 1, 1))
	s.Require().NoError(err)
	s.Equal(catalogi.ArchiefnominatieVernietigen, resolution.Archiefnominatie)
	s.Nil(resolution.Archiefactiedatum, "out-of-band derivation leaves the actiedatum unset")
}

func (s *BrondatumSuite) TestIdempotent() {
	termijn := period.MustParse("P10Y")
	resultaattype := s.resultaattype(catalogi.BrondatumArchiefprocedure{
		Afleidingswijze: catalogi.AfleidingswijzeAfgehandeld,
	}, &termijn)

	first, err := s.resolver.Resolve(s.ctx, s.zaak, resultaattype, date(2018, 10, 22))
	s.Require().NoError(err)
	second, err := s.resolver.Resolve(s.ctx, s.zaak, resultaattype, date(2018, 10, 22))
	s.Require().NoError(err)
	s.Equal(first.Archiefnominatie, second.Archiefnominatie)
	s.Equal(*first.Archiefactiedatum, *second.Archiefactiedatum)
}
