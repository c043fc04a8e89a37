package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"zaakregister/internal/authz"
	"zaakregister/internal/catalogi"
	"zaakregister/internal/documenten"
	"zaakregister/internal/documenten/mocks"
	"zaakregister/internal/objecten"
	"zaakregister/internal/zaken"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/period"
)

// DocumentRegistrySuite pins the interaction with the documenten registry:
// which URLs get probed and what a registry outage does to the operation.
type DocumentRegistrySuite struct {
	suite.Suite
	store     *zaken.MemoryStore
	documents *mocks.MockClient
	service   *Service

	ctx        context.Context
	eindStatus *catalogi.Statustype
	resultaat  *catalogi.Resultaattype
	zaaktype   *catalogi.Zaaktype
}

func (s *DocumentRegistrySuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.store = zaken.NewMemoryStore()
	s.documents = mocks.NewMockClient(ctrl)

	types := catalogi.NewMemoryStore()
	s.zaaktype = &catalogi.Zaaktype{
		ID:                          uuid.New(),
		CatalogusID:                 uuid.New(),
		Identificatie:               "ZAAKTYPE-VERGUNNING",
		Omschrijving:                "Vergunningaanvraag",
		Vertrouwelijkheidaanduiding: catalogi.VertrouwelijkheidOpenbaar,
		Doorlooptijd:                period.MustParse("P30D"),
		BeginGeldigheid:             date(2018, 1, 1),
		Versiedatum:                 date(2018, 1, 1),
	}
	s.Require().NoError(types.CreateZaaktype(context.Background(), s.zaaktype))
	s.eindStatus = &catalogi.Statustype{ID: uuid.New(), ZaaktypeID: s.zaaktype.ID, Omschrijving: "Afgehandeld", Volgnummer: 2}
	s.Require().NoError(types.CreateStatustype(context.Background(), s.eindStatus))
	s.resultaat = &catalogi.Resultaattype{
		ID:               uuid.New(),
		ZaaktypeID:       s.zaaktype.ID,
		Omschrijving:     "Verleend",
		Archiefnominatie: catalogi.ArchiefnominatieVernietigen,
		Brondatum:        catalogi.BrondatumArchiefprocedure{Afleidingswijze: catalogi.AfleidingswijzeAfgehandeld},
	}
	s.Require().NoError(types.CreateResultaattype(context.Background(), s.resultaat))

	s.service = New(s.store, types, s.documents, &objecten.StaticClient{})
	s.ctx = authz.WithScopes(context.Background(), authz.NewScopes(
		string(authz.ScopeZakenLezen),
		string(authz.ScopeZakenAanmaken),
		string(authz.ScopeZakenBijwerken),
		string(authz.ScopeStatussenToevoegen),
	))
}

func TestDocumentRegistrySuite(t *testing.T) {
	suite.Run(t, new(DocumentRegistrySuite))
}

func (s *DocumentRegistrySuite) newZaak() *zaken.Zaak {
	zaak, err := s.service.CreateZaak(s.ctx, &zaken.Zaak{
		Bronorganisatie: "123456782",
		ZaaktypeID:      s.zaaktype.ID,
		Omschrijving:    "Aanvraag kapvergunning",
		Startdatum:      date(2018, 3, 1),
	})
	s.Require().NoError(err)
	return zaak
}

func (s *DocumentRegistrySuite) TestLinkProbesRegistry() {
	zaak := s.newZaak()
	const url = "https://documenten.example.nl/api/v1/informatieobjecten/42"

	s.documents.EXPECT().Probe(gomock.Any(), url).
		Return(&documenten.Document{URL: url, IndicatieGebruiksrecht: boolPtr(false)}, nil)

	zio, err := s.service.AddZaakInformatieObject(s.ctx, &zaken.ZaakInformatieObject{
		ZaakID:           zaak.ID,
		InformatieObject: url,
	})
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, zio.ID)
}

func (s *DocumentRegistrySuite) TestLinkFailsWhenRegistryIsDown() {
	zaak := s.newZaak()
	const url = "https://documenten.example.nl/api/v1/informatieobjecten/42"

	s.documents.EXPECT().Probe(gomock.Any(), url).
		Return(nil, domainerrors.New(domainerrors.CodeDependencyUnavailable, "documenten registry returned status 503"))

	_, err := s.service.AddZaakInformatieObject(s.ctx, &zaken.ZaakInformatieObject{
		ZaakID:           zaak.ID,
		InformatieObject: url,
	})
	s.True(domainerrors.Is(err, domainerrors.CodeDependencyUnavailable))
}

func (s *DocumentRegistrySuite) TestClosureAbortsOnRegistryOutage() {
	zaak := s.newZaak()
	const url = "https://documenten.example.nl/api/v1/informatieobjecten/42"

	gomock.InOrder(
		s.documents.EXPECT().Probe(gomock.Any(), url).
			Return(&documenten.Document{URL: url, IndicatieGebruiksrecht: boolPtr(false)}, nil),
		s.documents.EXPECT().Probe(gomock.Any(), url).
			Return(nil, domainerrors.New(domainerrors.CodeDependencyUnavailable, "documenten registry returned status 503")),
	)

	_, err := s.service.AddZaakInformatieObject(s.ctx, &zaken.ZaakInformatieObject{
		ZaakID:           zaak.ID,
		InformatieObject: url,
	})
	s.Require().NoError(err)
	_, err = s.service.SetResultaat(s.ctx, zaak.ID, s.resultaat.ID, "verleend")
	s.Require().NoError(err)

	_, err = s.service.AddStatus(s.ctx, zaak.ID, s.eindStatus.ID, date(2018, 10, 22), "")
	s.True(domainerrors.Is(err, domainerrors.CodeDependencyUnavailable))

	open, err := s.service.GetZaak(s.ctx, zaak.ID)
	s.Require().NoError(err)
	s.Nil(open.Einddatum)
}
