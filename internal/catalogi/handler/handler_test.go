package handler_test

import (
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"zaakregister/internal/authz"
	"zaakregister/internal/catalogi"
	"zaakregister/internal/catalogi/handler"
	catalogiservice "zaakregister/internal/catalogi/service"
	"zaakregister/internal/selectielijst"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/testutil"
)

const (
	procestypeURL = "https://selectielijst.example.nl/api/v1/procestypen/aa1a"
	klasseURL     = "https://selectielijst.example.nl/api/v1/resultaten/afgehandeld"
)

type HandlerSuite struct {
	suite.Suite

	router chi.Router
}

func (s *HandlerSuite) SetupTest() {
	service := catalogiservice.New(catalogi.NewMemoryStore(), &selectielijst.StaticClient{
		Resultaten: map[string]*selectielijst.Resultaat{
			klasseURL: {
				URL:           klasseURL,
				ProcesType:    procestypeURL,
				Procestermijn: selectielijst.ProcestermijnNihil,
			},
		},
	})
	router := chi.NewRouter()
	handler.New(service, slog.New(slog.DiscardHandler)).Register(router)
	s.router = router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) asReader(req *http.Request) *http.Request {
	return testutil.WithScopes(req, string(authz.ScopeCatalogiLezen))
}

func (s *HandlerSuite) asWriter(req *http.Request) *http.Request {
	return testutil.WithClient(req, "zaakafhandelcomponent",
		string(authz.ScopeCatalogiSchrijven), string(authz.ScopeCatalogiVerwijderen))
}

func (s *HandlerSuite) createCatalogus() *handler.CatalogusResponse {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/catalogussen", map[string]string{
		"domein": "GEMNT",
		"rsin":   "123456782",
	})
	rr := testutil.DoRequest(s.router, s.asWriter(req))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	return testutil.UnmarshalResponse[handler.CatalogusResponse](s.T(), rr)
}

func (s *HandlerSuite) zaaktypeBody(catalogusID, omschrijving string) map[string]any {
	return map[string]any{
		"catalogus":                   catalogusID,
		"identificatie":               "ZAAKTYPE-" + omschrijving,
		"omschrijving":                omschrijving,
		"vertrouwelijkheidaanduiding": "openbaar",
		"doorlooptijd":                "P30D",
		"beginGeldigheid":             "2018-01-01",
		"versiedatum":                 "2018-01-01",
		"selectielijstProcestype":     procestypeURL,
	}
}

func (s *HandlerSuite) createZaaktype(catalogusID, omschrijving string) *handler.ZaaktypeResponse {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/zaaktypen", s.zaaktypeBody(catalogusID, omschrijving))
	rr := testutil.DoRequest(s.router, s.asWriter(req))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	return testutil.UnmarshalResponse[handler.ZaaktypeResponse](s.T(), rr)
}

// addPublishSet posts the minimum subordinates a zaaktype needs before it can
// be published.
func (s *HandlerSuite) addPublishSet(zaaktypeID string) {
	for volgnummer, omschrijving := range map[int]string{1: "Ontvangen", 2: "Afgehandeld"} {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/statustypen", map[string]any{
			"zaaktype":     zaaktypeID,
			"omschrijving": omschrijving,
			"volgnummer":   volgnummer,
		})
		rr := testutil.DoRequest(s.router, s.asWriter(req))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	}

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/resultaattypen", map[string]any{
		"zaaktype":            zaaktypeID,
		"omschrijving":        "Verleend",
		"selectielijstklasse": klasseURL,
		"archiefnominatie":    "vernietigen",
		"brondatumArchiefprocedure": map[string]any{
			"afleidingswijze": "afgehandeld",
		},
	})
	rr := testutil.DoRequest(s.router, s.asWriter(req))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)

	req = testutil.NewJSONRequest(s.T(), http.MethodPost, "/roltypen", map[string]any{
		"zaaktype":             zaaktypeID,
		"omschrijving":         "Aanvrager",
		"omschrijvingGeneriek": "initiator",
	})
	rr = testutil.DoRequest(s.router, s.asWriter(req))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
}

func (s *HandlerSuite) TestCreateCatalogus() {
	s.Run("creates a catalogus", func() {
		catalogus := s.createCatalogus()
		s.Equal("GEMNT", catalogus.Domein)
		s.Equal("123456782", catalogus.RSIN)
		_, err := uuid.Parse(catalogus.ID)
		s.NoError(err)
	})

	s.Run("rejects a request without scopes", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/catalogussen", map[string]string{
			"domein": "GEMNT", "rsin": "123456782",
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndCode(s.T(), rr, http.StatusForbidden, domainerrors.CodePermissionDenied)
	})

	s.Run("rejects a read-only client", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/catalogussen", map[string]string{
			"domein": "GEMNT", "rsin": "123456782",
		})
		rr := testutil.DoRequest(s.router, s.asReader(req))
		testutil.AssertStatus(s.T(), rr, http.StatusForbidden)
	})

	s.Run("reports every missing field", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/catalogussen", map[string]string{})
		rr := testutil.DoRequest(s.router, s.asWriter(req))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		envelope := testutil.UnmarshalErrorEnvelope(s.T(), rr)
		s.Len(envelope.InvalidParams, 2)
		testutil.AssertInvalidParam(s.T(), rr, "domein", domainerrors.CodeRequired)
		testutil.AssertInvalidParam(s.T(), rr, "rsin", domainerrors.CodeRequired)
	})

	s.Run("rejects malformed JSON", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/catalogussen", `{"domein":`)
		rr := testutil.DoRequest(s.router, s.asWriter(req))
		testutil.AssertStatusAndCode(s.T(), rr, http.StatusBadRequest, domainerrors.CodeBadRequest)
	})

	s.Run("rejects an empty body", func() {
		req := testutil.NewRequest(s.T(), http.MethodPost, "/catalogussen")
		rr := testutil.DoRequest(s.router, s.asWriter(req))
		testutil.AssertStatusAndCode(s.T(), rr, http.StatusBadRequest, domainerrors.CodeBadRequest)
	})
}

func (s *HandlerSuite) TestZaaktypeRoutes() {
	catalogus := s.createCatalogus()

	s.Run("creates a concept zaaktype", func() {
		zaaktype := s.createZaaktype(catalogus.ID, "Vergunning")
		s.True(zaaktype.Concept)
		s.Equal(catalogus.ID, zaaktype.Catalogus)
		s.Equal("P30D", zaaktype.Doorlooptijd)
	})

	s.Run("reads a zaaktype with a read-only scope", func() {
		created := s.createZaaktype(catalogus.ID, "Melding")
		req := testutil.NewRequest(s.T(), http.MethodGet, "/zaaktypen/"+created.ID)
		rr := testutil.DoRequest(s.router, s.asReader(req))
		testutil.AssertStatusOK(s.T(), rr)
		got := testutil.UnmarshalResponse[handler.ZaaktypeResponse](s.T(), rr)
		s.Equal(created.ID, got.ID)
	})

	s.Run("lists zaaktypen per catalogus", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/zaaktypen?catalogus="+catalogus.ID)
		rr := testutil.DoRequest(s.router, s.asReader(req))
		testutil.AssertStatusOK(s.T(), rr)
		zaaktypen := testutil.UnmarshalResponse[[]*handler.ZaaktypeResponse](s.T(), rr)
		s.Len(*zaaktypen, 2)
	})

	s.Run("requires the catalogus query parameter", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/zaaktypen")
		rr := testutil.DoRequest(s.router, s.asReader(req))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertInvalidParam(s.T(), rr, "catalogus", domainerrors.CodeRequired)
	})

	s.Run("rejects a malformed path id", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/zaaktypen/not-a-uuid")
		rr := testutil.DoRequest(s.router, s.asReader(req))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertInvalidParam(s.T(), rr, "id", domainerrors.CodeInvalid)
	})

	s.Run("returns 404 for an unknown zaaktype", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/zaaktypen/"+uuid.NewString())
		rr := testutil.DoRequest(s.router, s.asReader(req))
		testutil.AssertStatusAndCode(s.T(), rr, http.StatusNotFound, domainerrors.CodeNotFound)
	})
}

func (s *HandlerSuite) TestPublishZaaktype() {
	catalogus := s.createCatalogus()
	zaaktype := s.createZaaktype(catalogus.ID, "Vergunning")
	publishPath := fmt.Sprintf("/zaaktypen/%s/publish", zaaktype.ID)

	s.Run("refuses to publish an incomplete zaaktype", func() {
		req := testutil.NewRequest(s.T(), http.MethodPost, publishPath)
		rr := testutil.DoRequest(s.router, s.asWriter(req))
		testutil.AssertStatusAndCode(s.T(), rr, http.StatusBadRequest, domainerrors.CodeConceptRelation)
	})

	s.Run("publishes once the subordinates are in place", func() {
		s.addPublishSet(zaaktype.ID)
		req := testutil.NewRequest(s.T(), http.MethodPost, publishPath)
		rr := testutil.DoRequest(s.router, s.asWriter(req))
		testutil.AssertStatusOK(s.T(), rr)
		published := testutil.UnmarshalResponse[handler.ZaaktypeResponse](s.T(), rr)
		s.False(published.Concept)
	})

	s.Run("refuses to delete the published zaaktype", func() {
		req := testutil.NewRequest(s.T(), http.MethodDelete, "/zaaktypen/"+zaaktype.ID)
		rr := testutil.DoRequest(s.router, s.asWriter(req))
		testutil.AssertStatusAndCode(s.T(), rr, http.StatusBadRequest, domainerrors.CodeNonConceptObject)
	})

	s.Run("deletes it with the forced scope", func() {
		req := testutil.NewRequest(s.T(), http.MethodDelete, "/zaaktypen/"+zaaktype.ID)
		rr := testutil.DoRequest(s.router,
			testutil.WithScopes(req, string(authz.ScopeCatalogiGeforceerdBijwerken)))
		testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
	})
}
