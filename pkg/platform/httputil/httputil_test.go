package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"zaakregister/pkg/domainerrors"
)

type HTTPUtilSuite struct {
	suite.Suite
	logger *slog.Logger
}

func (s *HTTPUtilSuite) SetupTest() {
	s.logger = slog.New(slog.DiscardHandler)
}

func TestHTTPUtilSuite(t *testing.T) {
	suite.Run(t, new(HTTPUtilSuite))
}

func (s *HTTPUtilSuite) decodeEnvelope(w *httptest.ResponseRecorder) ErrorEnvelope {
	var envelope ErrorEnvelope
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&envelope))
	return envelope
}

func (s *HTTPUtilSuite) TestWriteError() {
	s.Run("validation errors carry every invalid param", func() {
		w := httptest.NewRecorder()
		WriteError(w, domainerrors.List{
			domainerrors.NewField("domein", domainerrors.CodeInvalid, "bad domein"),
			domainerrors.NewField("rsin", domainerrors.CodeInvalid, "bad rsin"),
		})

		s.Equal(http.StatusBadRequest, w.Code)
		envelope := s.decodeEnvelope(w)
		s.Equal("Bad Request", envelope.Title)
		s.Equal(http.StatusBadRequest, envelope.Status)
		s.Require().Len(envelope.InvalidParams, 2)
		s.Equal("domein", envelope.InvalidParams[0].Field)
		s.Equal(domainerrors.CodeInvalid, envelope.InvalidParams[0].Code)
	})

	s.Run("permission denied maps to 403", func() {
		w := httptest.NewRecorder()
		WriteError(w, domainerrors.New(domainerrors.CodePermissionDenied, "missing scope"))
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("not found maps to 404", func() {
		w := httptest.NewRecorder()
		WriteError(w, domainerrors.New(domainerrors.CodeNotFound, "zaak not found"))
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("identificatie conflict maps to 409", func() {
		w := httptest.NewRecorder()
		WriteError(w, domainerrors.NewField("identificatie", domainerrors.CodeIdentificatieNietUniek, "already registered"))
		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("internal errors mask their details", func() {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("pq: connection refused"))

		s.Equal(http.StatusInternalServerError, w.Code)
		envelope := s.decodeEnvelope(w)
		s.Require().Len(envelope.InvalidParams, 1)
		s.Equal(domainerrors.CodeInternal, envelope.InvalidParams[0].Code)
		s.NotContains(envelope.InvalidParams[0].Reason, "connection refused")
	})
}

type echoRequest struct {
	Name string `json:"name"`
}

func (r *echoRequest) Validate() error {
	if r.Name == "" {
		return domainerrors.NewField("name", domainerrors.CodeRequired, "name is required")
	}
	return nil
}

func (s *HTTPUtilSuite) TestDecode() {
	s.Run("decodes and validates a well-formed body", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"toets"}`))

		req, ok := Decode[*echoRequest](w, r, s.logger)
		s.Require().True(ok)
		s.Equal("toets", req.Name)
	})

	s.Run("empty body fails with bad request", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

		_, ok := Decode[*echoRequest](w, r, s.logger)
		s.False(ok)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("malformed JSON fails with bad request", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))

		_, ok := Decode[*echoRequest](w, r, s.logger)
		s.False(ok)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("validation failure writes the envelope", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))

		_, ok := Decode[*echoRequest](w, r, s.logger)
		s.False(ok)
		s.Equal(http.StatusBadRequest, w.Code)
		envelope := s.decodeEnvelope(w)
		s.Require().Len(envelope.InvalidParams, 1)
		s.Equal("name", envelope.InvalidParams[0].Field)
	})
}
