// Package testutil provides common test utilities for handler and integration tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/platform/httputil"
)

// NewJSONRequest creates an HTTP request with JSON body.
// The body is marshaled to JSON automatically.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewRequest creates a simple HTTP request without a body.
func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

// NewRequestWithBody creates an HTTP request with a string body.
func NewRequestWithBody(t *testing.T, method, path string, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DoRequest executes a request against a handler and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// ReadBody reads the response body as bytes.
func ReadBody(t *testing.T, rr *httptest.ResponseRecorder) []byte {
	t.Helper()
	return rr.Body.Bytes()
}

// UnmarshalResponse unmarshals the response body into the target struct.
func UnmarshalResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	body := ReadBody(t, rr)
	var result T
	require.NoError(t, json.Unmarshal(body, &result), "failed to unmarshal response")
	return &result
}

// UnmarshalErrorEnvelope unmarshals the response body as an error envelope.
func UnmarshalErrorEnvelope(t *testing.T, rr *httptest.ResponseRecorder) httputil.ErrorEnvelope {
	t.Helper()
	body := ReadBody(t, rr)
	var envelope httputil.ErrorEnvelope
	require.NoError(t, json.Unmarshal(body, &envelope), "failed to unmarshal error envelope")
	return envelope
}

// AssertStatus asserts the response status code matches expected.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status code")
}

// AssertStatusOK asserts the response status is 200 OK.
func AssertStatusOK(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	AssertStatus(t, rr, http.StatusOK)
}

// AssertInvalidParam asserts the error envelope carries the given code on the
// given field. An empty field matches any param with the code.
func AssertInvalidParam(t *testing.T, rr *httptest.ResponseRecorder, field string, code domainerrors.Code) {
	t.Helper()
	envelope := UnmarshalErrorEnvelope(t, rr)
	for _, param := range envelope.InvalidParams {
		if param.Code == code && (field == "" || param.Field == field) {
			return
		}
	}
	assert.Failf(t, "invalid param not found",
		"no param with code %q and field %q in %+v", code, field, envelope.InvalidParams)
}

// AssertStatusAndCode asserts both the HTTP status and the domain error code.
func AssertStatusAndCode(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, code domainerrors.Code) {
	t.Helper()
	AssertStatus(t, rr, expectedStatus)
	AssertInvalidParam(t, rr, "", code)
}

// AssertJSONContains asserts the response JSON contains the expected key-value pair.
func AssertJSONContains(t *testing.T, rr *httptest.ResponseRecorder, key string, expectedValue any) {
	t.Helper()
	body := ReadBody(t, rr)
	var result map[string]any
	require.NoError(t, json.Unmarshal(body, &result), "failed to unmarshal response")
	assert.Equal(t, expectedValue, result[key], "unexpected value for key %q", key)
}
