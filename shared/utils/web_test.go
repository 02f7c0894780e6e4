package utils

import (
	"bytes"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/itchan-dev/msgboard/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	Field1 string `json:"field1" validate:"required"`
	Field2 string `json:"field2"`
}

func TestDecodeValidate(t *testing.T) {
	tests := []struct {
		name        string
		requestBody string
		expectedErr *errors.ErrorWithStatusCode
	}{
		{
			name:        "Valid JSON and Validation",
			requestBody: `{"field1": "value", "field2": "other"}`,
		},
		{
			name:        "Optional field omitted",
			requestBody: `{"field1": "value"}`,
		},
		{
			name:        "Invalid JSON",
			requestBody: `{"field1": "value", "field2": "x"`, // Missing closing brace
			expectedErr: &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: 400},
		},
		{
			name:        "Missing Required Field",
			requestBody: `{"field2": "x"}`,
			expectedErr: &errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: 400},
		},
		{
			name:        "Empty Body",
			requestBody: "",
			expectedErr: &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: 400},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", bytes.NewReader([]byte(tt.requestBody)))

			var target testStruct
			err := DecodeValidate(req.Body, &target)

			if tt.expectedErr == nil {
				assert.NoError(t, err)
				assert.Equal(t, "value", target.Field1)
			} else {
				e, ok := err.(*errors.ErrorWithStatusCode)
				require.True(t, ok, "Error should be ErrorWithStatusCode")
				assert.Equal(t, tt.expectedErr.Message, e.Message)
				assert.Equal(t, tt.expectedErr.StatusCode, e.StatusCode)
			}
		})
	}
}

func TestDecodeRequest(t *testing.T) {
	t.Run("form body", func(t *testing.T) {
		form := url.Values{"field1": {"from form"}, "field2": {"two"}}
		req := httptest.NewRequest("POST", "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var target testStruct
		require.NoError(t, DecodeRequest(req, &target))
		assert.Equal(t, "from form", target.Field1)
		assert.Equal(t, "two", target.Field2)
	})

	t.Run("form body missing required field", func(t *testing.T) {
		form := url.Values{"field2": {"two"}}
		req := httptest.NewRequest("POST", "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var target testStruct
		err := DecodeRequest(req, &target)
		var e *errors.ErrorWithStatusCode
		require.True(t, stderrors.As(err, &e))
		assert.Equal(t, http.StatusBadRequest, e.StatusCode)
	})

	t.Run("form body on DELETE", func(t *testing.T) {
		form := url.Values{"field1": {"deleted by form"}}
		req := httptest.NewRequest("DELETE", "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var target testStruct
		require.NoError(t, DecodeRequest(req, &target))
		assert.Equal(t, "deleted by form", target.Field1)
	})

	t.Run("form body too large", func(t *testing.T) {
		body := "field1=" + strings.Repeat("a", maxFormBytes)
		req := httptest.NewRequest("PUT", "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var target testStruct
		err := DecodeRequest(req, &target)
		var e *errors.ErrorWithStatusCode
		require.True(t, stderrors.As(err, &e))
		assert.Equal(t, "Body is invalid form", e.Message)
	})

	t.Run("json body with charset", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"field1":"json"}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")

		var target testStruct
		require.NoError(t, DecodeRequest(req, &target))
		assert.Equal(t, "json", target.Field1)
	})

	t.Run("no content type falls back to json", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/", strings.NewReader(`{"field1":"json"}`))

		var target testStruct
		require.NoError(t, DecodeRequest(req, &target))
		assert.Equal(t, "json", target.Field1)
	})
}

func TestWriteErrorAndStatusCode(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/threads/b", nil)

	t.Run("status error is written as is", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteErrorAndStatusCode(rr, req, &errors.ErrorWithStatusCode{Message: "nope", StatusCode: http.StatusTeapot})
		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.Equal(t, "nope\n", rr.Body.String())
	})

	t.Run("other errors are hidden", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteErrorAndStatusCode(rr, req, stderrors.New("dial tcp 10.0.0.1:5432: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Server error\n", rr.Body.String())
	})
}

func TestWriteText(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteText(rr, "success")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "success", rr.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
}
