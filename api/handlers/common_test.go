package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BaSui01/teamflow/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        *types.Error
		wantStatus int
	}{
		{
			name:       "invalid request maps to 400",
			err:        types.NewError(types.ErrInvalidRequest, "bad"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "stream closed maps to 410",
			err:        types.NewError(types.ErrStreamClosed, "gone"),
			wantStatus: http.StatusGone,
		},
		{
			name:       "unknown code maps to 500",
			err:        types.NewError(types.ErrInternalError, "boom"),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "explicit status wins",
			err:        types.NewError(types.ErrInternalError, "teapot").WithHTTPStatus(http.StatusTeapot),
			wantStatus: http.StatusTeapot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, string(tt.err.Code), resp.Error.Code)
		})
	}
}

func TestValidateContentType(t *testing.T) {
	ok := func(ct string) bool {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if ct != "" {
			req.Header.Set("Content-Type", ct)
		}
		return ValidateContentType(httptest.NewRecorder(), req, nil)
	}

	assert.True(t, ok("application/json"))
	assert.True(t, ok("application/json; charset=utf-8"))
	assert.True(t, ok("")) // 缺省视为 JSON
	assert.False(t, ok("text/plain"))
}
