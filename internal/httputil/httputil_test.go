package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lorekeeper/internal/config"
)

func TestRespondErrorWithExtras(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithExtras(rec, http.StatusConflict, "tag 'Strahd' already exists", map[string]any{
		"resource_id": "t1",
		"status":      999,
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Conflict", body["title"])
	assert.Equal(t, "t1", body["resource_id"])
	assert.EqualValues(t, http.StatusConflict, body["status"], "extras must not override standard members")
}

func TestRespondJSONUnencodable(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, map[string]any{"ch": make(chan int)})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestParseJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
		empty   bool
	}{
		{name: "valid", body: `{"name":"Barovia"}`},
		{name: "empty", body: ``, wantErr: true, empty: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
		{name: "trailing data", body: `{"name":"a"}{"name":"b"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dest payload
			err := ParseJSON(httptest.NewRecorder(), req, &dest)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "Barovia", dest.Name)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.empty, err == ErrEmptyBody)
		})
	}
}

func TestParseJSONBodyTooLarge(t *testing.T) {
	big := `{"name":"` + strings.Repeat("a", config.MaxRequestBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	var dest map[string]string
	err := ParseJSON(httptest.NewRecorder(), req, &dest)
	require.Error(t, err)
	assert.True(t, IsBodyTooLarge(err))
}

func TestUserContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetUserID(req))

	req = WithUserName(WithUserID(req, "u1"), "Ismark")
	assert.Equal(t, "u1", GetUserID(req))
	assert.Equal(t, "Ismark", GetUserName(req))
}
