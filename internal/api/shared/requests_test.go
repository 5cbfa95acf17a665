package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title   string `json:"title"   validate:"required"`
	Minutes int    `json:"minutes" validate:"min=1,max=180"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"title":"Focus","minutes":25}`, false},
		{"malformed", `{"title":`, true},
		{"unknown field", `{"title":"Focus","seconds":3}`, true},
		{"wrong type", `{"minutes":"ten"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var req sampleRequest
			err := DecodeJSON(httptest.NewRecorder(), r, &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, sampleRequest{Title: "Focus", Minutes: 25}, req)
		})
	}
}

func TestDecodeOptionalJSON(t *testing.T) {
	var req sampleRequest
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.NoError(t, DecodeOptionalJSON(httptest.NewRecorder(), r, &req))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"A"}`))
	require.NoError(t, DecodeOptionalJSON(httptest.NewRecorder(), r, &req))
	assert.Equal(t, "A", req.Title)
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Title: "Focus", Minutes: 10}))
	assert.Error(t, ValidateRequest(sampleRequest{Minutes: 10}))
	assert.Error(t, ValidateRequest(sampleRequest{Title: "Focus", Minutes: 181}))
}
