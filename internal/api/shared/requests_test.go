package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Name string `json:"name" validate:"required"`
	Task string `json:"task" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"n","task":"t"}`},
		{name: "unknown fields ignored", body: `{"name":"n","task":"t","extra":1}`},
		{name: "malformed", body: `{"name":`, wantErr: true},
		{name: "wrong type", body: `{"name":5}`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/create", strings.NewReader(tc.body))
			var p testPayload
			err := DecodeJSON(req, &p)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "n", p.Name)
		})
	}
}

func TestDecodeAndValidate(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/create", strings.NewReader(`{"name":"n"}`))
	var p testPayload
	assert.Error(t, DecodeAndValidate(req, &p))

	req = httptest.NewRequest(http.MethodPost, "/create", strings.NewReader(`{"name":"n","task":"t"}`))
	assert.NoError(t, DecodeAndValidate(req, &p))
}

type selfValidating struct{ ok bool }

func (s selfValidating) Validate() error {
	if !s.ok {
		return assert.AnError
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(&testPayload{Name: "n", Task: "t"}))
	assert.Error(t, ValidateRequest(&testPayload{Name: "n"}))
	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.ErrorIs(t, ValidateRequest(selfValidating{ok: false}), assert.AnError)
}
