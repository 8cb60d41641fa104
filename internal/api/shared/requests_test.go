package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	tests := []struct {
		name        string
		requestBody string
		wantErr     bool
		errContains string
	}{
		{name: "valid json", requestBody: `{"name": "test", "age": 30}`},
		{name: "unknown fields are ignored", requestBody: `{"name": "test", "extra": true}`},
		{
			name:        "invalid json",
			requestBody: `{"name": "test", "age": 30,}`,
			wantErr:     true,
			errContains: "invalid character",
		},
		{name: "empty body", requestBody: "", wantErr: true, errContains: "EOF"},
		{
			name:        "type mismatch",
			requestBody: `{"age": "thirty"}`,
			wantErr:     true,
			errContains: "cannot unmarshal",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tc.requestBody))
			var target payload
			err := DecodeJSON(req, &target)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
				return
			}
			assert.NoError(t, err)
		})
	}
}

type titledRequest struct {
	Title   string  `validate:"notblank"`
	Body    string  `validate:"notblank"`
	Summary *string `validate:"omitempty,max=5"`
}

func (titledRequest) ValidationMessages() map[string]string {
	return map[string]string{"Title": "Title missing"}
}

func TestValidateRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(&titledRequest{Title: "a", Body: "b"}))
	})

	t.Run("blank fields report every message in order", func(t *testing.T) {
		err := ValidateRequest(&titledRequest{Title: "  ", Body: ""})

		var validation *domain.ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Equal(t, []string{"Title missing", "Body is required"}, validation.Messages)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("fallback messages", func(t *testing.T) {
		long := "too long"
		err := ValidateRequest(&titledRequest{Title: "a", Body: "b", Summary: &long})

		var validation *domain.ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Equal(t, []string{"Summary is too long"}, validation.Messages)
	})
}
