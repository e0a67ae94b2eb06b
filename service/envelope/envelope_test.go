package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"message", `{"message":"hello there"}`, "hello there", false},
		{"missing field", `{}`, "", false},
		{"blank body", "  \n", "", false},
		{"trailing garbage", `{"message":"hello there"} xyz`, "", true},
		{"two objects", `{"message":"a"}{"message":"b"}`, "", true},
		{"truncated", `{"message":`, "", true},
		{"wrong type", `{"message":123}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := DecodeRequest([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to parse request body")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, payload.Message)
		})
	}
}
