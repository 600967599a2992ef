package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medscanhq/medscan/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name:       "X-Forwarded-For first entry wins",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"},
			remoteAddr: "192.0.2.1:1234",
			expected:   "203.0.113.5",
		},
		{
			name:       "skips invalid forwarded entries",
			headers:    map[string]string{"X-Forwarded-For": "garbage, 203.0.113.7"},
			remoteAddr: "192.0.2.1:1234",
			expected:   "203.0.113.7",
		},
		{
			name:       "X-Real-IP fallback",
			headers:    map[string]string{"X-Real-IP": "198.51.100.4"},
			remoteAddr: "192.0.2.1:1234",
			expected:   "198.51.100.4",
		},
		{
			name:       "remote addr fallback",
			remoteAddr: "192.0.2.9:5555",
			expected:   "192.0.2.9",
		},
		{
			name:       "ipv6 remote addr",
			remoteAddr: "[2001:db8::1]:443",
			expected:   "2001:db8::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, clientip.GetIP(r))
		})
	}
}
