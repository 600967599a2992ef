package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medscanhq/medscan/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"  A@X.COM ", "a@x.com"},
		{"doc..tor@hospital.org", "doc.tor@hospital.org"},
		{".lead@x.com", "lead@x.com"},
		{"not-an-email", "not-an-email"},
		{"two@@x.com", "two@@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.NormalizeEmail(tt.in))
		})
	}
}

func TestTrimString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "St. Jude", sanitizer.TrimString("  St. Jude \n"))
}
