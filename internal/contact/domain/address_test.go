package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClientAddress(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{raw: "203.0.113.5:54321", want: "203.0.113.5"},
		{raw: "203.0.113.5", want: "203.0.113.5"},
		{raw: " 198.51.100.7:80 ", want: "198.51.100.7"},
		{raw: "[2001:db8::1]:443", want: "2001:db8::1"},
		{raw: "[2001:db8::1]", want: "2001:db8::1"},
		{raw: "2001:db8::1", want: "2001:db8::1"},
		{raw: "::1", want: "::1"},
		{raw: "::ffff:192.0.2.1", want: "192.0.2.1"},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			addr, err := ParseClientAddress(tc.raw)
			require.NoError(t, err)
			assert.True(t, addr.IsValid())
			assert.Equal(t, tc.want, addr.String())

			again, err := ParseClientAddress(addr.String())
			require.NoError(t, err)
			assert.Equal(t, addr, again)
		})
	}
}

func TestParseClientAddressRejects(t *testing.T) {
	for _, raw := range []string{"", "   ", "not-an-ip", "203.0.113.5:", "203.0.113.5:http", "example.com:8080", "[2001:db8::1]:x", "999.1.1.1"} {
		t.Run(raw, func(t *testing.T) {
			addr, err := ParseClientAddress(raw)
			require.Error(t, err)
			assert.False(t, addr.IsValid())
			assert.Empty(t, addr.String())

			var parseErr *AddressParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, raw, parseErr.Raw)
		})
	}
}
