package dnsrecords

import (
	"testing"

	"uns-resolution/internal/domain"
	"uns-resolution/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	keys, err := Keys([]string{"a", "CNAME"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dns.A", "dns.A.ttl", "dns.CNAME", "dns.CNAME.ttl", "dns.ttl"}, keys)

	_, err = Keys([]string{"A", "BOGUS"})
	assert.ErrorIs(t, err, domain.ErrRecordNotSupported)
}

func TestIsKnownType(t *testing.T) {
	assert.True(t, IsKnownType("AAAA"))
	assert.True(t, IsKnownType("TXT"))
	assert.False(t, IsKnownType("aaaa"))
	assert.False(t, IsKnownType("ttl"))
	assert.False(t, IsKnownType("None"))
}

func TestToList(t *testing.T) {
	tests := []struct {
		name    string
		records map[string]string
		want    []entity.DNSRecord
	}{
		{
			name: "per type ttl",
			records: map[string]string{
				"dns.A":     `["10.0.0.1","10.0.0.2"]`,
				"dns.A.ttl": "98",
				"dns.ttl":   "128",
			},
			want: []entity.DNSRecord{
				{TTL: 98, Type: "A", Data: "10.0.0.1"},
				{TTL: 98, Type: "A", Data: "10.0.0.2"},
			},
		},
		{
			name: "global ttl",
			records: map[string]string{
				"dns.AAAA": `["::1"]`,
				"dns.ttl":  "128",
			},
			want: []entity.DNSRecord{{TTL: 128, Type: "AAAA", Data: "::1"}},
		},
		{
			name: "default ttl and type order",
			records: map[string]string{
				"dns.CNAME":   `["example.com."]`,
				"dns.A":       `["10.0.0.1"]`,
				"dns.A.ttl":   "",
				"dns.MX":      "",
				"crypto.BTC":  "bc1",
				"dns.UNKNOWN": `["x"]`,
			},
			want: []entity.DNSRecord{
				{TTL: DefaultTTL, Type: "A", Data: "10.0.0.1"},
				{TTL: DefaultTTL, Type: "CNAME", Data: "example.com."},
			},
		},
		{
			name:    "empty",
			records: map[string]string{},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToList(tt.records)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToList_Corrupted(t *testing.T) {
	_, err := ToList(map[string]string{"dns.A": "10.0.0.1"})
	assert.ErrorIs(t, err, ErrDNSRecordCorrupted)

	_, err = ToList(map[string]string{"dns.A": `[1,2]`})
	assert.ErrorIs(t, err, ErrDNSRecordCorrupted)
}

func TestToMap(t *testing.T) {
	got, err := ToMap([]entity.DNSRecord{
		{TTL: 98, Type: "A", Data: "10.0.0.1"},
		{TTL: 98, Type: "A", Data: "10.0.0.2"},
		{TTL: 60, Type: "CNAME", Data: "example.com."},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"dns.A":         `["10.0.0.1","10.0.0.2"]`,
		"dns.A.ttl":     "98",
		"dns.CNAME":     `["example.com."]`,
		"dns.CNAME.ttl": "60",
	}, got)
}

func TestToMap_InconsistentTTL(t *testing.T) {
	_, err := ToMap([]entity.DNSRecord{
		{TTL: 98, Type: "A", Data: "10.0.0.1"},
		{TTL: 99, Type: "A", Data: "10.0.0.2"},
	})
	assert.ErrorIs(t, err, ErrInconsistentTTL)
}

func TestRoundTrip(t *testing.T) {
	records := []entity.DNSRecord{
		{TTL: 300, Type: "A", Data: "10.0.0.1"},
		{TTL: 300, Type: "A", Data: "10.0.0.2"},
		{TTL: 1800, Type: "TXT", Data: "v=spf1 -all"},
	}
	flat, err := ToMap(records)
	require.NoError(t, err)

	back, err := ToList(flat)
	require.NoError(t, err)
	assert.Equal(t, records, back)
}
