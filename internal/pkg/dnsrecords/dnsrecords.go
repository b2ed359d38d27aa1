// Package dnsrecords converts between flat "dns.*" domain records and typed
// DNS resource records.
//
// A record set of type T is stored as a JSON string array under "dns.T". Its
// TTL is read from "dns.T.ttl", then from "dns.ttl", then DefaultTTL.
package dnsrecords

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"uns-resolution/internal/domain"
	"uns-resolution/internal/domain/entity"

	"github.com/miekg/dns"
)

// DefaultTTL applies when neither a per-type nor a global TTL is set.
const DefaultTTL = 300

const (
	keyPrefix = "dns."
	ttlSuffix = ".ttl"
	globalTTL = "dns.ttl"
)

var (
	// ErrDNSRecordCorrupted means a "dns.T" value is not a JSON array of strings.
	ErrDNSRecordCorrupted = errors.New("dns record is corrupted")

	// ErrInconsistentTTL means records of one type carry different TTLs.
	ErrInconsistentTTL = errors.New("inconsistent ttl within record type")
)

// IsKnownType reports whether t is a registered DNS resource record type.
func IsKnownType(t string) bool {
	rrType, ok := dns.StringToType[t]
	return ok && rrType != dns.TypeNone
}

// Keys returns the record keys needed to read the given types. Type names
// are upper-cased; an unknown type fails with domain.ErrRecordNotSupported.
func Keys(types []string) ([]string, error) {
	keys := make([]string, 0, len(types)*2+1)
	for _, t := range types {
		t = strings.ToUpper(strings.TrimSpace(t))
		if !IsKnownType(t) {
			return nil, fmt.Errorf("%w: dns type %q", domain.ErrRecordNotSupported, t)
		}
		keys = append(keys, keyPrefix+t, keyPrefix+t+ttlSuffix)
	}
	return append(keys, globalTTL), nil
}

// ToList expands flat records into DNS records, ordered by type. Empty
// values are treated as unset.
func ToList(records map[string]string) ([]entity.DNSRecord, error) {
	var out []entity.DNSRecord
	for _, t := range recordTypes(records) {
		raw := records[keyPrefix+t]
		if raw == "" {
			continue
		}

		var data []string
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDNSRecordCorrupted, t, err)
		}

		ttl := parseTTL(records, t)
		for _, d := range data {
			out = append(out, entity.DNSRecord{TTL: ttl, Type: t, Data: d})
		}
	}
	return out, nil
}

// ToMap folds DNS records back into flat records.
func ToMap(records []entity.DNSRecord) (map[string]string, error) {
	out := make(map[string]string)
	data := make(map[string][]string)
	var order []string

	for _, r := range records {
		ttlKey := keyPrefix + r.Type + ttlSuffix
		if existing, ok := out[ttlKey]; ok {
			if ttl, err := strconv.Atoi(existing); err == nil && ttl != r.TTL {
				return nil, fmt.Errorf("%w: %s has ttl %d and %d", ErrInconsistentTTL, r.Type, ttl, r.TTL)
			}
		} else {
			out[ttlKey] = strconv.Itoa(r.TTL)
			order = append(order, r.Type)
		}
		data[r.Type] = append(data[r.Type], r.Data)
	}

	for _, t := range order {
		encoded, err := json.Marshal(data[t])
		if err != nil {
			return nil, fmt.Errorf("encode %s records: %w", t, err)
		}
		out[keyPrefix+t] = string(encoded)
	}
	return out, nil
}

// recordTypes collects the known types present in records, sorted.
func recordTypes(records map[string]string) []string {
	seen := make(map[string]struct{})
	for key := range records {
		chunks := strings.Split(key, ".")
		if len(chunks) < 2 || chunks[0] != "dns" || chunks[1] == "ttl" {
			continue
		}
		if IsKnownType(chunks[1]) {
			seen[chunks[1]] = struct{}{}
		}
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func parseTTL(records map[string]string, t string) int {
	if ttl, err := strconv.Atoi(records[keyPrefix+t+ttlSuffix]); err == nil {
		return ttl
	}
	if ttl, err := strconv.Atoi(records[globalTTL]); err == nil {
		return ttl
	}
	return DefaultTTL
}
