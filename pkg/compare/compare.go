// Package compare ranks several bed configurations side by side.
//
// Configurations are owned by the caller; [Build] recomputes each layout
// from scratch, so entries never go stale.
package compare

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/bedjig/pkg/bed"
	"github.com/matzehuels/bedjig/pkg/errors"
)

// SortKey selects the column entries are ordered by.
type SortKey string

const (
	ByPrice      SortKey = "price"
	BySturdiness SortKey = "sturdiness"
	ByVolume     SortKey = "volume"
	ByName       SortKey = "name"
)

// SortKeys lists the accepted keys in display order.
var SortKeys = []SortKey{ByPrice, BySturdiness, ByVolume, ByName}

// ParseSortKey accepts a key case-insensitively.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys, k) {
		return k, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown sort key %q (want price, sturdiness, volume or name)", s)
}

// Entry is one configuration with its computed layout.
type Entry struct {
	Name   string     `json:"name"`
	Config bed.Config `json:"config"`
	Layout bed.Layout `json:"layout"`
}

// Metrics is shorthand for e.Layout.Metrics.
func (e Entry) Metrics() bed.Metrics { return e.Layout.Metrics }

// Build computes a layout for every configuration, keeping the input order.
// Unnamed configurations are called "Config N" with N counted from 1.
func Build(configs []bed.Config) []Entry {
	entries := make([]Entry, len(configs))
	for i, cfg := range configs {
		name := strings.TrimSpace(cfg.Name)
		if name == "" {
			name = "Config " + strconv.Itoa(i+1)
		}
		entries[i] = Entry{Name: name, Config: cfg, Layout: bed.Compute(cfg)}
	}
	return entries
}

// Sort orders entries in place. Price and volume ascend, sturdiness
// descends, names sort case-insensitively. Non-finite values go last and
// ties keep their original order.
func Sort(entries []Entry, key SortKey) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		switch key {
		case ByPrice:
			return compareFinite(a.Metrics().TotalPrice, b.Metrics().TotalPrice)
		case ByVolume:
			return compareFinite(a.Metrics().TotalVolumeM3, b.Metrics().TotalVolumeM3)
		case BySturdiness:
			return cmp.Compare(b.Metrics().SturdinessScore, a.Metrics().SturdinessScore)
		case ByName:
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
		return 0
	})
}

// Best returns the cheapest sturdy entry with a finite price.
func Best(entries []Entry) (Entry, bool) {
	var (
		best  Entry
		found bool
	)
	for _, e := range entries {
		m := e.Metrics()
		if !m.IsSturdy || !finite(m.TotalPrice) {
			continue
		}
		if !found || m.TotalPrice < best.Metrics().TotalPrice {
			best, found = e, true
		}
	}
	return best, found
}

func compareFinite(a, b float64) int {
	fa, fb := finite(a), finite(b)
	switch {
	case fa && fb:
		return cmp.Compare(a, b)
	case fa:
		return -1
	case fb:
		return 1
	}
	return 0
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
