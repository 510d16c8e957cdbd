package model

import (
	"encoding/json"
	"sort"
)

// KeyCount is one ranked row of a distribution.
type KeyCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Distribution is a frequency counter over string keys. It remembers the
// order keys were first seen so that ranked output is deterministic: ties
// on count break toward the key observed earlier in the input.
type Distribution struct {
	counts    map[string]int64
	firstSeen map[string]int
	nextSeq   int
}

// NewDistribution creates an empty distribution.
func NewDistribution() *Distribution {
	return &Distribution{
		counts:    make(map[string]int64),
		firstSeen: make(map[string]int),
	}
}

// Inc increments the counter for key, registering it on first sight.
// Empty keys are ignored so absent fields never create a bucket.
func (d *Distribution) Inc(key string) {
	if key == "" {
		return
	}
	if _, ok := d.counts[key]; !ok {
		d.firstSeen[key] = d.nextSeq
		d.nextSeq++
	}
	d.counts[key]++
}

// Count returns the count for key, zero when absent.
func (d *Distribution) Count(key string) int64 {
	return d.counts[key]
}

// Len returns the number of distinct keys.
func (d *Distribution) Len() int {
	return len(d.counts)
}

// Total returns the sum of all counts.
func (d *Distribution) Total() int64 {
	var sum int64
	for _, c := range d.counts {
		sum += c
	}
	return sum
}

// Keys returns all distinct keys in first-seen order.
func (d *Distribution) Keys() []string {
	keys := make([]string, 0, len(d.counts))
	for k := range d.counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return d.firstSeen[keys[i]] < d.firstSeen[keys[j]]
	})
	return keys
}

// Ranked returns all rows sorted by count descending, first-seen ascending.
func (d *Distribution) Ranked() []KeyCount {
	rows := make([]KeyCount, 0, len(d.counts))
	for k, c := range d.counts {
		rows = append(rows, KeyCount{Key: k, Count: c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return d.firstSeen[rows[i].Key] < d.firstSeen[rows[j].Key]
	})
	return rows
}

// Top returns at most n ranked rows.
func (d *Distribution) Top(n int) []KeyCount {
	rows := d.Ranked()
	if n >= 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// MarshalJSON encodes the distribution as its ranked row list, keeping
// JSON output deterministic where a plain map would not be.
func (d *Distribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Ranked())
}
