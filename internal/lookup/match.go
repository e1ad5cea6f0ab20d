package lookup

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/bookkeep/internal/model"
)

// Option is one choice in a select field.
type Option struct {
	Value string
	Label string
}

const (
	rankPrefix = iota
	rankWord
	rankSubstring
	rankFuzzy
)

// Match filters options for type-ahead. Prefix matches come first, then
// word-prefix and substring matches, then labels within a small edit distance.
// An empty query returns every option in its original order.
func Match(query string, options []Option) []Option {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return append([]Option(nil), options...)
	}

	type scored struct {
		opt   Option
		rank  int
		dist  int
		index int
	}
	var hits []scored
	for i, opt := range options {
		label := strings.ToUpper(opt.Label)
		switch {
		case strings.HasPrefix(label, q):
			hits = append(hits, scored{opt, rankPrefix, 0, i})
		case hasWordPrefix(label, q):
			hits = append(hits, scored{opt, rankWord, 0, i})
		case strings.Contains(label, q):
			hits = append(hits, scored{opt, rankSubstring, 0, i})
		default:
			head := label
			if len(head) > len(q) {
				head = head[:len(q)]
			}
			dist := levenshtein.ComputeDistance(head, q)
			if float64(dist)/float64(len(q)) < 0.4 {
				hits = append(hits, scored{opt, rankFuzzy, dist, i})
			}
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].rank != hits[j].rank {
			return hits[i].rank < hits[j].rank
		}
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].index < hits[j].index
	})
	out := make([]Option, len(hits))
	for i, h := range hits {
		out[i] = h.opt
	}
	return out
}

func hasWordPrefix(label, q string) bool {
	for _, w := range strings.Fields(label) {
		if strings.HasPrefix(w, q) {
			return true
		}
	}
	return false
}

// VendorOptions lists cached vendors as select options.
func (c *Cache) VendorOptions() []Option {
	vendors := c.Vendors()
	out := make([]Option, len(vendors))
	for i, v := range vendors {
		out[i] = Option{Value: v.ID, Label: nameOr(v.Name, model.UnknownVendor)}
	}
	return out
}
