package road

import (
	"cmp"
	"slices"
)

type Size string

const (
	Small  Size = "small"
	Medium Size = "medium"
	Large  Size = "large"
)

func (s Size) Valid() bool {
	return s == Small || s == Medium || s == Large
}

// Ranked pairs a road identifier with its length.
type Ranked struct {
	ID     string
	Length float64
}

// ClassifySizes ranks roads by length and splits them into tertiles. The small
// and medium buckets each take n/3 roads (integer division) and the remainder
// goes to large, so fewer than three roads are all large. Equal lengths keep
// their input order.
func ClassifySizes(roads []Ranked) map[string]Size {
	sorted := slices.Clone(roads)
	slices.SortStableFunc(sorted, func(a, b Ranked) int {
		return cmp.Compare(a.Length, b.Length)
	})

	third := len(sorted) / 3
	sizes := make(map[string]Size, len(sorted))
	for i, r := range sorted {
		switch {
		case i < third:
			sizes[r.ID] = Small
		case i < 2*third:
			sizes[r.ID] = Medium
		default:
			sizes[r.ID] = Large
		}
	}
	return sizes
}

// ApplySizes returns copies of records with their size set by ClassifySizes.
func ApplySizes(records []Record) []Record {
	ranked := make([]Ranked, len(records))
	for i, r := range records {
		ranked[i] = Ranked{ID: r.Name, Length: r.Length}
	}
	sizes := ClassifySizes(ranked)

	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.WithSize(sizes[r.Name])
	}
	return out
}
