package road

// Group holds every segment that shares one normalized name.
type Group struct {
	Name     string
	Segments []Segment
}

// GroupSegments buckets segments by normalized name. Groups come out in the
// order their name first appears, segments keep their input order. Segments
// without a usable name are skipped and counted in dropped.
func GroupSegments(segments []Segment) (groups []Group, dropped int) {
	index := make(map[string]int)
	for _, seg := range segments {
		name, ok := NormalizeName(seg.Name)
		if !ok {
			dropped++
			continue
		}
		i, seen := index[name]
		if !seen {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Name: name})
		}
		groups[i].Segments = append(groups[i].Segments, seg)
	}
	return groups, dropped
}
