package road

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// roadTypes lists the suffix words a road name may end with. Abbreviations are
// kept as written in OSM names; matching picks the longest entry, so order is
// irrelevant.
var roadTypes = []string{
	"Avenue", "Boulevard", "Street", "Road", "Way", "Drive", "Lane", "Court",
	"Place", "Circle", "Parkway", "Expressway", "Bay", "Cove", "Row", "Spur",
	"Highway", "Trail", "Path", "Terrace", "Plaza", "Alley", "Walk", "Run",
	"Ridge", "Crossing", "Bend",
	"St", "Rd", "Ave", "Dr", "Ln", "Blvd", "Pkwy", "Hwy", "Cir", "Ct", "Pl",
}

// ExtractRoadType returns the type word a road name ends with, in the casing
// used by the name. A word only matches when it is the whole name or is
// preceded by whitespace, so "Broadway Parkway" yields "Parkway", never "Way".
func ExtractRoadType(name string) (string, bool) {
	name = strings.TrimSpace(name)
	best := ""
	for _, t := range roadTypes {
		if len(t) <= len(best) || len(t) > len(name) {
			continue
		}
		start := len(name) - len(t)
		if !strings.EqualFold(name[start:], t) {
			continue
		}
		prev, _ := utf8.DecodeLastRuneInString(name[:start])
		if start == 0 || unicode.IsSpace(prev) {
			best = name[start:]
		}
	}
	return best, best != ""
}
