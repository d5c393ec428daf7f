package peopledata

import (
	"regexp"
	"strings"
)

// The people search API matches locations against full state names with a
// country qualifier. Raw campaign criteria often arrive as "Richmond, VA",
// so abbreviations are expanded and a ", US" suffix is added when the value
// carries no country at all.

var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming",
}

var usaWord = regexp.MustCompile(`\bUSA\b`)

// normalizeLocation rewrites a free-form location into the form the search
// API expects: trailing state abbreviations become "City, StateName, US" and
// values without any country qualifier get ", US" appended.
func normalizeLocation(loc string) string {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return loc
	}

	parts := strings.Split(loc, ",")
	last := strings.ToUpper(strings.TrimSpace(parts[len(parts)-1]))
	if full, ok := stateNames[last]; ok {
		prefix := strings.TrimSpace(strings.Join(parts[:len(parts)-1], ","))
		if prefix == "" {
			return full + ", US"
		}
		return prefix + ", " + full + ", US"
	}

	if !strings.Contains(loc, "US") && !strings.Contains(loc, "United States") {
		return loc + ", US"
	}
	return usaWord.ReplaceAllString(loc, "US")
}

func normalizeLocations(locs []string) []string {
	if len(locs) == 0 {
		return nil
	}
	out := make([]string, 0, len(locs))
	for _, loc := range locs {
		if normalized := normalizeLocation(loc); normalized != "" {
			out = append(out, normalized)
		}
	}
	return out
}
