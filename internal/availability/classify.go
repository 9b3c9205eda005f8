package availability

import (
	"fmt"
	"sort"
	"strings"
)

// StatusMissing is the sentinel for a requested night absent from the merged
// record, typically because its month was never part of the upstream payload.
const StatusMissing = "Missing"

// nightAvailable reports whether an upstream status counts as bookable.
// recreation.gov appends qualifiers ("Available - Tent", "Open - Walk Up"),
// hence the prefix match. The match is case-sensitive.
func nightAvailable(status string) bool {
	return strings.HasPrefix(status, "Available") || strings.HasPrefix(status, "Open")
}

// classifySites buckets every merged site against the requested nights.
// A site with all nights available is fully available, with some but not all
// partially available, and with none it is dropped from both lists. Sites are
// visited in ascending site-id order so the lists come out deterministic.
// The returned names map indexes site id to display name for every site seen.
func classifySites(merged map[string]*SiteRecord, nights []Night) (fully, partially []string, names map[string]string) {
	fully = []string{}
	partially = []string{}
	names = make(map[string]string, len(merged))

	ids := make([]string, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		rec := merged[id]
		name := rec.Name
		if name == "" {
			name = "Site " + id
		}
		names[id] = name

		available := 0
		for _, night := range nights {
			status, ok := rec.Nights[night]
			if !ok {
				status = StatusMissing
			}
			if nightAvailable(status) {
				available++
			}
		}

		if available == 0 {
			continue
		}
		label := fmt.Sprintf("%s (%d nights)", name, available)
		if available == len(nights) {
			fully = append(fully, label)
		} else {
			partially = append(partially, label)
		}
	}
	return fully, partially, names
}
