package report

import "sync"

var (
	catalogOnce sync.Once
	catalog     []*Report
	byID        map[string]*Report
)

func load() {
	catalogOnce.Do(func() {
		for _, group := range [][]*Report{
			homeReports(),
			teamReports(),
			playerReports(),
			managerReports(),
			stadiumReports(),
			refereeReports(),
		} {
			catalog = append(catalog, group...)
		}
		byID = make(map[string]*Report, len(catalog))
		for _, r := range catalog {
			byID[r.ID] = r
		}
	})
}

// All returns every report in menu order.
func All() []*Report {
	load()
	return append([]*Report(nil), catalog...)
}

// Lookup finds a report by ID.
func Lookup(id string) (*Report, bool) {
	load()
	r, ok := byID[id]
	return r, ok
}

// In returns the reports of section in menu order.
func In(section Section) []*Report {
	load()
	var out []*Report
	for _, r := range catalog {
		if r.Section == section {
			out = append(out, r)
		}
	}
	return out
}

// percent formats percentage columns with two decimals.
func percent(cols ...string) map[string]string {
	m := make(map[string]string, len(cols))
	for _, c := range cols {
		m[c] = "%.2f"
	}
	return m
}
