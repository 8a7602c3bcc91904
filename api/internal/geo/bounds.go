package geo

// StateBounds is a rectangular lat/lon box for one coastal state or UT.
type StateBounds struct {
	Name   string
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

// CoastalStateBounds is the fallback table used when reverse geocoding is
// unavailable. Boxes are approximate and assumed non-overlapping; scan order
// is fixed and the first containing box wins.
var CoastalStateBounds = []StateBounds{
	{"Gujarat", 20.0, 24.0, 68.0, 72.0},
	{"Maharashtra", 15.5, 20.0, 72.0, 74.0},
	{"Goa", 14.0, 15.5, 73.5, 74.5},
	{"Karnataka", 11.5, 14.0, 74.0, 76.0},
	{"Kerala", 8.0, 11.5, 75.0, 77.0},
	{"Tamil Nadu", 8.0, 13.0, 77.0, 80.0},
	{"Andhra Pradesh", 13.0, 19.0, 80.0, 85.0},
	{"Odisha", 19.0, 21.5, 85.0, 87.0},
	{"West Bengal", 21.5, 23.5, 87.0, 89.0},
	{"Andaman & Nicobar Islands", 6.0, 14.0, 92.0, 94.0},
	{"Lakshadweep", 8.0, 12.0, 71.5, 73.5},
	{"Puducherry", 11.5, 12.0, 79.5, 80.0},
	{"Daman & Diu", 20.5, 21.0, 70.0, 71.0},
}

func (b StateBounds) contains(lat, lon float64) bool {
	return b.LatMin <= lat && lat <= b.LatMax && b.LonMin <= lon && lon <= b.LonMax
}

// stateFromBounds scans the table in declared order.
func stateFromBounds(lat, lon float64) (string, bool) {
	for _, b := range CoastalStateBounds {
		if b.contains(lat, lon) {
			return b.Name, true
		}
	}
	return "", false
}
