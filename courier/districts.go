package courier

import "strings"

// districtIDs maps administrative district names (as stored on addresses) to
// the provider's district ids. Extend as new delivery areas open up.
var districtIDs = map[string]int{
	"gambir":          1355,
	"menteng":         1363,
	"tanah abang":     1372,
	"kebayoran baru":  1380,
	"setiabudi":       1386,
	"tebet":           1388,
	"cilandak":        1391,
	"pancoran":        1396,
	"kelapa gading":   1402,
	"tanjung priok":   1409,
	"cakung":          1415,
	"duren sawit":     1419,
	"jatinegara":      1423,
	"cengkareng":      1430,
	"grogol petamburan": 1433,
	"kebon jeruk":     1437,
	"bandung wetan":   2392,
	"coblong":         2397,
	"sukajadi":        2410,
	"gubeng":          5823,
	"wonokromo":       5845,
	"tegalsari":       5840,
	"mlati":           5532,
	"depok sleman":    5518,
	"gondokusuman":    5573,
}

// DistrictID resolves an address district to the provider's district id.
func DistrictID(district string) (int, bool) {
	id, ok := districtIDs[strings.ToLower(strings.TrimSpace(district))]
	return id, ok
}
