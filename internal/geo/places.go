package geo

import "strings"

// Place a known town with coordinates
type Place struct {
	Name   string  `json:"name"`
	Parish string  `json:"parish"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

// knownPlaces Jamaican towns used to geocode free-text addresses.
var knownPlaces = []Place{
	{Name: "Kingston", Parish: "Kingston", Lat: 17.9714, Lng: -76.7920},
	{Name: "Montego Bay", Parish: "St. James", Lat: 18.4762, Lng: -77.8939},
	{Name: "Spanish Town", Parish: "St. Catherine", Lat: 17.9911, Lng: -76.9574},
	{Name: "Portmore", Parish: "St. Catherine", Lat: 17.9546, Lng: -76.8827},
	{Name: "Ocho Rios", Parish: "St. Ann", Lat: 18.4052, Lng: -77.1035},
	{Name: "Mandeville", Parish: "Manchester", Lat: 18.0420, Lng: -77.5074},
	{Name: "May Pen", Parish: "Clarendon", Lat: 17.9645, Lng: -77.2454},
	{Name: "Negril", Parish: "Westmoreland", Lat: 18.2680, Lng: -78.3478},
	{Name: "Port Antonio", Parish: "Portland", Lat: 18.1774, Lng: -76.4506},
	{Name: "Savanna-la-Mar", Parish: "Westmoreland", Lat: 18.2196, Lng: -78.1329},
	{Name: "Falmouth", Parish: "Trelawny", Lat: 18.4936, Lng: -77.6559},
	{Name: "Half Way Tree", Parish: "St. Andrew", Lat: 18.0106, Lng: -76.7986},
	{Name: "Old Harbour", Parish: "St. Catherine", Lat: 17.9416, Lng: -77.1089},
	{Name: "Linstead", Parish: "St. Catherine", Lat: 18.1368, Lng: -77.0317},
	{Name: "Morant Bay", Parish: "St. Thomas", Lat: 17.8814, Lng: -76.4092},
	{Name: "Lucea", Parish: "Hanover", Lat: 18.4509, Lng: -78.1736},
	{Name: "Black River", Parish: "St. Elizabeth", Lat: 18.0256, Lng: -77.8487},
	{Name: "Port Maria", Parish: "St. Mary", Lat: 18.3690, Lng: -76.8910},
	{Name: "Brown's Town", Parish: "St. Ann", Lat: 18.3903, Lng: -77.3589},
	{Name: "Christiana", Parish: "Manchester", Lat: 18.1779, Lng: -77.4906},
}

// Places returns the known place catalogue.
func Places() []Place {
	out := make([]Place, len(knownPlaces))
	copy(out, knownPlaces)
	return out
}

// LookupPlace resolves a free-text address to a known town by substring
// match, case-insensitive. Returns false when no town matches.
func LookupPlace(address string) (Place, bool) {
	needle := strings.ToLower(strings.TrimSpace(address))
	if needle == "" {
		return Place{}, false
	}
	for _, p := range knownPlaces {
		if strings.Contains(needle, strings.ToLower(p.Name)) {
			return p, true
		}
	}
	return Place{}, false
}
