package domain

import "strings"

// jurisdictions lists the Indian states and union territories used for
// free-text state matching, in fixed scan order.
var jurisdictions = []string{
	"Andhra Pradesh",
	"Arunachal Pradesh",
	"Assam",
	"Bihar",
	"Chhattisgarh",
	"Delhi",
	"Goa",
	"Gujarat",
	"Haryana",
	"Himachal Pradesh",
	"Jammu and Kashmir",
	"Jharkhand",
	"Karnataka",
	"Kerala",
	"Madhya Pradesh",
	"Maharashtra",
	"Manipur",
	"Meghalaya",
	"Mizoram",
	"Nagaland",
	"Odisha",
	"Punjab",
	"Rajasthan",
	"Sikkim",
	"Tamil Nadu",
	"Telangana",
	"Tripura",
	"Uttarakhand",
	"Uttar Pradesh",
	"West Bengal",
	"Puducherry",
	"Chandigarh",
	"Ladakh",
	"Andaman and Nicobar Islands",
	"Dadra and Nagar Haveli and Daman and Diu",
	"Lakshadweep",
}

// resolveState picks the client's explicit state when present, otherwise
// scans the free-text address for the first jurisdiction name it contains.
// Returns nil when neither yields a state. Best effort only; an address
// mentioning another state's name will match it.
func resolveState(state, address string) *string {
	if s := strings.TrimSpace(state); s != "" {
		return &s
	}
	addr := strings.ToLower(address)
	if addr == "" {
		return nil
	}
	for _, j := range jurisdictions {
		if strings.Contains(addr, strings.ToLower(j)) {
			name := j
			return &name
		}
	}
	return nil
}

// sameState compares two state names ignoring case and whitespace. A nil
// client state counts as a different state, so unknown destinations fall
// under IGST.
func sameState(homeState string, clientState *string) bool {
	if clientState == nil {
		return false
	}
	return normalizeState(homeState) == normalizeState(*clientState) && normalizeState(homeState) != ""
}

func normalizeState(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}
