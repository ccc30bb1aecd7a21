package rule

// idGroups holds the length of each dash-separated group of a rule id.
var idGroups = [...]int{8, 4, 4, 4, 12}

// IsValidID reports whether id has the structural rule identifier format:
// five dash-separated groups of 8-4-4-4-12 lowercase letters or digits.
func IsValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	pos := 0
	for g, n := range idGroups {
		if g > 0 {
			if id[pos] != '-' {
				return false
			}
			pos++
		}
		for i := 0; i < n; i++ {
			c := id[pos]
			if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z') {
				return false
			}
			pos++
		}
	}
	return true
}
