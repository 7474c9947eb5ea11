package codes

import (
	"strings"

	"github.com/google/uuid"
)

// Generate produces n unique random discount codes with the given prefix.
// Codes are upper case, 12 random characters after the prefix.
func Generate(prefix string, n int) []string {
	out := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for len(out) < n {
		raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
		code := prefix + raw[:12]
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
