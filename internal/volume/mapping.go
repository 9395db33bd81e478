package volume

import (
	"regexp"
	"strings"
)

var invalidMappingChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// MappingName derives a device mapper name from a volume UUID:
// - dots and dashes become underscores
// - remaining special characters are dropped
// - a fixed "klet_" prefix namespaces the mapping and keeps the name
//   from starting with a digit
func MappingName(uuid string) string {
	name := strings.ReplaceAll(uuid, ".", "_")
	name = strings.ReplaceAll(name, "-", "_")
	name = invalidMappingChars.ReplaceAllString(name, "")
	return "klet_" + name
}
