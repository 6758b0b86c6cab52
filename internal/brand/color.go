package brand

import (
	"sort"
	"strconv"
	"strings"
)

// Color roles assigned during normalization.
const (
	RoleDark   = "dark"
	RoleLight  = "light"
	RoleAccent = "accent"
	RoleBrand  = "brand"
)

// ColorEntry is one normalized brand color.
type ColorEntry struct {
	Hex        string `json:"hex"`
	Type       string `json:"type"`
	Brightness int    `json:"brightness"`
}

// Brightness computes perceived brightness (0-255) from a 6-digit hex color
// using the standard perceptual-luminance weighting. A leading '#' is
// tolerated. Callers must supply well-formed hex; malformed input yields 0
// for the unparseable channels rather than an error.
func Brightness(hex string) int {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) < 6 {
		return 0
	}
	r := parseChannel(hex[0:2])
	g := parseChannel(hex[2:4])
	b := parseChannel(hex[4:6])
	return (r*299 + g*587 + b*114) / 1000
}

func parseChannel(s string) int {
	v, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		return 0
	}
	return int(v)
}

// ClassifyColor derives a color role from brightness and an optional name
// hint ("primary"/"brand" or "accent"/"secondary").
func ClassifyColor(hex, nameHint string) ColorEntry {
	brightness := Brightness(hex)
	return ColorEntry{
		Hex:        hex,
		Type:       inferRole(nameHint, brightness),
		Brightness: brightness,
	}
}

func inferRole(nameHint string, brightness int) string {
	name := strings.ToLower(nameHint)

	if brightness < 50 {
		return RoleDark
	}
	if brightness > 200 {
		return RoleLight
	}
	if strings.Contains(name, "primary") || strings.Contains(name, "brand") {
		return RoleBrand
	}
	if strings.Contains(name, "accent") || strings.Contains(name, "secondary") {
		return RoleAccent
	}

	if brightness < 128 {
		return RoleDark
	}
	return RoleAccent
}

// assignPositionalRoles sorts colors by brightness ascending and overrides
// the inferred roles positionally: darkest is always dark, lightest is
// always light, and with three or more entries the second is accent. The
// override wins over any hint-based inference.
func assignPositionalRoles(colors []ColorEntry) []ColorEntry {
	if len(colors) == 0 {
		return colors
	}

	sort.SliceStable(colors, func(i, j int) bool {
		return colors[i].Brightness < colors[j].Brightness
	})

	colors[0].Type = RoleDark
	if len(colors) > 1 {
		colors[len(colors)-1].Type = RoleLight
	}
	if len(colors) > 2 {
		colors[1].Type = RoleAccent
	}
	return colors
}
