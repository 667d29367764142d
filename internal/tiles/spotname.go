package tiles

import "strings"

// RotateSpotName rotates the direction letters after the last "_" of name
// and prints them back in N,E,S,W order, so "field_NW" turned by 90 becomes
// "field_NE". Names without a direction suffix are returned unchanged.
func RotateSpotName(name string, deg int) string {
	i := strings.LastIndexByte(name, '_')
	if i < 0 || i == len(name)-1 {
		return name
	}
	var present [4]bool
	for j := i + 1; j < len(name); j++ {
		d, err := ParseDirection(name[j])
		if err != nil {
			return name
		}
		present[d.Rotate(deg)] = true
	}
	var b strings.Builder
	b.Grow(len(name))
	b.WriteString(name[:i+1])
	for _, d := range directionOrder {
		if present[d] {
			b.WriteByte(directionLetters[d])
		}
	}
	return b.String()
}
