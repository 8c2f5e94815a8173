package core

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// DisplayColor returns the entity's configured badge color, or a
// deterministic fallback derived from the id so the same entity always
// renders the same color.
func (e Entity) DisplayColor() string {
	if e.Color != "" {
		return e.Color
	}
	h := fnv.New32a()
	h.Write([]byte(e.ID))
	return fmt.Sprintf("#%06x", h.Sum32()&0xffffff)
}

// Brightness returns the relative luminance of a #rrggbb color in
// [0, 1]. UIs pick black or white badge text with it.
func Brightness(color string) float64 {
	hex := strings.TrimPrefix(color, "#")
	if len(hex) != 6 {
		return 0
	}
	channel := func(s string) float64 {
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return 0
		}
		return float64(v) / 255
	}
	r := channel(hex[0:2])
	g := channel(hex[2:4])
	b := channel(hex[4:6])
	return 0.2126*r + 0.7152*g + 0.0722*b
}
