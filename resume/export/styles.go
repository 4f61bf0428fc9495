package export

import (
	"strconv"
	"strings"
)

// Style names used by Layout.
const (
	StyleName           = "name"
	StyleJobTitle       = "jobTitle"
	StyleContact        = "contact"
	StyleSectionHeading = "sectionHeading"
	StyleRoleLine       = "roleLine"
	StyleMeta           = "meta"
	StyleBody           = "body"
	StyleBullet         = "bullet"
)

// RunStyle captures the formatting of one kind of line. Size is in points.
type RunStyle struct {
	Bold   bool
	Italic bool
	Size   float64
	Color  string
	// Accent replaces Color with the template accent.
	Accent bool
	// SpaceBefore is extra vertical space in points.
	SpaceBefore float64
}

const (
	NameColor = "111111"
	BodyColor = "1F2937"
	MetaColor = "4B5563"
)

// StyleMap centralizes the formatting for exported resume elements.
var StyleMap = map[string]RunStyle{
	StyleName:           {Bold: true, Size: 20, Color: NameColor},
	StyleJobTitle:       {Size: 12, Color: MetaColor},
	StyleContact:        {Size: 9, Color: MetaColor},
	StyleSectionHeading: {Bold: true, Size: 12, Accent: true, SpaceBefore: 8},
	StyleRoleLine:       {Bold: true, Size: 10, Color: BodyColor, SpaceBefore: 4},
	StyleMeta:           {Italic: true, Size: 9, Color: MetaColor},
	StyleBody:           {Size: 10, Color: BodyColor},
	StyleBullet:         {Size: 10, Color: BodyColor},
}

func styleFor(name string) RunStyle {
	if s, ok := StyleMap[name]; ok {
		return s
	}
	return StyleMap[StyleBody]
}

// hexRGB parses RRGGBB with an optional leading '#'. Invalid input yields black.
func hexRGB(hex string) (int, int, int) {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil || len(strings.TrimPrefix(hex, "#")) != 6 {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}
