// Package badge maps maturity tiers to badge artifacts. Both resolution and
// rendering are total functions; unknown tiers fall back to the WIP badge.
package badge

import (
	"fmt"
	"os"
	"strings"

	"github.com/openmaturity/maturity/internal/scoring"
)

type descriptor struct {
	url   string
	color string
}

var badges = map[scoring.Tier]descriptor{
	scoring.TierWIP:     {url: "https://img.shields.io/badge/maturity-WIP-lightgrey", color: "#9f9f9f"},
	scoring.TierPassing: {url: "https://img.shields.io/badge/maturity-passing-brightgreen", color: "#4c1"},
	scoring.TierBronze:  {url: "https://img.shields.io/badge/maturity-bronze-cd7f32", color: "#cd7f32"},
	scoring.TierSilver:  {url: "https://img.shields.io/badge/maturity-silver-c0c0c0", color: "#c0c0c0"},
	scoring.TierGold:    {url: "https://img.shields.io/badge/maturity-gold-ffd700", color: "#ffd700"},
}

// normalize case-folds the tier name. No whitespace trimming: " GOLD " is
// not a tier and resolves to the default.
func normalize(tier string) scoring.Tier {
	t := scoring.Tier(strings.ToUpper(tier))
	if _, ok := badges[t]; ok {
		return t
	}
	return scoring.TierWIP
}

// URL returns the canonical badge URL for a tier name, case-insensitively.
// Any non-matching input resolves to the WIP badge.
func URL(tier string) string {
	return badges[normalize(tier)].url
}

// flat-style badge skeleton; widths are fixed-pitch approximations, which is
// fine for the short label set we render.
const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="20" role="img" aria-label="%s: %s">
  <rect width="%d" height="20" fill="#555"/>
  <rect x="%d" width="%d" height="20" fill="%s"/>
  <g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" font-size="11">
    <text x="%d" y="14">%s</text>
    <text x="%d" y="14">%s</text>
  </g>
</svg>
`

// RenderSVG renders a flat badge image for a tier. The label is the badge's
// left-hand text (e.g. "maturity").
func RenderSVG(label, tier string) []byte {
	t := normalize(tier)
	d := badges[t]
	value := strings.ToLower(string(t))
	leftW := 10 + 7*len(label)
	rightW := 10 + 7*len(value)
	total := leftW + rightW
	svg := fmt.Sprintf(svgTemplate,
		total, label, value,
		leftW,
		leftW, rightW, d.color,
		leftW/2, label,
		leftW+rightW/2, value,
	)
	return []byte(svg)
}

// WriteSVG saves the rendered badge to path.
func WriteSVG(path, label, tier string) error {
	return os.WriteFile(path, RenderSVG(label, tier), 0o644)
}
