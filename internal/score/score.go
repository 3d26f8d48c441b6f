// Package score rates equipped artifacts. Scores are derived purely from the
// display substat strings of a build record; nothing here can fail.
package score

import (
	"math"
	"strconv"
	"strings"

	"github.com/KouSug/G-I-buildcard/internal/build"
)

// Substat display labels the scorer matches on.
const (
	labelCritRate   = "会心率"
	labelCritDamage = "会心ダメージ"
)

// baseStatLabel maps the chosen score base to the percent substat label that
// contributes to the score.
var baseStatLabel = map[build.BaseStat]string{
	build.BaseAtk: "攻撃力%",
	build.BaseHP:  "HP%",
	build.BaseDef: "防御力%",
	build.BaseER:  "元素チャージ効率",
}

// Rank is a letter grade with its display color.
type Rank struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var (
	rankSS = Rank{Label: "SS", Color: "#ff4d4d"}
	rankS  = Rank{Label: "S", Color: "#ff8c1a"}
	rankA  = Rank{Label: "A", Color: "#e6e600"}
	rankB  = Rank{Label: "B", Color: "#999999"}
)

// ArtifactScore rates one artifact: crit rate counts double, crit damage
// counts once, the percent substat matching base counts once, everything else
// contributes nothing. Values that do not parse as numbers contribute zero.
// The result is rounded to one decimal and never negative.
func ArtifactScore(a build.Artifact, base build.BaseStat) float64 {
	if base == "" {
		base = build.BaseAtk
	}
	baseLabel := baseStatLabel[base]

	score := 0.0
	for _, sub := range a.SubStats {
		v, err := strconv.ParseFloat(strings.TrimSuffix(sub.Value, "%"), 64)
		if err != nil {
			continue
		}
		switch sub.Label {
		case labelCritRate:
			score += v * 2
		case labelCritDamage:
			score += v
		case baseLabel:
			score += v
		}
	}
	return round1(score)
}

// ArtifactRank grades a single artifact score. Flower and plume carry fixed
// main stats, so their thresholds sit higher than the other three slots.
// Thresholds are inclusive lower bounds.
func ArtifactRank(score float64, slot build.Slot) Rank {
	if slot == build.SlotFlower || slot == build.SlotPlume {
		switch {
		case score >= 50:
			return rankSS
		case score >= 45:
			return rankS
		case score >= 40:
			return rankA
		}
		return rankB
	}
	switch {
	case score >= 45:
		return rankSS
	case score >= 40:
		return rankS
	case score >= 30:
		return rankA
	}
	return rankB
}

// TotalScore sums the five per-artifact scores.
func TotalScore(arts build.Artifacts, base build.BaseStat) float64 {
	total := 0.0
	for _, a := range arts.All() {
		total += ArtifactScore(a, base)
	}
	return round1(total)
}

// TotalRank grades the summed build score with inclusive lower bounds.
func TotalRank(total float64) Rank {
	switch {
	case total >= 220:
		return rankSS
	case total >= 200:
		return rankS
	case total >= 180:
		return rankA
	}
	return rankB
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
