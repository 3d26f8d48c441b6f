// Package stat translates internal fight-property codes into display labels
// and formats raw stat values for display.
package stat

import (
	"math"
	"strconv"
	"strings"
)

// labelByCode is the fixed code -> display label table. Labels are the
// Japanese in-game stat names; downstream scoring matches on them.
var labelByCode = map[string]string{
	"FIGHT_PROP_HP":                "HP",
	"FIGHT_PROP_HP_PERCENT":        "HP%",
	"FIGHT_PROP_ATTACK":            "攻撃力",
	"FIGHT_PROP_BASE_ATTACK":       "基礎攻撃力",
	"FIGHT_PROP_ATTACK_PERCENT":    "攻撃力%",
	"FIGHT_PROP_DEFENSE":           "防御力",
	"FIGHT_PROP_DEFENSE_PERCENT":   "防御力%",
	"FIGHT_PROP_CRITICAL":          "会心率",
	"FIGHT_PROP_CRITICAL_HURT":     "会心ダメージ",
	"FIGHT_PROP_CHARGE_EFFICIENCY": "元素チャージ効率",
	"FIGHT_PROP_ELEMENT_MASTERY":   "元素熟知",
	"FIGHT_PROP_PHYSICAL_ADD_HURT": "物理ダメージ",
	"FIGHT_PROP_FIRE_ADD_HURT":     "炎元素ダメージ",
	"FIGHT_PROP_ELEC_ADD_HURT":     "雷元素ダメージ",
	"FIGHT_PROP_WATER_ADD_HURT":    "水元素ダメージ",
	"FIGHT_PROP_GRASS_ADD_HURT":    "草元素ダメージ",
	"FIGHT_PROP_WIND_ADD_HURT":     "風元素ダメージ",
	"FIGHT_PROP_ROCK_ADD_HURT":     "岩元素ダメージ",
	"FIGHT_PROP_ICE_ADD_HURT":      "氷元素ダメージ",
	"FIGHT_PROP_HEAL_ADD":          "与える治癒効果",
}

// Label returns the display label for a stat code, falling back to the raw
// code for anything unmapped.
func Label(code string) string {
	if l, ok := labelByCode[code]; ok {
		return l
	}
	return code
}

// IsPercent reports whether a stat code denotes a percentage-style stat.
func IsPercent(code string) bool {
	return strings.HasSuffix(code, "_PERCENT") ||
		code == "FIGHT_PROP_CRITICAL" ||
		code == "FIGHT_PROP_CRITICAL_HURT" ||
		code == "FIGHT_PROP_CHARGE_EFFICIENCY" ||
		strings.Contains(code, "_ADD_HURT") ||
		code == "FIGHT_PROP_HEAL_ADD"
}

// Format renders a raw stat value for display. Percent stats take a raw ratio
// (0.331 -> "33.1%"); everything else is an absolute magnitude rounded to the
// nearest integer.
func Format(code string, value float64) string {
	if IsPercent(code) {
		return strconv.FormatFloat(value*100, 'f', 1, 64) + "%"
	}
	return strconv.Itoa(int(math.Round(value)))
}
