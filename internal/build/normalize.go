package build

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/KouSug/G-I-buildcard/internal/enka"
	"github.com/KouSug/G-I-buildcard/internal/gamedata"
	"github.com/KouSug/G-I-buildcard/internal/stat"
)

const iconBaseURL = "https://enka.network/ui/"

// Reserved snapshot keys.
const (
	propKeyLevel = "4001"

	fightPropHP             = 2000
	fightPropAtk            = 2001
	fightPropDef            = 2002
	fightPropEM             = 28
	fightPropCritRate       = 20
	fightPropCritDamage     = 22
	fightPropEnergyRecharge = 23
)

// The seven elemental/physical damage bonus fight-property codes.
var fightPropDmgBonus = [7]int{40, 41, 42, 43, 44, 45, 46}

var slotByEquipType = map[string]Slot{
	"EQUIP_BRACER":   SlotFlower,
	"EQUIP_NECKLACE": SlotPlume,
	"EQUIP_SHOES":    SlotSands,
	"EQUIP_RING":     SlotGoblet,
	"EQUIP_DRESS":    SlotCirclet,
}

var validElements = map[Element]bool{
	ElementPyro:    true,
	ElementHydro:   true,
	ElementAnemo:   true,
	ElementElectro: true,
	ElementDendro:  true,
	ElementCryo:    true,
	ElementGeo:     true,
}

// Normalizer maps a raw snapshot avatar into a BuildData against the static
// game database. It never fails: every missing or malformed field degrades to
// a documented default.
type Normalizer struct {
	db  *gamedata.Database
	log *zap.Logger
}

func NewNormalizer(db *gamedata.Database, log *zap.Logger) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{db: db, log: log}
}

// Normalize produces a fresh BuildData from one avatar. Artifact slots with
// no equipped item keep their contents from current (merge, not overwrite);
// the score base survives untouched.
func (n *Normalizer) Normalize(avatar enka.AvatarInfo, current BuildData) BuildData {
	out := current
	out.Character = n.extractCharacter(avatar)
	out.Weapon = n.extractWeapon(avatar.EquipList)
	out.Stats = extractStats(avatar.FightPropMap)
	n.mergeArtifacts(&out.Artifacts, avatar.EquipList)
	return out
}

func (n *Normalizer) extractCharacter(avatar enka.AvatarInfo) Character {
	rec, ok := n.db.Character(avatar.AvatarID)
	if !ok || rec.Name == "" {
		n.log.Warn("character id not in game data", zap.Int("avatarId", avatar.AvatarID))
	}

	name := rec.Name
	if name == "" {
		name = fmt.Sprintf("Unknown (%d)", avatar.AvatarID)
	}

	element := Element(strings.ToLower(rec.Element))
	if !validElements[element] {
		if rec.Element != "" {
			n.log.Warn("unknown element in character record",
				zap.Int("avatarId", avatar.AvatarID), zap.String("element", rec.Element))
		}
		element = ElementAnemo
	}

	imageURL := ""
	if rec.Icon != "" {
		imageURL = iconURL(strings.Replace(rec.Icon, "UI_AvatarIcon_", "UI_Gacha_AvatarImg_", 1))
	}

	cons := len(avatar.TalentIDList)
	if cons > 6 {
		n.log.Warn("constellation count above 6, clamping", zap.Int("count", cons))
		cons = 6
	}

	var consIcons []string
	for _, icon := range rec.Constellations {
		consIcons = append(consIcons, iconURL(icon))
	}

	return Character{
		Name:          name,
		Level:         atoiDefault(avatar.PropMap, propKeyLevel, 0),
		Constellation: cons,
		Element:       element,
		ImageURL:      imageURL,
		Talents: Talents{
			Normal: extractTalent(avatar, rec.Skills["normal"]),
			Skill:  extractTalent(avatar, rec.Skills["skill"]),
			Burst:  extractTalent(avatar, rec.Skills["burst"]),
		},
		ConstellationIcons: consIcons,
	}
}

func extractTalent(avatar enka.AvatarInfo, sk gamedata.SkillRecord) Talent {
	base := 0
	if sk.ID != 0 {
		base = avatar.SkillLevelMap[strconv.Itoa(sk.ID)]
	}
	bonus := 0
	if sk.ProudSkillGroupID != 0 {
		bonus = avatar.ProudSkillExtraLevelMap[strconv.Itoa(sk.ProudSkillGroupID)]
	}

	icon := ""
	if sk.Icon != "" {
		icon = iconURL(sk.Icon)
	}

	return Talent{
		Level:   base + bonus,
		Boosted: bonus > 0,
		Icon:    icon,
	}
}

func (n *Normalizer) extractWeapon(items []enka.EquipItem) Weapon {
	var found *enka.EquipItem
	for i := range items {
		if items[i].Flat.ItemType == enka.ItemTypeWeapon {
			found = &items[i]
			break
		}
	}
	if found == nil {
		n.log.Warn("no weapon in equip list")
		return Weapon{Name: "Unknown", Refinement: 1, Rarity: 1}
	}

	rec, ok := n.db.Weapon(found.ItemID)
	name := rec.Name
	if !ok || name == "" {
		n.log.Warn("weapon id not in game data", zap.Int("itemId", found.ItemID))
		name = fmt.Sprintf("Unknown (%d)", found.ItemID)
	}

	level := 0
	refine := 1
	if found.Weapon != nil {
		level = found.Weapon.Level
		refine = refinementFromAffixes(found.Weapon.AffixMap)
	}

	imageURL := ""
	if rec.Icon != "" {
		imageURL = iconURL(rec.Icon)
	}

	rarity := found.Flat.RankLevel
	if rarity == 0 {
		rarity = 1
	}

	w := Weapon{
		Name:       name,
		Level:      level,
		Refinement: refine,
		ImageURL:   imageURL,
		Rarity:     rarity,
	}
	if len(found.Flat.WeaponStats) > 0 {
		e := flatStatEntry(found.Flat.WeaponStats[0])
		w.MainStat = &e
	}
	if len(found.Flat.WeaponStats) > 1 {
		e := flatStatEntry(found.Flat.WeaponStats[1])
		w.SubStat = &e
	}
	return w
}

// refinementFromAffixes derives the 1-based refinement tier from the weapon's
// single affix entry; a weapon with no affix map is refinement 1.
func refinementFromAffixes(affixMap map[string]int) int {
	for _, v := range affixMap {
		return v + 1
	}
	return 1
}

func (n *Normalizer) mergeArtifacts(arts *Artifacts, items []enka.EquipItem) {
	for _, it := range items {
		if it.Flat.ItemType != enka.ItemTypeReliquary {
			continue
		}
		slot, ok := slotByEquipType[it.Flat.EquipType]
		if !ok {
			n.log.Warn("reliquary with unknown equip type",
				zap.Int("itemId", it.ItemID), zap.String("equipType", it.Flat.EquipType))
			continue
		}

		rec, _ := n.db.ArtifactPiece(it.ItemID)

		art := arts.Get(slot)
		art.Set = resolveSetName(n.db, rec)
		art.Level = 0
		if it.Reliquary != nil && it.Reliquary.Level > 0 {
			art.Level = it.Reliquary.Level - 1
		}
		art.ImageURL = ""
		if rec.Icon != "" {
			art.ImageURL = iconURL(rec.Icon)
		}
		art.MainStat = StatEntry{Label: "Main", Value: "0"}
		if it.Flat.ReliquaryMainstat != nil {
			art.MainStat = flatStatEntry(*it.Flat.ReliquaryMainstat)
		}
		art.SubStats = make([]StatEntry, 0, len(it.Flat.ReliquarySubstats))
		for _, sub := range it.Flat.ReliquarySubstats {
			art.SubStats = append(art.SubStats, flatStatEntry(sub))
		}
		arts.Put(slot, art)
	}
}

// resolveSetName picks the artifact's set label: set-id lookup first, then the
// piece's own name, then the literal "Unknown".
func resolveSetName(db *gamedata.Database, rec gamedata.ArtifactRecord) string {
	if rec.SetID != 0 {
		if name, ok := db.SetName(rec.SetID); ok && name != "" {
			return name
		}
	}
	if rec.Name != "" {
		return rec.Name
	}
	return "Unknown"
}

func extractStats(fightProps map[string]float64) Stats {
	fp := func(code int) float64 {
		return fightProps[strconv.Itoa(code)]
	}

	dmgBonus := 0.0
	for _, code := range fightPropDmgBonus {
		if v := fp(code); v > dmgBonus {
			dmgBonus = v
		}
	}

	return Stats{
		HP:       int(math.Round(fp(fightPropHP))),
		Atk:      int(math.Round(fp(fightPropAtk))),
		Def:      int(math.Round(fp(fightPropDef))),
		EM:       int(math.Round(fp(fightPropEM))),
		CR:       round1(fp(fightPropCritRate) * 100),
		CD:       round1(fp(fightPropCritDamage) * 100),
		ER:       round1(fp(fightPropEnergyRecharge) * 100),
		DmgBonus: round1(dmgBonus * 100),
	}
}

// flatStatEntry translates one equipped-item stat. Percent values in the
// snapshot's flat section arrive pre-scaled (46.6 for 46.6%), so they are
// brought back to the raw-ratio convention the formatter expects.
func flatStatEntry(sv enka.StatValue) StatEntry {
	code := sv.PropID()
	v := sv.StatValue
	if stat.IsPercent(code) {
		v /= 100
	}
	return StatEntry{Label: stat.Label(code), Value: stat.Format(code, v)}
}

func atoiDefault(propMap map[string]enka.PropMapItem, key string, def int) int {
	item, ok := propMap[key]
	if !ok || item.Val == "" {
		return def
	}
	n, err := strconv.Atoi(item.Val)
	if err != nil {
		return def
	}
	return n
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func iconURL(icon string) string {
	return iconBaseURL + icon + ".png"
}
