package build_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/KouSug/G-I-buildcard/internal/build"
	"github.com/KouSug/G-I-buildcard/internal/enka"
	"github.com/KouSug/G-I-buildcard/internal/gamedata"
)

func fixtureDB() *gamedata.Database {
	return gamedata.New(
		map[string]gamedata.CharacterRecord{
			"10000002": {
				Name:    "神里綾華",
				Icon:    "UI_AvatarIcon_Ayaka",
				Element: "Cryo",
				Skills: map[string]gamedata.SkillRecord{
					"normal": {ID: 10024, Icon: "Skill_A_01"},
					"skill":  {ID: 10018, Icon: "Skill_S_Ayaka_01", ProudSkillGroupID: 3239},
					"burst":  {ID: 10019, Icon: "Skill_E_Ayaka_01", ProudSkillGroupID: 3240},
				},
				Constellations: []string{"UI_Talent_S_Ayaka_01", "UI_Talent_S_Ayaka_02"},
			},
		},
		map[string]gamedata.WeaponRecord{
			"11509": {Name: "霧切の廻光", Icon: "UI_EquipIcon_Sword_Narukami_Awaken", Rarity: 5},
		},
		map[string]gamedata.ArtifactRecord{
			"51150": {Name: "氷風の華", Icon: "UI_RelicIcon_14001_4", SetID: 14001},
			"52240": {Name: "砂時計の欠片", Icon: "UI_RelicIcon_99999_5"}, // no set id on purpose
		},
		map[string]string{
			"14001": "氷風を彷徨う勇士",
		},
	)
}

func fixtureAvatar() enka.AvatarInfo {
	return enka.AvatarInfo{
		AvatarID: 10000002,
		PropMap: map[string]enka.PropMapItem{
			"4001": {Val: "90"},
		},
		FightPropMap: map[string]float64{
			"2000": 18199.6,
			"2001": 2159.4,
			"2002": 876.2,
			"28":   86.4,
			"20":   0.331,
			"22":   1.876,
			"23":   1.205,
			"46":   0.616,
		},
		SkillLevelMap: map[string]int{
			"10024": 10,
			"10018": 9,
			"10019": 8,
		},
		ProudSkillExtraLevelMap: map[string]int{
			"3239": 3,
		},
		TalentIDList: []int{1, 2, 3, 4},
		EquipList: []enka.EquipItem{
			{
				ItemID: 11509,
				Weapon: &enka.EquipWeapon{Level: 90, AffixMap: map[string]int{"111509": 4}},
				Flat: enka.EquipFlat{
					ItemType:  enka.ItemTypeWeapon,
					RankLevel: 5,
					Icon:      "UI_EquipIcon_Sword_Narukami_Awaken",
					WeaponStats: []enka.StatValue{
						{AppendPropID: "FIGHT_PROP_BASE_ATTACK", StatValue: 674},
						{AppendPropID: "FIGHT_PROP_CRITICAL_HURT", StatValue: 44.1},
					},
				},
			},
			{
				ItemID:    51150,
				Reliquary: &enka.EquipReliquary{Level: 21},
				Flat: enka.EquipFlat{
					ItemType:          enka.ItemTypeReliquary,
					EquipType:         "EQUIP_BRACER",
					RankLevel:         5,
					Icon:              "UI_RelicIcon_14001_4",
					ReliquaryMainstat: &enka.StatValue{MainPropID: "FIGHT_PROP_HP", StatValue: 4780},
					ReliquarySubstats: []enka.StatValue{
						{AppendPropID: "FIGHT_PROP_CRITICAL", StatValue: 10.5},
						{AppendPropID: "FIGHT_PROP_ATTACK_PERCENT", StatValue: 15.0},
					},
				},
			},
			{
				ItemID:    52240,
				Reliquary: &enka.EquipReliquary{Level: 5},
				Flat: enka.EquipFlat{
					ItemType:          enka.ItemTypeReliquary,
					EquipType:         "EQUIP_SHOES",
					RankLevel:         4,
					Icon:              "UI_RelicIcon_99999_5",
					ReliquaryMainstat: &enka.StatValue{MainPropID: "FIGHT_PROP_CHARGE_EFFICIENCY", StatValue: 45.9},
				},
			},
		},
	}
}

func TestNormalize_Character(t *testing.T) {
	n := build.NewNormalizer(fixtureDB(), nil)
	got := n.Normalize(fixtureAvatar(), build.NewBuild())

	want := build.Character{
		Name:          "神里綾華",
		Level:         90,
		Constellation: 4,
		Element:       build.ElementCryo,
		ImageURL:      "https://enka.network/ui/UI_Gacha_AvatarImg_Ayaka.png",
		Talents: build.Talents{
			Normal: build.Talent{Level: 10, Icon: "https://enka.network/ui/Skill_A_01.png"},
			Skill:  build.Talent{Level: 12, Boosted: true, Icon: "https://enka.network/ui/Skill_S_Ayaka_01.png"},
			Burst:  build.Talent{Level: 8, Icon: "https://enka.network/ui/Skill_E_Ayaka_01.png"},
		},
		ConstellationIcons: []string{
			"https://enka.network/ui/UI_Talent_S_Ayaka_01.png",
			"https://enka.network/ui/UI_Talent_S_Ayaka_02.png",
		},
	}
	if diff := cmp.Diff(want, got.Character); diff != "" {
		t.Fatalf("character mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_Weapon(t *testing.T) {
	n := build.NewNormalizer(fixtureDB(), nil)
	got := n.Normalize(fixtureAvatar(), build.NewBuild())

	want := build.Weapon{
		Name:       "霧切の廻光",
		Level:      90,
		Refinement: 5,
		ImageURL:   "https://enka.network/ui/UI_EquipIcon_Sword_Narukami_Awaken.png",
		MainStat:   &build.StatEntry{Label: "基礎攻撃力", Value: "674"},
		SubStat:    &build.StatEntry{Label: "会心ダメージ", Value: "44.1%"},
		Rarity:     5,
	}
	if diff := cmp.Diff(want, got.Weapon); diff != "" {
		t.Fatalf("weapon mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_Artifacts(t *testing.T) {
	n := build.NewNormalizer(fixtureDB(), nil)
	got := n.Normalize(fixtureAvatar(), build.NewBuild())

	flower := got.Artifacts.Get(build.SlotFlower)
	wantFlower := build.Artifact{
		Slot:     build.SlotFlower,
		Set:      "氷風を彷徨う勇士",
		Level:    20, // raw reliquary level 21 is 1-indexed
		ImageURL: "https://enka.network/ui/UI_RelicIcon_14001_4.png",
		MainStat: build.StatEntry{Label: "HP", Value: "4780"},
		SubStats: []build.StatEntry{
			{Label: "会心率", Value: "10.5%"},
			{Label: "攻撃力%", Value: "15.0%"},
		},
	}
	if diff := cmp.Diff(wantFlower, flower); diff != "" {
		t.Fatalf("flower mismatch (-want +got):\n%s", diff)
	}

	sands := got.Artifacts.Get(build.SlotSands)
	if sands.Level != 4 {
		t.Fatalf("sands level = %d, want 4 (raw level 5 minus 1)", sands.Level)
	}
	// Piece has no set id; the set label falls back to the piece's own name.
	if sands.Set != "砂時計の欠片" {
		t.Fatalf("sands set = %q, want the piece name fallback", sands.Set)
	}
	if sands.MainStat.Value != "45.9%" {
		t.Fatalf("sands main stat = %q, want \"45.9%%\"", sands.MainStat.Value)
	}

	// Slots with no equipped item keep the skeleton defaults.
	plume := got.Artifacts.Get(build.SlotPlume)
	if plume.MainStat.Label != "ATK" || plume.MainStat.Value != "0" {
		t.Fatalf("untouched plume slot changed: %+v", plume.MainStat)
	}
}

func TestNormalize_Stats(t *testing.T) {
	n := build.NewNormalizer(fixtureDB(), nil)
	got := n.Normalize(fixtureAvatar(), build.NewBuild())

	want := build.Stats{
		HP:       18200,
		Atk:      2159,
		Def:      876,
		EM:       86,
		CR:       33.1,
		CD:       187.6,
		ER:       120.5,
		DmgBonus: 61.6,
	}
	if diff := cmp.Diff(want, got.Stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_DmgBonusTakesMaximum(t *testing.T) {
	avatar := fixtureAvatar()
	avatar.FightPropMap["40"] = 0.12
	avatar.FightPropMap["44"] = 0.466

	n := build.NewNormalizer(fixtureDB(), nil)
	got := n.Normalize(avatar, build.NewBuild())
	if got.Stats.DmgBonus != 61.6 {
		t.Fatalf("dmgBonus = %v, want the maximum bonus 61.6", got.Stats.DmgBonus)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := build.NewNormalizer(fixtureDB(), nil)
	first := n.Normalize(fixtureAvatar(), build.NewBuild())
	second := n.Normalize(fixtureAvatar(), build.NewBuild())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("normalize is not idempotent (-first +second):\n%s", diff)
	}

	// Re-normalizing on top of a previous result changes nothing either.
	again := n.Normalize(fixtureAvatar(), first)
	if diff := cmp.Diff(first, again); diff != "" {
		t.Fatalf("re-normalize over prior output drifted (-want +got):\n%s", diff)
	}
}

func TestNormalize_UnknownAvatarID(t *testing.T) {
	avatar := fixtureAvatar()
	avatar.AvatarID = 77777777

	n := build.NewNormalizer(fixtureDB(), nil)
	got := n.Normalize(avatar, build.NewBuild())

	if want := fmt.Sprintf("Unknown (%d)", avatar.AvatarID); got.Character.Name != want {
		t.Fatalf("name = %q, want %q", got.Character.Name, want)
	}
	if got.Character.ImageURL != "" {
		t.Fatalf("imageUrl = %q, want empty for unknown character", got.Character.ImageURL)
	}
	// Unknown record also means the default element.
	if got.Character.Element != build.ElementAnemo {
		t.Fatalf("element = %s, want anemo fallback", got.Character.Element)
	}
}

func TestNormalize_EmptyAvatarDegradesToDefaults(t *testing.T) {
	n := build.NewNormalizer(fixtureDB(), nil)
	got := n.Normalize(enka.AvatarInfo{AvatarID: 123}, build.NewBuild())

	if got.Character.Name != "Unknown (123)" {
		t.Fatalf("name = %q", got.Character.Name)
	}
	if got.Character.Level != 0 {
		t.Fatalf("level = %d, want 0 for missing prop map", got.Character.Level)
	}
	if got.Character.Constellation != 0 {
		t.Fatalf("constellation = %d, want 0", got.Character.Constellation)
	}
	if got.Weapon.Name != "Unknown" || got.Weapon.Refinement != 1 {
		t.Fatalf("weapon = %+v, want name Unknown / refinement 1", got.Weapon)
	}
	for _, a := range got.Artifacts.All() {
		if a.Slot == "" {
			t.Fatalf("artifact lost its slot: %+v", a)
		}
	}
}

func TestNormalize_FixedSlotSet(t *testing.T) {
	n := build.NewNormalizer(fixtureDB(), nil)
	got := n.Normalize(fixtureAvatar(), build.NewBuild())

	seen := map[build.Slot]int{}
	for i, a := range got.Artifacts.All() {
		if a.Slot != build.SlotOrder[i] {
			t.Fatalf("slot %d = %s, want %s", i, a.Slot, build.SlotOrder[i])
		}
		seen[a.Slot]++
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 distinct slots, got %d", len(seen))
	}
}
