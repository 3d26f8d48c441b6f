// Package build defines the normalized build record and the snapshot
// normalizer that produces it.
package build

import (
	"encoding/json"
	"fmt"
)

// StatEntry is a display-ready stat. Value is pre-formatted and may carry a
// trailing percent sign.
type StatEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Talent struct {
	Level   int    `json:"level"`
	Boosted bool   `json:"boosted"`
	Icon    string `json:"icon"`
}

type Talents struct {
	Normal Talent `json:"normal"`
	Skill  Talent `json:"skill"`
	Burst  Talent `json:"burst"`
}

type Element string

const (
	ElementPyro    Element = "pyro"
	ElementHydro   Element = "hydro"
	ElementAnemo   Element = "anemo"
	ElementElectro Element = "electro"
	ElementDendro  Element = "dendro"
	ElementCryo    Element = "cryo"
	ElementGeo     Element = "geo"
)

type Character struct {
	Name               string   `json:"name"`
	Level              int      `json:"level"`
	Constellation      int      `json:"constellation"`
	Element            Element  `json:"element"`
	ImageURL           string   `json:"imageUrl"`
	Talents            Talents  `json:"talents"`
	ConstellationIcons []string `json:"constellationIcons,omitempty"`
}

type Weapon struct {
	Name       string     `json:"name"`
	Level      int        `json:"level"`
	Refinement int        `json:"refinement"`
	ImageURL   string     `json:"imageUrl,omitempty"`
	MainStat   *StatEntry `json:"mainStat,omitempty"`
	SubStat    *StatEntry `json:"subStat,omitempty"`
	Rarity     int        `json:"rarity,omitempty"`
}

// Slot is one of the five fixed artifact positions.
type Slot string

const (
	SlotFlower  Slot = "flower"
	SlotPlume   Slot = "plume"
	SlotSands   Slot = "sands"
	SlotGoblet  Slot = "goblet"
	SlotCirclet Slot = "circlet"
)

// SlotOrder is the canonical display ordering of the five slots.
var SlotOrder = [5]Slot{SlotFlower, SlotPlume, SlotSands, SlotGoblet, SlotCirclet}

type Artifact struct {
	Slot     Slot        `json:"slot"`
	Set      string      `json:"set"`
	MainStat StatEntry   `json:"mainStat"`
	SubStats []StatEntry `json:"subStats"`
	Level    int         `json:"level"`
	ImageURL string      `json:"imageUrl,omitempty"`
	Rarity   int         `json:"rarity,omitempty"`
}

// Artifacts holds exactly one artifact per slot. The one-field-per-slot shape
// makes the "always 5, one per slot" invariant structural; the JSON form stays
// a fixed 5-element array in SlotOrder.
type Artifacts struct {
	Flower  Artifact
	Plume   Artifact
	Sands   Artifact
	Goblet  Artifact
	Circlet Artifact
}

// Get returns the artifact in a slot. Unknown slots return the zero Artifact.
func (a Artifacts) Get(slot Slot) Artifact {
	switch slot {
	case SlotFlower:
		return a.Flower
	case SlotPlume:
		return a.Plume
	case SlotSands:
		return a.Sands
	case SlotGoblet:
		return a.Goblet
	case SlotCirclet:
		return a.Circlet
	}
	return Artifact{}
}

// Put replaces the artifact in a slot, forcing the entry's Slot field to the
// slot it is stored under. Unknown slots are ignored.
func (a *Artifacts) Put(slot Slot, art Artifact) {
	art.Slot = slot
	switch slot {
	case SlotFlower:
		a.Flower = art
	case SlotPlume:
		a.Plume = art
	case SlotSands:
		a.Sands = art
	case SlotGoblet:
		a.Goblet = art
	case SlotCirclet:
		a.Circlet = art
	}
}

// All returns the five artifacts in SlotOrder.
func (a Artifacts) All() [5]Artifact {
	return [5]Artifact{a.Flower, a.Plume, a.Sands, a.Goblet, a.Circlet}
}

func (a Artifacts) MarshalJSON() ([]byte, error) {
	all := a.All()
	return json.Marshal(all[:])
}

func (a *Artifacts) UnmarshalJSON(b []byte) error {
	var list []Artifact
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	if len(list) != 5 {
		return fmt.Errorf("artifacts: expected 5 entries, got %d", len(list))
	}
	for _, art := range list {
		a.Put(art.Slot, art)
	}
	return nil
}

// Stats is the derived aggregate shown on the card. hp/atk/def/em are rounded
// integers; the rest are percents with one decimal.
type Stats struct {
	HP       int     `json:"hp"`
	Atk      int     `json:"atk"`
	Def      int     `json:"def"`
	EM       int     `json:"em"`
	CR       float64 `json:"cr"`
	CD       float64 `json:"cd"`
	ER       float64 `json:"er"`
	DmgBonus float64 `json:"dmgBonus"`
}

// BaseStat selects which percent substat contributes to artifact scoring.
type BaseStat string

const (
	BaseAtk BaseStat = "atk"
	BaseHP  BaseStat = "hp"
	BaseDef BaseStat = "def"
	BaseER  BaseStat = "er"
)

type BuildData struct {
	Character Character `json:"character"`
	Weapon    Weapon    `json:"weapon"`
	Artifacts Artifacts `json:"artifacts"`
	Stats     Stats     `json:"stats"`
	ScoreBase BaseStat  `json:"scoreBase,omitempty"`
}

// NewBuild returns a fresh default skeleton. Callers always get their own
// value; there is no shared default instance to mutate.
func NewBuild() BuildData {
	b := BuildData{
		Character: Character{
			Level:   1,
			Element: ElementPyro,
			Talents: Talents{
				Normal: Talent{Level: 1},
				Skill:  Talent{Level: 1},
				Burst:  Talent{Level: 1},
			},
		},
		Weapon: Weapon{
			Level:      1,
			Refinement: 1,
		},
	}
	b.Artifacts.Put(SlotFlower, Artifact{MainStat: StatEntry{Label: "HP", Value: "0"}, SubStats: []StatEntry{}})
	b.Artifacts.Put(SlotPlume, Artifact{MainStat: StatEntry{Label: "ATK", Value: "0"}, SubStats: []StatEntry{}})
	b.Artifacts.Put(SlotSands, Artifact{MainStat: StatEntry{Label: "Main", Value: "0"}, SubStats: []StatEntry{}})
	b.Artifacts.Put(SlotGoblet, Artifact{MainStat: StatEntry{Label: "Main", Value: "0"}, SubStats: []StatEntry{}})
	b.Artifacts.Put(SlotCirclet, Artifact{MainStat: StatEntry{Label: "Main", Value: "0"}, SubStats: []StatEntry{}})
	return b
}
