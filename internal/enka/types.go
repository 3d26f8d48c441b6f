package enka

// Wire types for the Enka.Network UID endpoint. Only the fields the
// normalizer consumes are decoded; everything else is dropped by the decoder.

type Snapshot struct {
	PlayerInfo     *PlayerInfo  `json:"playerInfo"`
	AvatarInfoList []AvatarInfo `json:"avatarInfoList"`
	UID            string       `json:"uid"`
	TTL            int          `json:"ttl"`
}

type PlayerInfo struct {
	Nickname string `json:"nickname"`
	Level    int    `json:"level"`
}

type AvatarInfo struct {
	AvatarID                int                    `json:"avatarId"`
	PropMap                 map[string]PropMapItem `json:"propMap"`
	FightPropMap            map[string]float64     `json:"fightPropMap"`
	SkillDepotID            int                    `json:"skillDepotId"`
	SkillLevelMap           map[string]int         `json:"skillLevelMap"`
	ProudSkillExtraLevelMap map[string]int         `json:"proudSkillExtraLevelMap"`
	TalentIDList            []int                  `json:"talentIdList"`
	EquipList               []EquipItem            `json:"equipList"`
}

type PropMapItem struct {
	Type int    `json:"type"`
	Ival string `json:"ival"`
	Val  string `json:"val"`
}

type EquipItem struct {
	ItemID    int             `json:"itemId"`
	Weapon    *EquipWeapon    `json:"weapon,omitempty"`
	Reliquary *EquipReliquary `json:"reliquary,omitempty"`
	Flat      EquipFlat       `json:"flat"`
}

type EquipWeapon struct {
	Level        int            `json:"level"`
	PromoteLevel *int           `json:"promoteLevel,omitempty"`
	AffixMap     map[string]int `json:"affixMap,omitempty"`
}

type EquipReliquary struct {
	Level int `json:"level"`
}

// Equip type tags as Enka sends them.
const (
	ItemTypeWeapon    = "ITEM_WEAPON"
	ItemTypeReliquary = "ITEM_RELIQUARY"
)

type EquipFlat struct {
	ItemType  string `json:"itemType"`
	Icon      string `json:"icon"`
	RankLevel int    `json:"rankLevel"`
	EquipType string `json:"equipType,omitempty"`

	ReliquaryMainstat *StatValue  `json:"reliquaryMainstat,omitempty"`
	ReliquarySubstats []StatValue `json:"reliquarySubstats,omitempty"`
	WeaponStats       []StatValue `json:"weaponStats,omitempty"`
}

// StatValue carries one stat of an equipped item. Main stats use MainPropID,
// substats and weapon stats use AppendPropID; exactly one of the two is set.
type StatValue struct {
	MainPropID   string  `json:"mainPropId,omitempty"`
	AppendPropID string  `json:"appendPropId,omitempty"`
	StatValue    float64 `json:"statValue"`
}

// PropID returns whichever prop id field the entry carries.
func (s StatValue) PropID() string {
	if s.MainPropID != "" {
		return s.MainPropID
	}
	return s.AppendPropID
}
