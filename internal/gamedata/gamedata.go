// Package gamedata holds the static reference database mapping numeric game
// identifiers to display records. The file is generated offline; this package
// only loads and queries it.
package gamedata

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type SkillRecord struct {
	ID                int    `json:"id"`
	Icon              string `json:"icon,omitempty"`
	ProudSkillGroupID int    `json:"proudSkillGroupId,omitempty"`
}

type CharacterRecord struct {
	Name           string                 `json:"name"`
	Icon           string                 `json:"icon"`
	SideIcon       string                 `json:"sideIcon,omitempty"`
	Element        string                 `json:"element,omitempty"`
	WeaponType     string                 `json:"weaponType,omitempty"`
	Skills         map[string]SkillRecord `json:"skills,omitempty"`
	Constellations []string               `json:"constellations,omitempty"`
}

type WeaponRecord struct {
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	WeaponType string `json:"weaponType,omitempty"`
	Rarity     int    `json:"rarity,omitempty"`
}

type ArtifactRecord struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	SetID int    `json:"setId"`
}

// Database is a read-only id lookup. A miss is a normal outcome, reported
// through the ok bool, never as an error.
type Database struct {
	characters   map[string]CharacterRecord
	weapons      map[string]WeaponRecord
	artifacts    map[string]ArtifactRecord
	artifactSets map[string]string
}

type fileShape struct {
	Characters   map[string]CharacterRecord `json:"characters"`
	Weapons      map[string]WeaponRecord    `json:"weapons"`
	Artifacts    map[string]ArtifactRecord  `json:"artifacts"`
	ArtifactSets map[string]string          `json:"artifactSets"`
}

// Load reads the game data file once. The decode is strict enough to reject a
// file that is not the expected shape instead of passing raw maps through.
func Load(path string) (*Database, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game data %s: %w", path, err)
	}

	var fs fileShape
	if err := json.Unmarshal(b, &fs); err != nil {
		return nil, fmt.Errorf("parse game data %s: %w", path, err)
	}
	if fs.Characters == nil && fs.Weapons == nil && fs.Artifacts == nil {
		return nil, fmt.Errorf("parse game data %s: no characters/weapons/artifacts sections", path)
	}

	return New(fs.Characters, fs.Weapons, fs.Artifacts, fs.ArtifactSets), nil
}

// New builds a database from already-decoded maps. Nil maps are allowed and
// behave as empty.
func New(chars map[string]CharacterRecord, weapons map[string]WeaponRecord, artifacts map[string]ArtifactRecord, sets map[string]string) *Database {
	if chars == nil {
		chars = map[string]CharacterRecord{}
	}
	if weapons == nil {
		weapons = map[string]WeaponRecord{}
	}
	if artifacts == nil {
		artifacts = map[string]ArtifactRecord{}
	}
	if sets == nil {
		sets = map[string]string{}
	}
	return &Database{
		characters:   chars,
		weapons:      weapons,
		artifacts:    artifacts,
		artifactSets: sets,
	}
}

func (db *Database) Character(id int) (CharacterRecord, bool) {
	rec, ok := db.characters[strconv.Itoa(id)]
	return rec, ok
}

func (db *Database) Weapon(id int) (WeaponRecord, bool) {
	rec, ok := db.weapons[strconv.Itoa(id)]
	return rec, ok
}

func (db *Database) ArtifactPiece(id int) (ArtifactRecord, bool) {
	rec, ok := db.artifacts[strconv.Itoa(id)]
	return rec, ok
}

func (db *Database) SetName(setID int) (string, bool) {
	name, ok := db.artifactSets[strconv.Itoa(setID)]
	return name, ok
}
