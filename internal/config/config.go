package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KouSug/G-I-buildcard/internal/build"
)

type Config struct {
	UID       string
	DataPath  string
	AvatarIdx int
	AvatarID  int
	ScoreBase build.BaseStat
	OutPath   string
	OutDir    string
	JSON      bool
	XLSX      bool
}

var uidRe = regexp.MustCompile(`^([1,2,5-9])\d{8}$`)

type stringOpt struct {
	v   string
	set bool
}

func (o *stringOpt) String() string { return o.v }
func (o *stringOpt) Set(v string) error {
	o.v = v
	o.set = true
	return nil
}

type boolOpt struct {
	v   bool
	set bool
}

func (o *boolOpt) String() string {
	if o.v {
		return "true"
	}
	return "false"
}
func (o *boolOpt) Set(v string) error {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return err
	}
	o.v = b
	o.set = true
	return nil
}

type intOpt struct {
	v   int
	set bool
}

func (o *intOpt) String() string { return strconv.Itoa(o.v) }
func (o *intOpt) Set(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return err
	}
	o.v = n
	o.set = true
	return nil
}

type FileConfig struct {
	UID       string `yaml:"uid"`
	DataPath  string `yaml:"dataPath"`
	AvatarIdx *int   `yaml:"avatar"`
	AvatarID  *int   `yaml:"avatarId"`
	ScoreBase string `yaml:"scoreBase"`
	OutPath   string `yaml:"outPath"`
	OutDir    string `yaml:"outDir"`
	JSON      *bool  `yaml:"json"`
	XLSX      *bool  `yaml:"xlsx"`
}

func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("buildcard", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // suppress default usage noise; return errors instead

	var configPath stringOpt

	var uidOpt stringOpt
	var dataPathOpt stringOpt
	var avatarOpt intOpt
	var avatarIDOpt intOpt
	var scoreBaseOpt stringOpt
	var outOpt stringOpt
	var outDirOpt stringOpt
	var jsonOpt boolOpt
	var xlsxOpt boolOpt
	jsonOpt.v = true

	fs.Var(&configPath, "config", "path to config yaml (default: config.yaml)")
	fs.Var(&uidOpt, "uid", "Enka UID (9 digits)")
	fs.Var(&dataPathOpt, "data", "path to gameData.json")
	fs.Var(&avatarOpt, "avatar", "index into the snapshot's avatar list")
	fs.Var(&avatarIDOpt, "avatar-id", "pick the avatar with this id (overrides -avatar)")
	fs.Var(&scoreBaseOpt, "score-base", "score base stat: atk, hp, def or er")
	fs.Var(&outOpt, "out", "output path (overrides out-dir)")
	fs.Var(&outDirOpt, "out-dir", "output directory (default: output)")
	fs.Var(&jsonOpt, "json", "write the build record as json")
	fs.Var(&xlsxOpt, "xlsx", "write the artifact score report as xlsx")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Defaults
	cfg := Config{
		DataPath:  filepath.Join("data", "gameData.json"),
		ScoreBase: build.BaseAtk,
		OutDir:    "output",
		JSON:      true,
	}

	// Config file (optional)
	path := strings.TrimSpace(configPath.v)
	if path == "" {
		path = "config.yaml"
	}
	fc, err := loadFileConfig(path)
	if err != nil {
		return Config{}, err
	}

	// Apply file config
	cfg.UID = strings.TrimSpace(fc.UID)
	if strings.TrimSpace(fc.DataPath) != "" {
		cfg.DataPath = strings.TrimSpace(fc.DataPath)
	}
	if fc.AvatarIdx != nil {
		cfg.AvatarIdx = *fc.AvatarIdx
	}
	if fc.AvatarID != nil {
		cfg.AvatarID = *fc.AvatarID
	}
	if strings.TrimSpace(fc.ScoreBase) != "" {
		cfg.ScoreBase = build.BaseStat(strings.TrimSpace(fc.ScoreBase))
	}
	cfg.OutPath = strings.TrimSpace(fc.OutPath)
	if strings.TrimSpace(fc.OutDir) != "" {
		cfg.OutDir = strings.TrimSpace(fc.OutDir)
	}
	if fc.JSON != nil {
		cfg.JSON = *fc.JSON
	}
	if fc.XLSX != nil {
		cfg.XLSX = *fc.XLSX
	}

	// Overlay flags (only if provided)
	if uidOpt.set {
		cfg.UID = strings.TrimSpace(uidOpt.v)
	}
	if dataPathOpt.set {
		cfg.DataPath = strings.TrimSpace(dataPathOpt.v)
	}
	if avatarOpt.set {
		cfg.AvatarIdx = avatarOpt.v
	}
	if avatarIDOpt.set {
		cfg.AvatarID = avatarIDOpt.v
	}
	if scoreBaseOpt.set {
		cfg.ScoreBase = build.BaseStat(strings.TrimSpace(scoreBaseOpt.v))
	}
	if outOpt.set {
		cfg.OutPath = strings.TrimSpace(outOpt.v)
	}
	if outDirOpt.set {
		cfg.OutDir = strings.TrimSpace(outDirOpt.v)
	}
	if jsonOpt.set {
		cfg.JSON = jsonOpt.v
	}
	if xlsxOpt.set {
		cfg.XLSX = xlsxOpt.v
	}

	if cfg.UID == "" {
		return Config{}, errors.New("missing uid (provide -uid or set uid in config.yaml)")
	}
	if !uidRe.MatchString(cfg.UID) {
		return Config{}, fmt.Errorf("invalid uid %q (expected 9 digits, e.g. 123456789)", cfg.UID)
	}
	switch cfg.ScoreBase {
	case build.BaseAtk, build.BaseHP, build.BaseDef, build.BaseER:
	default:
		return Config{}, fmt.Errorf("invalid score base %q (expected atk, hp, def or er)", cfg.ScoreBase)
	}
	if cfg.AvatarIdx < 0 {
		return Config{}, fmt.Errorf("invalid avatar index %d", cfg.AvatarIdx)
	}
	if !cfg.JSON && !cfg.XLSX {
		return Config{}, errors.New("nothing to write: both json and xlsx output disabled")
	}

	return cfg, nil
}

func loadFileConfig(path string) (FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("read config yaml %s: %w", path, err)
	}

	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return FileConfig{}, fmt.Errorf("parse config yaml %s: %w", path, err)
	}
	return fc, nil
}
