package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KouSug/G-I-buildcard/internal/build"
	"github.com/KouSug/G-I-buildcard/internal/config"
	"github.com/KouSug/G-I-buildcard/internal/enka"
	"github.com/KouSug/G-I-buildcard/internal/gamedata"
	"github.com/KouSug/G-I-buildcard/internal/output"
	"github.com/KouSug/G-I-buildcard/internal/score"
)

const userAgent = "G-I-buildcard/1.0"

func Run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := gamedata.Load(cfg.DataPath)
	if err != nil {
		return err
	}

	client := enka.NewClient(userAgent)
	snap, err := client.FetchSnapshot(ctx, cfg.UID)
	if err != nil {
		return err
	}
	if len(snap.AvatarInfoList) == 0 {
		return fmt.Errorf("uid %s has no public character details", cfg.UID)
	}

	avatar, err := pickAvatar(snap.AvatarInfoList, cfg)
	if err != nil {
		return err
	}

	n := build.NewNormalizer(db, log)
	b := n.Normalize(avatar, build.NewBuild())
	b.ScoreBase = cfg.ScoreBase

	total := score.TotalScore(b.Artifacts, b.ScoreBase)
	rank := score.TotalRank(total)
	log.Info("build normalized",
		zap.String("character", b.Character.Name),
		zap.Int("level", b.Character.Level),
		zap.Float64("totalScore", total),
		zap.String("rank", rank.Label),
	)

	base := outputBase(snap, b)
	if cfg.JSON {
		path, err := outPath(cfg, base, ".json")
		if err != nil {
			return err
		}
		if err := output.WriteBuildJSON(path, b); err != nil {
			return err
		}
		fmt.Printf("Wrote build record to %s\n", path)
	}
	if cfg.XLSX {
		path, err := outPath(cfg, base, ".xlsx")
		if err != nil {
			return err
		}
		if err := output.ExportScoreXLSX(path, b); err != nil {
			return err
		}
		fmt.Printf("Wrote score report to %s\n", path)
	}

	return nil
}

func pickAvatar(list []enka.AvatarInfo, cfg config.Config) (enka.AvatarInfo, error) {
	if cfg.AvatarID != 0 {
		for _, a := range list {
			if a.AvatarID == cfg.AvatarID {
				return a, nil
			}
		}
		return enka.AvatarInfo{}, fmt.Errorf("avatar id %d not in snapshot (%d avatars shown)", cfg.AvatarID, len(list))
	}
	if cfg.AvatarIdx >= len(list) {
		return enka.AvatarInfo{}, fmt.Errorf("avatar index %d out of range (%d avatars shown)", cfg.AvatarIdx, len(list))
	}
	return list[cfg.AvatarIdx], nil
}

func outputBase(snap *enka.Snapshot, b build.BuildData) string {
	name := safeFilename(b.Character.Name)
	if name == "" {
		name = "build"
	}
	player := ""
	if snap.PlayerInfo != nil {
		player = safeFilename(snap.PlayerInfo.Nickname)
	}
	if player != "" {
		return player + "_" + name
	}
	return name
}

func outPath(cfg config.Config, base, ext string) (string, error) {
	path := strings.TrimSpace(cfg.OutPath)
	if path == "" {
		date := time.Now().Format("20060102")
		path = filepath.Join(cfg.OutDir, fmt.Sprintf("%s_%s%s", date, base, ext))
	} else if !strings.HasSuffix(path, ext) {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ext
	}
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return path, nil
}

func safeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	// Windows reserved characters: < > : " / \ | ? *
	name = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		}
		if r < 32 {
			return '_'
		}
		return r
	}, name)

	// Collapse whitespace to underscores to avoid weird paths.
	fields := strings.Fields(name)
	name = strings.Join(fields, "_")
	name = strings.Trim(name, ". ")
	if name == "." || name == ".." {
		return ""
	}
	return name
}
