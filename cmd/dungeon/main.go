// Package main runs one dungeon encounter: a player character, driven by a
// Lua decision script, fights a party of catalog monsters until one side is
// left standing.
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SofusA/cli-dungeon-sub000/internal/config"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/combat"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/dice"
	"github.com/SofusA/cli-dungeon-sub000/internal/gameserver"
	"github.com/SofusA/cli-dungeon-sub000/internal/observability"
	"github.com/SofusA/cli-dungeon-sub000/internal/scripting"
)

//go:embed default.lua
var defaultScript string

func main() {
	os.Exit(run(os.Args[1:]))
}

// run plays one quest and returns the process exit code. Every failure after
// the logger exists is logged and returned so deferred cleanup still runs.
func run(args []string) int {
	start := time.Now()

	fs := flag.NewFlagSet("dungeon", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to configuration file; empty = defaults and environment")
	playerID := fs.String("player", "", "id of an existing player; empty creates a new one")
	secret := fs.String("secret", "", "secret of the player; generated for new players when empty")
	name := fs.String("name", "Adventurer", "name of a new player")
	str := fs.Int("str", 12, "strength of a new player")
	dex := fs.Int("dex", 12, "dexterity of a new player")
	con := fs.Int("con", 12, "constitution of a new player")
	weapon := fs.String("weapon", "shortsword", "starting weapon of a new player; empty for none")
	monsters := fs.String("monsters", "goblin", "comma-separated monsters to fight")
	maxTurns := fs.Int("max-turns", 200, "give up after this many player turns")
	migrate := fs.Bool("migrate", false, "apply database migrations before connecting (postgres backend)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("loading config: %v", err)
		return 1
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Printf("initializing logger: %v", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()
	fail := func(msg string, fields ...zap.Field) int {
		logger.Error(msg, fields...)
		return 1
	}

	cat := catalog.Default()
	if cfg.Game.CatalogDir != "" {
		cat, err = catalog.LoadDirectory(cfg.Game.CatalogDir)
		if err != nil {
			return fail("loading catalog", zap.Error(err))
		}
	}

	src := dice.NewCryptoSource()
	if cfg.Game.Seed != 0 {
		src = dice.NewSeededSource(cfg.Game.Seed)
	}
	roller := dice.NewLoggedRoller(src, logger)

	st, err := openStores(ctx, cfg, *migrate, logger)
	if err != nil {
		return fail("opening storage", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	defer st.close()

	engine := gameserver.NewEngine(st.characters, st.encounters,
		combat.NewResolver(cat, roller, logger),
		combat.NewMonsterPolicy(cat, roller, cfg.Game.LowHealthThreshold),
		logger)
	service := gameserver.NewService(engine, cfg.Game.BcryptCost, logger)

	decider, err := loadDecider(cfg.Game, cat, roller, logger)
	if err != nil {
		return fail("loading decision script", zap.Error(err))
	}
	defer decider.Close()

	foes, err := parseMonsters(*monsters)
	if err != nil {
		return fail("parsing monsters", zap.Error(err))
	}

	id, pass := *playerID, *secret
	if id == "" {
		if pass == "" {
			pass = uuid.New().String()
		}
		id, err = newPlayer(ctx, service, *name, pass, character.Scores{
			Strength:     character.Strength(*str),
			Dexterity:    character.Dexterity(*dex),
			Constitution: character.Constitution(*con),
		}, *weapon)
		if err != nil {
			return fail("creating player", zap.Error(err))
		}
		fmt.Printf("created %s (id %s, secret %s)\n", *name, id, pass)
	}

	logger.Info("dungeon ready",
		zap.String("backend", cfg.Storage.Backend),
		zap.Duration("elapsed", time.Since(start)),
	)

	res, err := engine.StartQuest(ctx, id, pass, foes...)
	if err != nil {
		return fail("starting quest", zap.Error(err))
	}
	report(res)

	for turns := 0; !res.Resolved; turns++ {
		if turns == *maxTurns {
			return fail("turn limit reached", zap.Int("turns", turns))
		}
		res, err = engine.PlayTurn(ctx, id, pass, decider)
		if errors.Is(err, combat.ErrDead) || errors.Is(err, combat.ErrNotFighting) {
			break
		}
		if err != nil {
			return fail("playing turn", zap.Error(err))
		}
		report(res)
	}

	p, err := service.Character(ctx, id)
	if err != nil {
		return fail("loading player", zap.Error(err))
	}
	fmt.Printf("%s: health %d/%d, gold %d, experience %d, status %s\n",
		p.Name, p.Health, p.MaxHealth(cat), p.Gold, p.Experience, p.Status)
	return 0
}

func loadDecider(g config.GameConfig, cat *catalog.Catalog, roller *dice.Roller, logger *zap.Logger) (*scripting.LuaDecider, error) {
	if g.Script == "" {
		return scripting.NewLuaDecider(defaultScript, cat, roller, g.ScriptInstructionLimit, logger)
	}
	return scripting.LoadLuaDecider(g.Script, cat, roller, g.ScriptInstructionLimit, logger)
}

func parseMonsters(list string) ([]catalog.Monster, error) {
	var out []catalog.Monster
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		m, err := catalog.ParseMonster(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// newPlayer creates a player with a healing potion and, if weapon is set,
// that weapon in the main hand.
func newPlayer(ctx context.Context, svc *gameserver.Service, name, secret string, scores character.Scores, weapon string) (string, error) {
	p, err := svc.CreatePlayer(ctx, name, secret, scores)
	if err != nil {
		return "", err
	}
	kit := character.Inventory{Items: []catalog.Item{catalog.HealthPotion}}
	var w catalog.Weapon
	if weapon != "" {
		if w, err = catalog.ParseWeapon(weapon); err != nil {
			return "", err
		}
		kit.Weapons = []catalog.Weapon{w}
	}
	if _, err := svc.Give(ctx, p.ID, kit); err != nil {
		return "", err
	}
	if weapon != "" {
		if _, err := svc.EquipMainHand(ctx, p.ID, secret, w); err != nil {
			return "", err
		}
	}
	return p.ID, nil
}

func report(res *gameserver.TurnResult) {
	for _, e := range res.Events {
		fmt.Println(e.String())
	}
}
