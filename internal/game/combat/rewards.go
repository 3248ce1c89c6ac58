package combat

import (
	"go.uber.org/zap"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/dice"
)

// distributeRewards ends the encounter: the gold of every dead participant is
// pooled and split evenly across the survivors, every piece of their gear is
// handed to a random survivor, and everyone leaves the fight.
//
// Loot given to a monster is discarded. The remainder of the gold split is
// discarded.
func (r *Resolver) distributeRewards(s *State, out *Outcome) {
	survivors := s.Survivors()
	out.Resolved = true
	if len(survivors) > 0 {
		out.Winner = survivors[0].Party
	}

	pool := 0
	var dead []*character.Character
	for _, id := range s.Encounter.Dead {
		c, ok := s.Characters[id]
		if !ok {
			continue
		}
		dead = append(dead, c)
		pool += c.Gold
		c.Gold = 0
	}
	if len(survivors) > 0 && pool > 0 {
		share := pool / len(survivors)
		for _, c := range survivors {
			if share == 0 {
				break
			}
			c.Gold += share
			r.emit(out, Event{Kind: EventGoldReceived, Target: c.ID, TargetName: c.Name, Amount: share})
		}
	}

	loot := make(map[string]*character.Inventory, len(survivors))
	for _, d := range dead {
		gear := d.StripGear()
		if len(survivors) == 0 {
			continue
		}
		for _, w := range gear.Weapons {
			if rc := r.recipient(survivors, loot); rc != nil {
				rc.Weapons = append(rc.Weapons, w)
			}
		}
		for _, a := range gear.Armor {
			if rc := r.recipient(survivors, loot); rc != nil {
				rc.Armor = append(rc.Armor, a)
			}
		}
		for _, j := range gear.Jewelry {
			if rc := r.recipient(survivors, loot); rc != nil {
				rc.Jewelry = append(rc.Jewelry, j)
			}
		}
		for _, it := range gear.Items {
			if rc := r.recipient(survivors, loot); rc != nil {
				rc.Items = append(rc.Items, it)
			}
		}
	}
	for _, c := range survivors {
		got, ok := loot[c.ID]
		if !ok || got.Empty() {
			continue
		}
		c.Inventory.Weapons = append(c.Inventory.Weapons, got.Weapons...)
		c.Inventory.Armor = append(c.Inventory.Armor, got.Armor...)
		c.Inventory.Jewelry = append(c.Inventory.Jewelry, got.Jewelry...)
		c.Inventory.Items = append(c.Inventory.Items, got.Items...)
		r.emit(out, Event{Kind: EventLootReceived, Target: c.ID, TargetName: c.Name, Loot: *got})
	}

	for _, c := range survivors {
		c.Status = character.StatusQuesting
		c.EncounterID = ""
	}
	for _, c := range dead {
		c.Status = character.StatusIdle
		c.EncounterID = ""
	}

	r.logger.Info("encounter resolved",
		zap.String("encounter_id", s.Encounter.ID),
		zap.String("party", out.Winner),
		zap.Int("survivors", len(survivors)),
	)
	r.emit(out, Event{Kind: EventEncounterResolved, Party: out.Winner})
}

// recipient picks one survivor uniformly at random for a unit of loot and
// returns the bucket to add it to, or nil when a monster was picked.
func (r *Resolver) recipient(survivors []*character.Character, loot map[string]*character.Inventory) *character.Inventory {
	c := dice.Pick(r.roller, survivors)
	if !c.IsPlayer() {
		return nil
	}
	inv, ok := loot[c.ID]
	if !ok {
		inv = &character.Inventory{}
		loot[c.ID] = inv
	}
	return inv
}
