package catalog

import "github.com/SofusA/cli-dungeon-sub000/internal/game/dice"

func intPtr(v int) *int { return &v }

func weaponPtr(w Weapon) *Weapon { return &w }

func armorPtr(a Armor) *Armor { return &a }

func defaultWeapons() map[Weapon]WeaponDef {
	return map[Weapon]WeaponDef{
		Dagger: {
			Name:        "Dagger",
			WeaponStats: WeaponStats{Dice: []dice.Die{dice.D4}, Scaling: ScalingVersatile},
			Cost:        2,
		},
		Shortsword: {
			Name:        "Shortsword",
			WeaponStats: WeaponStats{Dice: []dice.Die{dice.D6}, Scaling: ScalingVersatile},
			Cost:        10,
		},
		Longsword: {
			Name:        "Longsword",
			WeaponStats: WeaponStats{Dice: []dice.Die{dice.D8}, Scaling: ScalingStrength},
			Cost:        15,
		},
		Greatsword: {
			Name:        "Greatsword",
			WeaponStats: WeaponStats{Dice: []dice.Die{dice.D6, dice.D6}, Scaling: ScalingStrength},
			TwoHanded:   true,
			Cost:        50,
		},
		Greataxe: {
			Name:        "Greataxe",
			WeaponStats: WeaponStats{Dice: []dice.Die{dice.D10}, AttackBonus: 1, Scaling: ScalingStrength},
			TwoHanded:   true,
			Cost:        30,
		},
		Club: {
			Name:        "Club",
			WeaponStats: WeaponStats{Dice: []dice.Die{dice.D4}, Scaling: ScalingStrength},
			Cost:        1,
		},
		Shield: {
			Name:        "Shield",
			WeaponStats: WeaponStats{Dice: []dice.Die{dice.D4}, Scaling: ScalingStrength},
			ArmorBonus:  2,
			Cost:        10,
		},
	}
}

func defaultArmor() map[Armor]ArmorDef {
	return map[Armor]ArmorDef{
		Leather: {
			Name:       "Leather armor",
			ArmorBonus: 1,
			Cost:       10,
		},
		StuddedLeather: {
			Name:       "Studded leather armor",
			ArmorBonus: 2,
			Cost:       45,
		},
		ChainMail: {
			Name:                "Chain mail",
			ArmorBonus:          6,
			MaxDexterityBonus:   intPtr(0),
			StrengthRequirement: 13,
			Cost:                75,
		},
		Plate: {
			Name:                "Plate armor",
			ArmorBonus:          8,
			MaxDexterityBonus:   intPtr(0),
			StrengthRequirement: 15,
			Cost:                1500,
		},
	}
}

func defaultJewelry() map[Jewelry]JewelryDef {
	return map[Jewelry]JewelryDef{
		RingOfProtection: {Name: "Ring of protection", ArmorBonus: 1, Cost: 100},
		AmuletOfWarding:  {Name: "Amulet of warding", ArmorBonus: 1, Cost: 150},
	}
}

func defaultConditions() map[Condition]ConditionDef {
	return map[Condition]ConditionDef{
		Empowered: {Name: "Empowered", Deltas: AbilityDeltas{Strength: 4}},
		Weakened:  {Name: "Weakened", Deltas: AbilityDeltas{Strength: -4}},
		Hasted:    {Name: "Hasted", Deltas: AbilityDeltas{Dexterity: 4}},
		Stoneskin: {Name: "Stoneskin", Deltas: AbilityDeltas{Constitution: 2}},
	}
}

func defaultItems() map[Item]ItemDef {
	return map[Item]ItemDef{
		HealthPotion:      {Name: "Health potion", Effect: EffectHeal, Heal: 10, Cost: 50},
		MinorHealthPotion: {Name: "Minor health potion", Effect: EffectHeal, Heal: 5, Cost: 20},
		PotionOfStrength: {
			Name: "Potion of strength", Effect: EffectCondition,
			Condition: Empowered, Duration: intPtr(3), Cost: 60,
		},
		ScrollOfWeakness: {
			Name: "Scroll of weakness", Effect: EffectCondition,
			Condition: Weakened, Duration: intPtr(2), Cost: 60,
		},
		ScrollOfHaste: {
			Name: "Scroll of haste", Effect: EffectCondition,
			Condition: Hasted, Duration: intPtr(3), Cost: 80,
		},
		ScrollOfMagicMissile: {
			Name: "Scroll of magic missile", Effect: EffectProjectile,
			Projectile: WeaponStats{Dice: []dice.Die{dice.D4, dice.D4, dice.D4}, AttackBonus: 3, HitBonus: 5, Scaling: ScalingNone},
			Cost:       40,
		},
		ScrollOfFireball: {
			Name: "Scroll of fireball", Effect: EffectProjectile,
			Projectile: WeaponStats{Dice: []dice.Die{dice.D6, dice.D6, dice.D6}, HitBonus: 2, Scaling: ScalingNone},
			Cost:       120,
		},
		ThrowingKnife: {
			Name: "Throwing knife", Effect: EffectProjectile,
			Projectile: WeaponStats{Dice: []dice.Die{dice.D4}, Scaling: ScalingDexterity},
			Cost:       3,
		},
	}
}

func defaultMonsters() map[Monster]MonsterDef {
	return map[Monster]MonsterDef{
		TestMonster: {
			Name: "Test monster", Level: 0, Health: 1,
			Strength: 10, Dexterity: 10, Constitution: 10,
		},
		Goblin: {
			Name: "Goblin", Level: 0, Health: 7,
			Strength: 8, Dexterity: 14, Constitution: 10,
			MainHand: weaponPtr(Dagger), Armor: armorPtr(Leather),
			Gold: 5, Items: []Item{MinorHealthPotion},
		},
		Slime: {
			Name: "Slime", Level: 0, Health: 10,
			Strength: 12, Dexterity: 6, Constitution: 14,
			Gold: 2,
		},
		Orc: {
			Name: "Orc", Level: 1, Health: 15,
			Strength: 16, Dexterity: 12, Constitution: 16,
			MainHand: weaponPtr(Greataxe), Armor: armorPtr(StuddedLeather),
			Gold: 12, Items: []Item{HealthPotion},
		},
		Skeleton: {
			Name: "Skeleton", Level: 1, Health: 13,
			Strength: 10, Dexterity: 14, Constitution: 14,
			MainHand: weaponPtr(Shortsword), OffHand: weaponPtr(Dagger),
			Gold: 3, Items: []Item{ThrowingKnife},
		},
		Bandit: {
			Name: "Bandit", Level: 0, Health: 11,
			Strength: 11, Dexterity: 12, Constitution: 12,
			MainHand: weaponPtr(Longsword), OffHand: weaponPtr(Shield), Armor: armorPtr(Leather),
			Gold: 20, Items: []Item{MinorHealthPotion},
		},
	}
}
