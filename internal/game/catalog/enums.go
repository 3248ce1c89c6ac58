package catalog

// Ability identifies one of the three combat ability scores.
type Ability int

const (
	Strength Ability = iota + 1
	Dexterity
	Constitution
)

var abilityNames = newNames("ability", map[Ability]string{
	Strength:     "strength",
	Dexterity:    "dexterity",
	Constitution: "constitution",
})

func (a Ability) String() string                { return abilityNames.name(a) }
func (a Ability) MarshalText() ([]byte, error)  { return abilityNames.marshal(a) }
func (a *Ability) UnmarshalText(b []byte) error { return unmarshalInto(abilityNames, a, b) }
func ParseAbility(s string) (Ability, error)    { return abilityNames.parse(s) }

// Class is the class tag recorded with each level-up choice.
type Class int

const (
	Fighter Class = iota + 1
	Rogue
	Wizard
	Cleric
)

var classNames = newNames("class", map[Class]string{
	Fighter: "fighter",
	Rogue:   "rogue",
	Wizard:  "wizard",
	Cleric:  "cleric",
})

func (c Class) String() string                { return classNames.name(c) }
func (c Class) MarshalText() ([]byte, error)  { return classNames.marshal(c) }
func (c *Class) UnmarshalText(b []byte) error { return unmarshalInto(classNames, c, b) }
func ParseClass(s string) (Class, error)      { return classNames.parse(s) }

// Scaling is the ability a weapon or projectile adds to its hit and damage rolls.
type Scaling int

const (
	// ScalingNone adds no ability bonus; used by spells with no physical tie.
	ScalingNone Scaling = iota
	ScalingStrength
	ScalingDexterity
	// ScalingVersatile uses whichever of strength and dexterity bonus is higher.
	ScalingVersatile
)

var scalingNames = newNames("scaling", map[Scaling]string{
	ScalingNone:      "none",
	ScalingStrength:  "strength",
	ScalingDexterity: "dexterity",
	ScalingVersatile: "versatile",
})

func (s Scaling) String() string                { return scalingNames.name(s) }
func (s Scaling) MarshalText() ([]byte, error)  { return scalingNames.marshal(s) }
func (s *Scaling) UnmarshalText(b []byte) error { return unmarshalInto(scalingNames, s, b) }
func ParseScaling(s string) (Scaling, error)    { return scalingNames.parse(s) }

// Weapon is the type tag of a weapon (shields included).
type Weapon int

const (
	Dagger Weapon = iota + 1
	Shortsword
	Longsword
	Greatsword
	Greataxe
	Club
	Shield
)

var weaponNames = newNames("weapon", map[Weapon]string{
	Dagger:     "dagger",
	Shortsword: "shortsword",
	Longsword:  "longsword",
	Greatsword: "greatsword",
	Greataxe:   "greataxe",
	Club:       "club",
	Shield:     "shield",
})

func (w Weapon) String() string                { return weaponNames.name(w) }
func (w Weapon) MarshalText() ([]byte, error)  { return weaponNames.marshal(w) }
func (w *Weapon) UnmarshalText(b []byte) error { return unmarshalInto(weaponNames, w, b) }
func ParseWeapon(s string) (Weapon, error)     { return weaponNames.parse(s) }

// Armor is the type tag of a body armor.
type Armor int

const (
	Leather Armor = iota + 1
	StuddedLeather
	ChainMail
	Plate
)

var armorNames = newNames("armor", map[Armor]string{
	Leather:        "leather",
	StuddedLeather: "studded_leather",
	ChainMail:      "chain_mail",
	Plate:          "plate",
})

func (a Armor) String() string                { return armorNames.name(a) }
func (a Armor) MarshalText() ([]byte, error)  { return armorNames.marshal(a) }
func (a *Armor) UnmarshalText(b []byte) error { return unmarshalInto(armorNames, a, b) }
func ParseArmor(s string) (Armor, error)      { return armorNames.parse(s) }

// Jewelry is the type tag of a ring or amulet.
type Jewelry int

const (
	RingOfProtection Jewelry = iota + 1
	AmuletOfWarding
)

var jewelryNames = newNames("jewelry", map[Jewelry]string{
	RingOfProtection: "ring_of_protection",
	AmuletOfWarding:  "amulet_of_warding",
})

func (j Jewelry) String() string                { return jewelryNames.name(j) }
func (j Jewelry) MarshalText() ([]byte, error)  { return jewelryNames.marshal(j) }
func (j *Jewelry) UnmarshalText(b []byte) error { return unmarshalInto(jewelryNames, j, b) }
func ParseJewelry(s string) (Jewelry, error)    { return jewelryNames.parse(s) }

// Item is the type tag of a consumable: potions, scrolls and thrown weapons.
type Item int

const (
	HealthPotion Item = iota + 1
	MinorHealthPotion
	PotionOfStrength
	ScrollOfWeakness
	ScrollOfHaste
	ScrollOfMagicMissile
	ScrollOfFireball
	ThrowingKnife
)

var itemNames = newNames("item", map[Item]string{
	HealthPotion:         "health_potion",
	MinorHealthPotion:    "minor_health_potion",
	PotionOfStrength:     "potion_of_strength",
	ScrollOfWeakness:     "scroll_of_weakness",
	ScrollOfHaste:        "scroll_of_haste",
	ScrollOfMagicMissile: "scroll_of_magic_missile",
	ScrollOfFireball:     "scroll_of_fireball",
	ThrowingKnife:        "throwing_knife",
})

func (i Item) String() string                { return itemNames.name(i) }
func (i Item) MarshalText() ([]byte, error)  { return itemNames.marshal(i) }
func (i *Item) UnmarshalText(b []byte) error { return unmarshalInto(itemNames, i, b) }
func ParseItem(s string) (Item, error)       { return itemNames.parse(s) }

// Condition is the type tag of a timed or permanent status effect.
type Condition int

const (
	Empowered Condition = iota + 1
	Weakened
	Hasted
	Stoneskin
)

var conditionNames = newNames("condition", map[Condition]string{
	Empowered: "empowered",
	Weakened:  "weakened",
	Hasted:    "hasted",
	Stoneskin: "stoneskin",
})

func (c Condition) String() string                { return conditionNames.name(c) }
func (c Condition) MarshalText() ([]byte, error)  { return conditionNames.marshal(c) }
func (c *Condition) UnmarshalText(b []byte) error { return unmarshalInto(conditionNames, c, b) }
func ParseCondition(s string) (Condition, error)  { return conditionNames.parse(s) }

// Monster is the type tag of a monster variant.
type Monster int

const (
	TestMonster Monster = iota + 1
	Goblin
	Slime
	Orc
	Skeleton
	Bandit
)

var monsterNames = newNames("monster", map[Monster]string{
	TestMonster: "test_monster",
	Goblin:      "goblin",
	Slime:       "slime",
	Orc:         "orc",
	Skeleton:    "skeleton",
	Bandit:      "bandit",
})

func (m Monster) String() string                { return monsterNames.name(m) }
func (m Monster) MarshalText() ([]byte, error)  { return monsterNames.marshal(m) }
func (m *Monster) UnmarshalText(b []byte) error { return unmarshalInto(monsterNames, m, b) }
func ParseMonster(s string) (Monster, error)    { return monsterNames.parse(s) }

// Monsters returns every monster type in declaration order.
func Monsters() []Monster { return monsterNames.values() }

// Effect is the kind of effect a consumable item has when used.
type Effect int

const (
	// EffectCondition applies the item's condition to the user or target.
	EffectCondition Effect = iota + 1
	// EffectHeal restores a flat amount of health to the user or target.
	EffectHeal
	// EffectProjectile makes an attack with the item's fixed stats.
	EffectProjectile
)

var effectNames = newNames("effect", map[Effect]string{
	EffectCondition:  "condition",
	EffectHeal:       "heal",
	EffectProjectile: "projectile",
})

func (e Effect) String() string                { return effectNames.name(e) }
func (e Effect) MarshalText() ([]byte, error)  { return effectNames.marshal(e) }
func (e *Effect) UnmarshalText(b []byte) error { return unmarshalInto(effectNames, e, b) }

func unmarshalInto[T ~int](n names[T], dst *T, b []byte) error {
	v, err := n.parse(string(b))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
