package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Catalog is the set of stat tables consulted by the engine.
//
// A Catalog is immutable after construction and safe for concurrent reads.
type Catalog struct {
	weapons    map[Weapon]WeaponDef
	armor      map[Armor]ArmorDef
	jewelry    map[Jewelry]JewelryDef
	items      map[Item]ItemDef
	conditions map[Condition]ConditionDef
	monsters   map[Monster]MonsterDef
}

// Default returns the built-in stat tables.
//
// Postcondition: Validate() returns nil on the result.
func Default() *Catalog {
	return &Catalog{
		weapons:    defaultWeapons(),
		armor:      defaultArmor(),
		jewelry:    defaultJewelry(),
		items:      defaultItems(),
		conditions: defaultConditions(),
		monsters:   defaultMonsters(),
	}
}

// Weapon returns the stat block for w, or the zero WeaponDef if w is unknown.
func (c *Catalog) Weapon(w Weapon) WeaponDef { return c.weapons[w] }

// Armor returns the stat block for a, or the zero ArmorDef if a is unknown.
func (c *Catalog) Armor(a Armor) ArmorDef { return c.armor[a] }

// Jewelry returns the stat block for j, or the zero JewelryDef if j is unknown.
func (c *Catalog) Jewelry(j Jewelry) JewelryDef { return c.jewelry[j] }

// Item returns the stat block for i, or the zero ItemDef if i is unknown.
func (c *Catalog) Item(i Item) ItemDef { return c.items[i] }

// Condition returns the stat block for cond, or the zero ConditionDef if unknown.
func (c *Catalog) Condition(cond Condition) ConditionDef { return c.conditions[cond] }

// Monster returns the stat block for m and whether it exists.
func (c *Catalog) Monster(m Monster) (MonsterDef, bool) {
	d, ok := c.monsters[m]
	return d, ok
}

// Validate checks that every enum value has a stat block and that the blocks
// satisfy their invariants.
//
// Postcondition: Returns nil iff the catalog is complete and well-formed.
func (c *Catalog) Validate() error {
	var errs []error
	for _, w := range weaponNames.values() {
		d, ok := c.weapons[w]
		if !ok {
			errs = append(errs, fmt.Errorf("weapon %s: missing stat block", w))
			continue
		}
		if len(d.Dice) == 0 {
			errs = append(errs, fmt.Errorf("weapon %s: dice must not be empty", w))
		}
	}
	for _, a := range armorNames.values() {
		d, ok := c.armor[a]
		if !ok {
			errs = append(errs, fmt.Errorf("armor %s: missing stat block", a))
			continue
		}
		if d.ArmorBonus < 0 {
			errs = append(errs, fmt.Errorf("armor %s: armor_bonus must be >= 0", a))
		}
		if d.MaxDexterityBonus != nil && *d.MaxDexterityBonus < 0 {
			errs = append(errs, fmt.Errorf("armor %s: max_dexterity_bonus must be >= 0", a))
		}
	}
	for _, j := range jewelryNames.values() {
		if _, ok := c.jewelry[j]; !ok {
			errs = append(errs, fmt.Errorf("jewelry %s: missing stat block", j))
		}
	}
	for _, cond := range conditionNames.values() {
		if _, ok := c.conditions[cond]; !ok {
			errs = append(errs, fmt.Errorf("condition %s: missing stat block", cond))
		}
	}
	for _, i := range itemNames.values() {
		d, ok := c.items[i]
		if !ok {
			errs = append(errs, fmt.Errorf("item %s: missing stat block", i))
			continue
		}
		switch d.Effect {
		case EffectCondition:
			if _, ok := c.conditions[d.Condition]; !ok {
				errs = append(errs, fmt.Errorf("item %s: unknown condition %d", i, int(d.Condition)))
			}
		case EffectHeal:
			if d.Heal <= 0 {
				errs = append(errs, fmt.Errorf("item %s: heal must be > 0", i))
			}
		case EffectProjectile:
			if len(d.Projectile.Dice) == 0 {
				errs = append(errs, fmt.Errorf("item %s: projectile dice must not be empty", i))
			}
		default:
			errs = append(errs, fmt.Errorf("item %s: unknown effect %d", i, int(d.Effect)))
		}
	}
	for _, m := range monsterNames.values() {
		d, ok := c.monsters[m]
		if !ok {
			errs = append(errs, fmt.Errorf("monster %s: missing stat block", m))
			continue
		}
		if d.Health < 1 {
			errs = append(errs, fmt.Errorf("monster %s: health must be >= 1", m))
		}
		if d.Strength < 1 || d.Dexterity < 1 || d.Constitution < 1 {
			errs = append(errs, fmt.Errorf("monster %s: ability scores must be positive", m))
		}
		if d.MainHand != nil && d.OffHand != nil && c.weapons[*d.MainHand].TwoHanded {
			errs = append(errs, fmt.Errorf("monster %s: cannot hold an off-hand weapon with a two-handed main hand", m))
		}
		if len(d.Jewelry) > 3 {
			errs = append(errs, fmt.Errorf("monster %s: at most 3 jewelry", m))
		}
	}
	return errors.Join(errs...)
}

// LoadDirectory starts from Default and overlays every stat table file found
// in dir. Recognised files are weapons.yaml, armor.yaml, jewelry.yaml,
// items.yaml, conditions.yaml and monsters.yaml; each is a mapping from the
// type name to a complete stat block. Missing files leave the defaults intact.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a validated Catalog, or an error naming the offending file.
func LoadDirectory(dir string) (*Catalog, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("reading catalog dir %q: %w", dir, err)
	}
	c := Default()
	steps := []struct {
		file  string
		apply func(*yaml.Node) error
	}{
		{"weapons.yaml", func(n *yaml.Node) error { return overlay(n, weaponNames, c.weapons) }},
		{"armor.yaml", func(n *yaml.Node) error { return overlay(n, armorNames, c.armor) }},
		{"jewelry.yaml", func(n *yaml.Node) error { return overlay(n, jewelryNames, c.jewelry) }},
		{"items.yaml", func(n *yaml.Node) error { return overlay(n, itemNames, c.items) }},
		{"conditions.yaml", func(n *yaml.Node) error { return overlay(n, conditionNames, c.conditions) }},
		{"monsters.yaml", func(n *yaml.Node) error { return overlay(n, monsterNames, c.monsters) }},
	}
	for _, s := range steps {
		path := filepath.Join(dir, s.file)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var doc yaml.Node
		if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if len(doc.Content) == 0 {
			continue
		}
		if err := s.apply(doc.Content[0]); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validating catalog from %q: %w", dir, err)
	}
	return c, nil
}

// overlay decodes a mapping node of name -> stat block into dst.
func overlay[K ~int, V any](node *yaml.Node, n names[K], dst map[K]V) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of %s names", node.Line, n.kind)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		key, err := n.parse(keyNode.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", keyNode.Line, err)
		}
		var def V
		if err := valNode.Decode(&def); err != nil {
			return fmt.Errorf("line %d: %s %s: %w", valNode.Line, n.kind, keyNode.Value, err)
		}
		dst[key] = def
	}
	return nil
}
