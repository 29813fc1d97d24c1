package segregation

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Relation is the required segregation between two hazard classes, ordered by
// severity: a higher value always dominates when several class pairs apply.
type Relation int

const (
	// RelationNone permits co-loading without restriction.
	RelationNone Relation = iota
	// RelationAwayFrom forbids direct contact between the two boxes.
	RelationAwayFrom
	// RelationSeparated requires a minimum surface-to-surface distance.
	RelationSeparated
	// RelationForbidden bans co-loading in the same vehicle outright.
	RelationForbidden
)

func (r Relation) String() string {
	switch r {
	case RelationNone:
		return "NONE"
	case RelationAwayFrom:
		return "AWAY_FROM"
	case RelationSeparated:
		return "SEPARATED"
	case RelationForbidden:
		return "FORBIDDEN"
	}
	return "UNKNOWN"
}

// Rule binds an unordered class pair to a relation. MinDistance only applies
// to RelationSeparated.
type Rule struct {
	ClassA      string
	ClassB      string
	Relation    Relation
	MinDistance float64
}

// Table is a symmetric, closed segregation matrix. A pair with no explicit
// rule resolves to SEPARATED at the table's default distance rather than to
// permissive: an unknown combination is treated as the most restrictive
// plausible one.
type Table struct {
	rules           map[[2]string]Rule
	classes         map[string]struct{}
	defaultDistance float64
}

// NewTable builds a table from explicit rules. The class universe is the set
// of classes named by the rules; Known reports membership.
func NewTable(rules []Rule, defaultDistance float64) *Table {
	t := &Table{
		rules:           make(map[[2]string]Rule, len(rules)),
		classes:         make(map[string]struct{}),
		defaultDistance: defaultDistance,
	}
	for _, r := range rules {
		t.classes[r.ClassA] = struct{}{}
		t.classes[r.ClassB] = struct{}{}
		if r.Relation == RelationSeparated && r.MinDistance <= 0 {
			r.MinDistance = defaultDistance
		}
		t.rules[pairKey(r.ClassA, r.ClassB)] = r
	}
	return t
}

func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

// Known reports whether class appears anywhere in the table.
func (t *Table) Known(class string) bool {
	_, ok := t.classes[class]
	return ok
}

// KnownClasses returns the table's class universe in sorted order.
func (t *Table) KnownClasses() []string {
	out := make([]string, 0, len(t.classes))
	for c := range t.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// DefaultDistance is the separation applied to pairs without an explicit rule.
func (t *Table) DefaultDistance() float64 {
	return t.defaultDistance
}

// Lookup returns the rule governing the unordered pair (a, b). Missing pairs
// resolve to SEPARATED at the default distance.
func (t *Table) Lookup(a, b string) Rule {
	if r, ok := t.rules[pairKey(a, b)]; ok {
		return r
	}
	return Rule{ClassA: a, ClassB: b, Relation: RelationSeparated, MinDistance: t.defaultDistance}
}

// Restrictive reports whether class participates in any FORBIDDEN or
// SEPARATED rule. With the conservative closure every hazard class is at
// least SEPARATED from some other, so this is true for all known classes and
// is used by the packer to bias hazard-bearing items earlier.
func (t *Table) Restrictive(class string) bool {
	if !t.Known(class) {
		return true
	}
	for other := range t.classes {
		if r := t.Lookup(class, other); r.Relation >= RelationSeparated {
			return true
		}
	}
	return false
}

type tableFile struct {
	DefaultMinDistance float64 `yaml:"default_min_distance"`
	Rules              []struct {
		Classes     []string `yaml:"classes"`
		Relation    string   `yaml:"relation"`
		MinDistance float64  `yaml:"min_distance"`
	} `yaml:"rules"`
}

// LoadTable parses a YAML segregation table, the mechanism for supplying
// regime-specific matrices (ADG, IMDG) instead of the built-in default.
func LoadTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read segregation table: %w", err)
	}
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse segregation table: %w", err)
	}
	if f.DefaultMinDistance <= 0 {
		return nil, fmt.Errorf("segregation table: default_min_distance must be positive")
	}
	rules := make([]Rule, 0, len(f.Rules))
	for i, fr := range f.Rules {
		if len(fr.Classes) != 2 {
			return nil, fmt.Errorf("segregation table: rule %d must name exactly two classes", i)
		}
		rel, err := parseRelation(fr.Relation)
		if err != nil {
			return nil, fmt.Errorf("segregation table: rule %d: %w", i, err)
		}
		rules = append(rules, Rule{
			ClassA:      fr.Classes[0],
			ClassB:      fr.Classes[1],
			Relation:    rel,
			MinDistance: fr.MinDistance,
		})
	}
	return NewTable(rules, f.DefaultMinDistance), nil
}

func parseRelation(s string) (Relation, error) {
	switch s {
	case "none":
		return RelationNone, nil
	case "away_from":
		return RelationAwayFrom, nil
	case "separated":
		return RelationSeparated, nil
	case "forbidden":
		return RelationForbidden, nil
	}
	return 0, fmt.Errorf("unknown relation %q", s)
}
