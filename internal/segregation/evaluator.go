package segregation

import (
	"fmt"

	"loadplan/internal/geometry"
)

// Result is the outcome of a pairwise compatibility check.
type Result struct {
	OK     bool
	Rule   Rule
	Reason string
}

// Evaluator answers whether two placed items are compatible under a rule
// table. It is a pure function of the table and the geometry passed in, holds
// no mutable state, and is safe for concurrent use.
type Evaluator struct {
	table *Table
}

func NewEvaluator(table *Table) *Evaluator {
	return &Evaluator{table: table}
}

func (e *Evaluator) Table() *Table {
	return e.table
}

// Relation returns the governing rule for two hazards: the most severe
// relation across every primary/subsidiary class pairing.
func (e *Evaluator) Relation(a, b Hazard) Rule {
	var worst Rule
	worst.Relation = RelationNone
	for _, ca := range a.Classes() {
		for _, cb := range b.Classes() {
			r := e.table.Lookup(ca, cb)
			if r.Relation > worst.Relation ||
				(r.Relation == RelationSeparated && worst.Relation == RelationSeparated && r.MinDistance > worst.MinDistance) {
				worst = r
			}
		}
	}
	return worst
}

// Check evaluates two items at their actual relative positions. Items without
// a dangerous-goods descriptor are always compatible. eps is the geometric
// tolerance used for face-contact detection.
func (e *Evaluator) Check(a *Hazard, boxA geometry.Box, b *Hazard, boxB geometry.Box, eps float64) Result {
	if a == nil || b == nil {
		return Result{OK: true}
	}
	rule := e.Relation(*a, *b)
	switch rule.Relation {
	case RelationNone:
		return Result{OK: true, Rule: rule}
	case RelationForbidden:
		return Result{
			OK:     false,
			Rule:   rule,
			Reason: fmt.Sprintf("classes %s and %s may not be loaded in the same vehicle", rule.ClassA, rule.ClassB),
		}
	case RelationSeparated:
		if d := geometry.SurfaceDistance(boxA, boxB); d < rule.MinDistance-eps {
			return Result{
				OK:   false,
				Rule: rule,
				Reason: fmt.Sprintf("classes %s and %s require %.0f separation, placed %.0f apart",
					rule.ClassA, rule.ClassB, rule.MinDistance, d),
			}
		}
		return Result{OK: true, Rule: rule}
	case RelationAwayFrom:
		if geometry.SharesFace(boxA, boxB, eps) || geometry.Intersects(boxA, boxB, eps) {
			return Result{
				OK:     false,
				Rule:   rule,
				Reason: fmt.Sprintf("classes %s and %s may not be in direct contact", rule.ClassA, rule.ClassB),
			}
		}
		return Result{OK: true, Rule: rule}
	}
	return Result{OK: true, Rule: rule}
}
