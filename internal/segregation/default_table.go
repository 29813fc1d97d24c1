package segregation

// DefaultMinDistance is the surface-to-surface separation, in millimetres,
// applied wherever a SEPARATED rule does not carry its own distance and to
// every class pair not listed in the table.
const DefaultMinDistance = 3000

// DefaultTable returns a conservative class-pair matrix covering the common
// road-transport hazard classes. It follows the structural pattern of the
// published segregation tables (fire risks banned from oxidizers, explosives
// banned from almost everything, toxic gases kept off flammables) but is a
// demonstration default: operators carrying dangerous goods under a specific
// code (ADG, IMDG) must load the matching table via LoadTable. Pairs absent
// here resolve to SEPARATED at DefaultMinDistance, never to permissive.
func DefaultTable() *Table {
	rules := []Rule{
		// Explosives travel alone.
		{ClassA: "1", ClassB: "1", Relation: RelationSeparated},
		{ClassA: "1", ClassB: "2.1", Relation: RelationForbidden},
		{ClassA: "1", ClassB: "2.2", Relation: RelationSeparated},
		{ClassA: "1", ClassB: "2.3", Relation: RelationForbidden},
		{ClassA: "1", ClassB: "3", Relation: RelationForbidden},
		{ClassA: "1", ClassB: "4.1", Relation: RelationForbidden},
		{ClassA: "1", ClassB: "4.2", Relation: RelationForbidden},
		{ClassA: "1", ClassB: "4.3", Relation: RelationForbidden},
		{ClassA: "1", ClassB: "5.1", Relation: RelationForbidden},
		{ClassA: "1", ClassB: "5.2", Relation: RelationForbidden},
		{ClassA: "1", ClassB: "6.1", Relation: RelationForbidden},
		{ClassA: "1", ClassB: "8", Relation: RelationForbidden},
		{ClassA: "1", ClassB: "9", Relation: RelationSeparated},

		// Gases.
		{ClassA: "2.1", ClassB: "2.1", Relation: RelationNone},
		{ClassA: "2.1", ClassB: "2.2", Relation: RelationNone},
		{ClassA: "2.1", ClassB: "2.3", Relation: RelationAwayFrom},
		{ClassA: "2.1", ClassB: "3", Relation: RelationAwayFrom},
		{ClassA: "2.1", ClassB: "4.2", Relation: RelationSeparated},
		{ClassA: "2.1", ClassB: "5.1", Relation: RelationSeparated},
		{ClassA: "2.1", ClassB: "5.2", Relation: RelationSeparated},
		{ClassA: "2.1", ClassB: "9", Relation: RelationNone},
		{ClassA: "2.2", ClassB: "2.2", Relation: RelationNone},
		{ClassA: "2.2", ClassB: "2.3", Relation: RelationNone},
		{ClassA: "2.2", ClassB: "3", Relation: RelationNone},
		{ClassA: "2.2", ClassB: "6.1", Relation: RelationNone},
		{ClassA: "2.2", ClassB: "8", Relation: RelationNone},
		{ClassA: "2.2", ClassB: "9", Relation: RelationNone},
		{ClassA: "2.3", ClassB: "2.3", Relation: RelationNone},
		{ClassA: "2.3", ClassB: "3", Relation: RelationAwayFrom},
		{ClassA: "2.3", ClassB: "4.1", Relation: RelationAwayFrom},
		{ClassA: "2.3", ClassB: "4.2", Relation: RelationAwayFrom},
		{ClassA: "2.3", ClassB: "4.3", Relation: RelationAwayFrom},
		{ClassA: "2.3", ClassB: "5.1", Relation: RelationSeparated},
		{ClassA: "2.3", ClassB: "8", Relation: RelationAwayFrom},

		// Flammable liquids: strict fire-risk/oxidizer segregation.
		{ClassA: "3", ClassB: "3", Relation: RelationNone},
		{ClassA: "3", ClassB: "4.2", Relation: RelationAwayFrom},
		{ClassA: "3", ClassB: "5.1", Relation: RelationForbidden},
		{ClassA: "3", ClassB: "5.2", Relation: RelationForbidden},
		{ClassA: "3", ClassB: "6.1", Relation: RelationAwayFrom},
		{ClassA: "3", ClassB: "8", Relation: RelationNone},
		{ClassA: "3", ClassB: "9", Relation: RelationNone},

		// Flammable solids and friends.
		{ClassA: "4.1", ClassB: "4.1", Relation: RelationNone},
		{ClassA: "4.1", ClassB: "5.1", Relation: RelationSeparated},
		{ClassA: "4.1", ClassB: "5.2", Relation: RelationForbidden},
		{ClassA: "4.1", ClassB: "9", Relation: RelationNone},
		{ClassA: "4.2", ClassB: "4.2", Relation: RelationNone},
		{ClassA: "4.2", ClassB: "5.1", Relation: RelationForbidden},
		{ClassA: "4.2", ClassB: "5.2", Relation: RelationForbidden},
		{ClassA: "4.2", ClassB: "8", Relation: RelationAwayFrom},
		{ClassA: "4.3", ClassB: "4.3", Relation: RelationNone},
		{ClassA: "4.3", ClassB: "5.1", Relation: RelationSeparated},
		{ClassA: "4.3", ClassB: "5.2", Relation: RelationSeparated},
		{ClassA: "4.3", ClassB: "8", Relation: RelationSeparated},

		// Oxidizers and organic peroxides.
		{ClassA: "5.1", ClassB: "5.1", Relation: RelationNone},
		{ClassA: "5.1", ClassB: "5.2", Relation: RelationSeparated},
		{ClassA: "5.1", ClassB: "6.1", Relation: RelationAwayFrom},
		{ClassA: "5.1", ClassB: "8", Relation: RelationSeparated},
		{ClassA: "5.2", ClassB: "5.2", Relation: RelationSeparated},
		{ClassA: "5.2", ClassB: "6.1", Relation: RelationSeparated},
		{ClassA: "5.2", ClassB: "8", Relation: RelationSeparated},
		{ClassA: "5.2", ClassB: "9", Relation: RelationAwayFrom},

		// Toxics, corrosives, miscellaneous.
		{ClassA: "6.1", ClassB: "6.1", Relation: RelationNone},
		{ClassA: "6.1", ClassB: "8", Relation: RelationNone},
		{ClassA: "6.1", ClassB: "9", Relation: RelationNone},
		{ClassA: "8", ClassB: "8", Relation: RelationNone},
		{ClassA: "8", ClassB: "9", Relation: RelationNone},
		{ClassA: "9", ClassB: "9", Relation: RelationNone},
	}
	return NewTable(rules, DefaultMinDistance)
}
