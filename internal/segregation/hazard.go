// Package segregation implements dangerous-goods compatibility checks between
// cargo items: which hazard classes may travel together, which must keep a
// minimum distance, and which may never share a vehicle. The rule table is an
// explicit input so a single process can serve several regulatory regimes
// side by side.
package segregation

import "strings"

// PackingGroup indicates the degree of danger within a hazard class.
type PackingGroup string

const (
	PackingGroupI   PackingGroup = "I"
	PackingGroupII  PackingGroup = "II"
	PackingGroupIII PackingGroup = "III"
)

func ValidPackingGroup(s string) bool {
	switch PackingGroup(s) {
	case PackingGroupI, PackingGroupII, PackingGroupIII:
		return true
	}
	return false
}

// Hazard is the dangerous-goods descriptor carried by a cargo item.
type Hazard struct {
	UNNumber       string
	Class          string
	SubsidiaryRisk string
	PackingGroup   PackingGroup
}

// Classes returns the primary hazard class followed by any subsidiary risk
// classes. Subsidiary risks are comma separated in transport documentation.
func (h Hazard) Classes() []string {
	classes := []string{h.Class}
	for _, sub := range strings.Split(h.SubsidiaryRisk, ",") {
		sub = strings.TrimSpace(sub)
		if sub != "" && sub != h.Class {
			classes = append(classes, sub)
		}
	}
	return classes
}
