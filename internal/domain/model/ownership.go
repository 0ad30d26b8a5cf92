package model

// OwnershipRule pairs one path pattern with the owner handles it assigns.
type OwnershipRule struct {
	Pattern string
	Owners  []string
}

// RuleOrder selects which rule takes priority when several rules match the
// same file. The ownership file is read top to bottom; LastRuleWins gives
// later rules priority (layered override semantics: general rules first,
// specific overrides appended later), FirstRuleWins keeps file order.
type RuleOrder string

const (
	LastRuleWins  RuleOrder = "last-wins"
	FirstRuleWins RuleOrder = "first-wins"
)
