package core

import "github.com/shopspring/decimal"

// QuestStatus is the server-side lifecycle state of a quest.
type QuestStatus string

const (
	QuestInProgress   QuestStatus = "IN_PROGRESS"
	QuestReadyToClaim QuestStatus = "READY_TO_CLAIM"
	QuestClaimed      QuestStatus = "CLAIMED"
)

// Quest describes one quest definition as returned by the progress query.
type Quest struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Reward decimal.Decimal `json:"reward"`
	Data   QuestData       `json:"data"`
}

// QuestData carries quest metadata. ExternalVerification is a pointer so
// that "explicitly false" (auto-solvable) can be told apart from "absent".
type QuestData struct {
	ExternalVerification *bool `json:"externalVerification"`
}

// QuestProgress pairs a quest with the account's current status for it.
// Automation never caches these across loop iterations; every pass
// re-fetches from the server.
type QuestProgress struct {
	Quest  Quest       `json:"quest"`
	Status QuestStatus `json:"status"`
}

// AutoSolvable reports whether the quest can be completed without any
// external verification step.
func (p QuestProgress) AutoSolvable() bool {
	v := p.Quest.Data.ExternalVerification
	return p.Status == QuestInProgress && v != nil && !*v
}
