package core

import "github.com/shopspring/decimal"

// Resource is one entry of the account's resource balances.
type Resource struct {
	Symbol string          `json:"symbol"`
	Amount decimal.Decimal `json:"amount"`
}

// Profile is the public game profile attached to an opaque user id.
type Profile struct {
	UID           string          `json:"uid"`
	DisplayName   string          `json:"displayName"`
	Level         int             `json:"level"`
	QuestPoints   int64           `json:"questPoints"`
	TwitterHandle string          `json:"twitterHandle"`
	Rank          *Rank           `json:"rank"`
	Equipment     []EquipmentSlot `json:"equipment"`
}

// Rank is the profile's leaderboard rank.
type Rank struct {
	Name       string `json:"name"`
	DivisionID string `json:"divisionId"`
	SubRank    int    `json:"subRank"`
}

// EquipmentSlot is one equipped item on a profile.
type EquipmentSlot struct {
	Slot         string `json:"slot"`
	Level        int    `json:"level"`
	DefinitionID string `json:"definitionId"`
}

// LeaderboardEntry is the profile-by-uid query result: the profile plus its
// leaderboard position and pending coin reward.
type LeaderboardEntry struct {
	Profile          *Profile        `json:"profile"`
	Position         int64           `json:"position"`
	CoinRewardAmount decimal.Decimal `json:"coinRewardAmount"`
}

// FarmedWallet is a freshly generated identity that completed registration.
// Only successful wallets are recorded; failures are logged and dropped.
type FarmedWallet struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey"`
}
