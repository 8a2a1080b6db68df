package core

// Chest is an in-game purchasable reward container with a daily cap.
type Chest struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	DailyPurchases int        `json:"dailyPurchases"`
	DailyLimit     int        `json:"dailyLimit"`
	Price          ChestPrice `json:"price"`
}

// ChestPrice names the currency a chest is bought with.
type ChestPrice struct {
	Unit string `json:"unit"`
}

// Remaining returns how many more chests of this type can be opened today.
func (c Chest) Remaining() int {
	left := c.DailyLimit - c.DailyPurchases
	if left < 0 {
		return 0
	}
	return left
}

// ChestReward is the prize returned by a buy-and-open mutation. Exactly one
// of the fields is expected to be set.
type ChestReward struct {
	Crystals  int64           `json:"crystals"`
	Equipment *ChestEquipment `json:"equipment"`
}

// ChestEquipment is an equipment drop from a chest.
type ChestEquipment struct {
	Name string `json:"name"`
	Tier string `json:"tier"`
}

// Label describes the reward for logs.
func (r *ChestReward) Label() string {
	switch {
	case r == nil:
		return "unknown reward"
	case r.Crystals > 0:
		return "crystals"
	case r.Equipment != nil:
		return "equipment [" + r.Equipment.Tier + "] " + r.Equipment.Name
	default:
		return "unknown reward"
	}
}
