package graphql

import (
	"encoding/json"
	"errors"

	"github.com/layer-3/voyager/core"
)

// Request is the wire shape of every GraphQL call.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Error is one application-level error entry.
type Error struct {
	Message string `json:"message"`
}

// Response is the transport envelope: data on success, errors on
// application-level failure, both over HTTP 200.
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors"`
}

// HasData reports whether the envelope carries a data payload.
func (r *Response) HasData() bool {
	return r != nil && len(r.Data) > 0 && string(r.Data) != "null"
}

// Err folds the errors array into a single error, or nil.
func (r *Response) Err() error {
	if r == nil || len(r.Errors) == 0 {
		return nil
	}
	return errors.New(r.Errors[0].Message)
}

// Decode unmarshals the data payload into out.
func (r *Response) Decode(out any) error {
	if !r.HasData() {
		if err := r.Err(); err != nil {
			return err
		}
		return errors.New("empty graphql response")
	}
	return json.Unmarshal(r.Data, out)
}

// Typed data payloads, one per operation. Optional-field defaults are kept
// explicit: a nil mutation result means "server did not confirm".

type ResourcesData struct {
	Account struct {
		Resources []core.Resource `json:"resources"`
	} `json:"account"`
}

type QuestProgressData struct {
	Account struct {
		QuestProgresses []core.QuestProgress `json:"questProgresses"`
	} `json:"account"`
}

type ReferralData struct {
	Account struct {
		Profile struct {
			ReferralAccount *core.ReferralAccount `json:"referralAccount"`
		} `json:"profile"`
	} `json:"account"`
}

type SuccessResult struct {
	Success bool `json:"success"`
}

type CompleteQuestData struct {
	CompleteQuest *SuccessResult `json:"completeQuest"`
}

type LinkToInviterData struct {
	LinkToInviter *SuccessResult `json:"linkToInviter"`
}

type ClaimInitialRecruitRewardsData struct {
	ClaimInitialRecruitRewards *SuccessResult `json:"claimInitialRecruitRewards"`
}

type ClaimRecruitPointsResult struct {
	QuestPoints int64 `json:"questPoints"`
	Recruit     struct {
		AvailablePoints int64 `json:"availablePoints"`
	} `json:"recruit"`
}

type ClaimRecruitPointsData struct {
	ClaimRecruitPoints *ClaimRecruitPointsResult `json:"claimRecruitPoints"`
}

type ShopChestsData struct {
	Account struct {
		GetShopChests []core.Chest `json:"getShopChests"`
	} `json:"account"`
}

type BuyAndOpenChestData struct {
	BuyAndOpenChest *core.ChestReward `json:"buyAndOpenChest"`
}

type LeaderboardData struct {
	QuestPointsLeaderboardByUID *core.LeaderboardEntry `json:"questPointsLeaderboardByUID"`
}
