package graphql

// GraphQL documents consumed by the automation routines. The operation
// shapes match the game's web client byte for byte where the backend is
// known to be picky (mutations), and are kept single-line for the same
// reason.
const (
	AccountResourcesQuery = `
query AccountResources {
  account {
    resources {
      symbol
      amount
    }
  }
}
`

	GetProfileQuery = `
query GetProfile($uid: ID!) {
  questPointsLeaderboardByUID(uid: $uid) {
    profile {
      uid
      displayName
      level
      questPoints
      twitterHandle
      rank {
        name
        divisionId
        subRank
      }
      equipment {
        slot
        level
        definitionId
      }
    }
    position
    coinRewardAmount
  }
}
`

	QuestProgressQuery = `query QuestProgress{account{questProgresses{quest{id name reward data{externalVerification}}status}}}`

	FullReferralQuery = `query GetReferralProfile{account{profile{referralAccount{code maxRecruits recruits{profile{uid displayName}availablePoints hasReceivedBonus}}}}}`

	CompleteQuestMutation = `mutation CompleteQuest($questId:String!){completeQuest(questId:$questId){success}}`

	LinkToInviterMutation = `mutation LinkToInviter($inviterCode:String!){linkToInviter(inviterCode:$inviterCode){success}}`

	ClaimRecruitPointsMutation = `mutation ClaimRecruitPoints($uid:ID!){claimRecruitPoints(uid:$uid){questPoints recruit{availablePoints}}}`

	ClaimInitialRecruitRewardsMutation = `mutation ClaimInitialRecruitRewards{claimInitialRecruitRewards{success}}`

	GetShopChestsQuery = `query GetShopChests{account{getShopChests{id name dailyPurchases dailyLimit price{unit}}}}`

	BuyAndOpenChestMutation = `mutation BuyAndOpenChestMutation($chestId:String!){buyAndOpenChest(chestId:$chestId){crystals equipment{name tier}}}`
)
