package core

// RecruitProfile identifies an account that registered under this wallet's
// referral code.
type RecruitProfile struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
}

// Recruit is one referred account together with its claimable point balance.
type Recruit struct {
	Profile          RecruitProfile `json:"profile"`
	AvailablePoints  int64          `json:"availablePoints"`
	HasReceivedBonus bool           `json:"hasReceivedBonus"`
}

// Claimable reports whether points can be drained from this recruit.
func (r Recruit) Claimable() bool {
	return r.AvailablePoints > 0 && r.Profile.UID != ""
}

// Label returns a human-readable name for logs.
func (r Recruit) Label() string {
	if r.Profile.DisplayName != "" {
		return r.Profile.DisplayName
	}
	uid := r.Profile.UID
	if len(uid) > 10 {
		uid = uid[:10]
	}
	return "[UID: " + uid + "]"
}

// ReferralAccount is the wallet's own referral state: its code, recruit
// capacity, and the recruits registered so far.
type ReferralAccount struct {
	Code        string    `json:"code"`
	MaxRecruits int       `json:"maxRecruits"`
	Recruits    []Recruit `json:"recruits"`
}

// OpenSlots returns how many more recruits the account can register.
func (a *ReferralAccount) OpenSlots() int {
	open := a.MaxRecruits - len(a.Recruits)
	if open < 0 {
		return 0
	}
	return open
}
