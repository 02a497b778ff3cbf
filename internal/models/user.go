package models

import "time"

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Nickname     string    `json:"nickname" db:"nickname"`
	PasswordHash *string   `json:"-" db:"password_hash"`
	ProfileImage *string   `json:"-" db:"profile_image"`
	GoogleLinked bool      `json:"googleLinked" db:"google_linked"`
	NaverLinked  bool      `json:"naverLinked" db:"naver_linked"`
	KakaoLinked  bool      `json:"kakaoLinked" db:"kakao_linked"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// HasPassword reports whether the user can sign in with a local password.
// Accounts created through an OAuth provider have none.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// LinkedProviders lists the OAuth providers the account has signed in with.
func (u *User) LinkedProviders() []string {
	providers := []string{}
	if u.GoogleLinked {
		providers = append(providers, ProviderGoogle)
	}
	if u.NaverLinked {
		providers = append(providers, ProviderNaver)
	}
	if u.KakaoLinked {
		providers = append(providers, ProviderKakao)
	}
	return providers
}

const (
	ProviderGoogle = "google"
	ProviderNaver  = "naver"
	ProviderKakao  = "kakao"
)

type UserStats struct {
	FolderCount  int64 `json:"folderCount"`
	SiteCount    int64 `json:"siteCount"`
	PinsReceived int64 `json:"pinsReceived"`
}
