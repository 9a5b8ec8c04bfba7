package transfer

type ScheduleCreation struct {
	SocialAccountID int64    `json:"social_account_id"`
	Content         string   `json:"content"`
	ScheduledAt     string   `json:"scheduled_at"`
	MediaURLs       []string `json:"media_urls"`
}

type AccountCreation struct {
	Platform       string `json:"platform"`
	Username       string `json:"username"`
	AccessToken    string `json:"access_token"`
	RefreshToken   string `json:"refresh_token"`
	TokenExpiresAt string `json:"token_expires_at"`
}
