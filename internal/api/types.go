package api

import "github.com/envsync-cli/envsync/internal/crypto"

// UserIdentity is the profile the backend reports for an authorized
// session, cached locally as the session credential.
type UserIdentity struct {
	AccessToken string `json:"accessToken"`
	Login       string `json:"login"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// Project is a remote project record as returned by the lookup and create
// endpoints.
type Project struct {
	ProjectID    string `json:"projectId"`
	ProjectName  string `json:"projectName"`
	GitRemoteURL string `json:"gitRemoteUrl,omitempty"`
	ProjectToken string `json:"projectToken,omitempty"`
}

// ProjectSummary is one entry of the list-projects response, carrying the
// remote profile names so a pull without a local record can offer them.
type ProjectSummary struct {
	ProjectID    string   `json:"projectId"`
	ProjectName  string   `json:"projectName"`
	GitRemoteURL string   `json:"gitRemoteUrl,omitempty"`
	ProjectToken string   `json:"projectToken,omitempty"`
	Profiles     []string `json:"profiles"`
}

// PushRequest uploads one profile's encrypted content.
type PushRequest struct {
	ProjectID   string `json:"projectId"`
	ProfileName string `json:"profileName"`
	crypto.Envelope
}

// PullResponse carries the envelope for one profile, or empty fields when
// the profile holds no data yet.
type PullResponse struct {
	crypto.Envelope
}
