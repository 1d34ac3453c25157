package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	eserrors "github.com/envsync-cli/envsync/internal/errors"
)

const authHeader = "X-Auth-Token"

// CredentialsFunc supplies the session token for authenticated calls.
// Returning ok=false means no session is available.
type CredentialsFunc func() (token string, ok bool)

// Client is the typed boundary to the envsync cloud service. Construct one
// with New and pass it explicitly; there is no package-level instance.
type Client struct {
	baseURL string
	creds   CredentialsFunc
	http    *http.Client
}

// New returns a client for the service at baseURL. creds may be nil for a
// client that only performs unauthenticated calls. httpClient may be nil,
// in which case a client with a 30s timeout is used.
func New(baseURL string, creds CredentialsFunc, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		http:    httpClient,
	}
}

// LoginURL returns the browser-openable login URL.
func (c *Client) LoginURL() string {
	return c.baseURL + "/auth/github"
}

// Identity asks the backend who the current session belongs to. Returns
// (nil, nil) while the browser flow has not completed yet.
func (c *Client) Identity(ctx context.Context) (*UserIdentity, error) {
	var user UserIdentity
	status, err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: GET /auth/me returned %d", eserrors.ErrRemoteStatus, status)
	}
	return &user, nil
}

// Logout invalidates the session on the backend. A non-200 status is a
// failure; the local session must not be deleted in that case.
func (c *Client) Logout(ctx context.Context) error {
	status, err := c.do(ctx, http.MethodGet, "/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: GET /auth/logout returned %d", eserrors.ErrRemoteStatus, status)
	}
	return nil
}

// FindProjectByGitURL looks up a project by its stored git remote URL.
// Not-found is (nil, nil), not an error.
func (c *Client) FindProjectByGitURL(ctx context.Context, gitURL string) (*Project, error) {
	query := url.Values{"gitUrl": {gitURL}}
	var project Project
	status, err := c.do(ctx, http.MethodGet, "/projects/by-git-url?"+query.Encode(), nil, &project)
	if err != nil {
		return nil, err
	}
	return projectOrNotFound(&project, status, "/projects/by-git-url")
}

// FindProjectByToken looks up a project by its recovery token. Not-found is
// (nil, nil), not an error.
func (c *Client) FindProjectByToken(ctx context.Context, token string) (*Project, error) {
	query := url.Values{"token": {token}}
	var project Project
	status, err := c.do(ctx, http.MethodGet, "/projects/by-token?"+query.Encode(), nil, &project)
	if err != nil {
		return nil, err
	}
	return projectOrNotFound(&project, status, "/projects/by-token")
}

// CreateProject registers a new project and returns its remote-assigned ID
// and recovery token.
func (c *Client) CreateProject(ctx context.Context, name, gitURL string) (*Project, error) {
	body := map[string]string{"projectName": name}
	if gitURL != "" {
		body["gitRemoteUrl"] = gitURL
	}
	var project Project
	status, err := c.do(ctx, http.MethodPost, "/service/projects", body, &project)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: POST /service/projects returned %d", eserrors.ErrRemoteStatus, status)
	}
	return &project, nil
}

// ListProjects returns the projects visible to the current session, in the
// order the backend reports them.
func (c *Client) ListProjects(ctx context.Context) ([]ProjectSummary, error) {
	var projects []ProjectSummary
	status, err := c.do(ctx, http.MethodGet, "/service/projects", nil, &projects)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: GET /service/projects returned %d", eserrors.ErrRemoteStatus, status)
	}
	return projects, nil
}

// PushProfile uploads one profile's envelope. Any non-2xx status is a
// failure and is never retried here.
func (c *Client) PushProfile(ctx context.Context, req *PushRequest) error {
	status, err := c.do(ctx, http.MethodPost, "/service/push", req, nil)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("%w: POST /service/push returned %d", eserrors.ErrRemoteStatus, status)
	}
	return nil
}

// PullProfile fetches the envelope for one profile. A 404 or an incomplete
// envelope means the profile holds no data; callers turn that into
// ErrNoProjectData.
func (c *Client) PullProfile(ctx context.Context, projectID, profileName string) (*PullResponse, error) {
	query := url.Values{"projectId": {projectID}, "profileName": {profileName}}
	var resp PullResponse
	status, err := c.do(ctx, http.MethodGet, "/service/pull?"+query.Encode(), nil, &resp)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: GET /service/pull returned %d", eserrors.ErrRemoteStatus, status)
	}
	return &resp, nil
}

func projectOrNotFound(project *Project, status int, path string) (*Project, error) {
	switch {
	case status == http.StatusOK && project.ProjectID != "":
		return project, nil
	case status == http.StatusOK || status == http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: GET %s returned %d", eserrors.ErrRemoteStatus, path, status)
	}
}

// do performs one request and decodes a JSON body into out when out is
// non-nil and the response carries one. It returns the HTTP status so
// callers decide which statuses are errors.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.creds != nil {
		if token, ok := c.creds(); ok {
			req.Header.Set(authHeader, token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", eserrors.ErrRemoteStatus, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
