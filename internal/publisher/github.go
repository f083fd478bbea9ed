package publisher

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sednafm/aircurator/internal/curator"
)

const (
	defaultBaseURL  = "https://api.github.com"
	defaultFilePath = "data/daily_match.json"
)

// Artifact is the published daily decision with its publication metadata.
// Struct field order is the key order of the serialized document, kept
// stable for reproducible diffs in the target repository.
type Artifact struct {
	curator.DailyDecision
	Date        string `json:"date"`
	GeneratedAt string `json:"generated_at"`
}

// Publisher writes the daily artifact to a durable store. Publish never
// returns an error; all failure is converted to false plus a logged cause.
type Publisher interface {
	Publish(ctx context.Context, decision curator.DailyDecision, date string) bool
}

// GitHubPublisher commits the daily artifact to a fixed path in a GitHub
// repository via the contents API.
type GitHubPublisher struct {
	httpClient *http.Client
	baseURL    string
	token      string
	repo       string // "owner/name"
	branch     string
	filePath   string
	now        func() time.Time
}

// GitHubConfig holds configuration for the GitHub publisher.
type GitHubConfig struct {
	Token    string
	Repo     string
	Branch   string
	FilePath string
	BaseURL  string // override for tests
}

// NewGitHubPublisher creates a new GitHub publisher.
func NewGitHubPublisher(cfg GitHubConfig) *GitHubPublisher {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	branch := cfg.Branch
	if branch == "" {
		branch = "main"
	}
	filePath := cfg.FilePath
	if filePath == "" {
		filePath = defaultFilePath
	}

	return &GitHubPublisher{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:  baseURL,
		token:    cfg.Token,
		repo:     cfg.Repo,
		branch:   branch,
		filePath: filePath,
		now:      time.Now,
	}
}

// Publish stamps the decision with date and generation time and performs a
// create-or-update of the fixed target path. An update supplies the current
// content SHA; if that SHA went stale between read and write the API rejects
// the update and Publish reports false without retrying.
func (p *GitHubPublisher) Publish(ctx context.Context, decision curator.DailyDecision, date string) bool {
	if p.token == "" {
		slog.Error("github token not configured, skipping publish")
		return false
	}

	artifact := Artifact{
		DailyDecision: decision,
		Date:          date,
		GeneratedAt:   p.now().UTC().Format(time.RFC3339),
	}

	content, err := marshalArtifact(artifact)
	if err != nil {
		slog.Error("failed to serialize daily artifact", "error", err)
		return false
	}

	sha, err := p.currentSHA(ctx)
	if err != nil {
		slog.Error("failed to read current artifact version", "error", err)
		return false
	}

	if err := p.put(ctx, content, sha, date); err != nil {
		slog.Error("failed to publish daily artifact", "error", err, "path", p.filePath)
		return false
	}

	slog.Info("published daily artifact", "repo", p.repo, "path", p.filePath, "date", date)
	return true
}

// marshalArtifact serializes with literal non-ASCII characters so the
// committed file stays human-readable.
func marshalArtifact(artifact Artifact) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(artifact); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// contentsResponse is the subset of the contents API response we read.
type contentsResponse struct {
	SHA     string `json:"sha"`
	Content string `json:"content"`
}

// currentSHA returns the version token of the target path, or "" when the
// file does not exist yet.
func (p *GitHubPublisher) currentSHA(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/contents/%s?ref=%s", p.baseURL, p.repo, p.filePath, p.branch)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	p.setHeaders(req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("contents read failed (status %d): %s", resp.StatusCode, string(body))
	}

	var contents contentsResponse
	if err := json.Unmarshal(body, &contents); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	return contents.SHA, nil
}

// updateRequest is the request body for the contents API write. SHA is only
// set for updates; creates omit it.
type updateRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

func (p *GitHubPublisher) put(ctx context.Context, content []byte, sha, date string) error {
	reqBody := updateRequest{
		Message: fmt.Sprintf("🌟 Daily fact & match for %s", date),
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  p.branch,
		SHA:     sha,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/contents/%s", p.baseURL, p.repo, p.filePath)
	req, err := http.NewRequestWithContext(ctx, "PUT", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	p.setHeaders(req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusConflict {
		return fmt.Errorf("version conflict: another writer updated %s first", p.filePath)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("contents write failed (status %d): %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func (p *GitHubPublisher) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+p.token)
}
