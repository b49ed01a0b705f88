// Package repohost 为个人资料页查询 GitHub 公开仓库
package repohost

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/github"
	"github.com/lijie8778708/DevConnector/internal/config"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	repoCount      = 5
	requestTimeout = 10 * time.Second
)

// ErrNotFound 任何查询失败都返回该错误，不区分上游原因
var ErrNotFound = errors.New("no github profile found")

// RepoLister 个人资料接口依赖的仓库查询能力
type RepoLister interface {
	ListRepos(ctx context.Context, username string) ([]*github.Repository, error)
}

type Client struct {
	gh *github.Client
}

// New 根据配置创建客户端：优先使用个人 token，
// 否则使用 OAuth app 的 id/secret 提高匿名限流额度
func New(cfg config.GitHubConfig) (*Client, error) {
	var httpClient *http.Client
	switch {
	case cfg.Token != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	case cfg.ClientID != "" && cfg.ClientSecret != "":
		tr := &github.UnauthenticatedRateLimitedTransport{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
		}
		httpClient = tr.Client()
	default:
		httpClient = &http.Client{}
	}
	httpClient.Timeout = requestTimeout

	gh := github.NewClient(httpClient)
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, errors.Wrap(err, "parse github base url")
		}
		gh.BaseURL = u
	}
	return &Client{gh: gh}, nil
}

// ListRepos 按创建时间升序返回用户的前 5 个仓库
func (c *Client) ListRepos(ctx context.Context, username string) ([]*github.Repository, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrNotFound
	}

	opt := &github.RepositoryListOptions{
		Sort:        "created",
		Direction:   "asc",
		ListOptions: github.ListOptions{PerPage: repoCount},
	}
	repos, resp, err := c.gh.Repositories.List(ctx, username, opt)
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "list repos of %s: %v", username, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrNotFound, "list repos of %s: status %d", username, resp.StatusCode)
	}
	if repos == nil {
		repos = []*github.Repository{}
	}
	return repos, nil
}
