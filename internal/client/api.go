// Package client DevConnector API 的客户端：HTTP 客户端、应用状态和路由守卫
package client

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

	"github.com/google/go-github/github"
	"github.com/lijie8778708/DevConnector/internal/models"
	"github.com/pkg/errors"
)

// TokenHeader 必须与服务端读取的请求头一致
const TokenHeader = "x-auth-token"

type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// APIError 非 2xx 响应解析出的错误
type APIError struct {
	Status  int
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Profile 个人资料及所属用户的公开信息
type Profile struct {
	models.Profile
	User models.UserSummary `json:"user"`
}

type ProfileInput struct {
	Company        string `json:"company,omitempty"`
	Website        string `json:"website,omitempty"`
	Location       string `json:"location,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Status         string `json:"status"`
	GitHubUsername string `json:"githubusername,omitempty"`
	Skills         string `json:"skills"`
	YouTube        string `json:"youtube,omitempty"`
	Twitter        string `json:"twitter,omitempty"`
	Facebook       string `json:"facebook,omitempty"`
	LinkedIn       string `json:"linkedin,omitempty"`
	Instagram      string `json:"instagram,omitempty"`
}

type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

// API 对应一个服务端。请求进行中修改 token 不安全
type API struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewAPI(baseURL string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &API{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// SetToken 之后的请求都携带 tok，传 "" 取消
func (a *API) SetToken(tok string) { a.token = tok }

func (a *API) Token() string { return a.token }

func (a *API) do(ctx context.Context, method, path string, body, out interface{}) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, rd)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set(TokenHeader, a.token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(raw, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return errors.Wrap(err, "decode envelope")
	}
	return errors.Wrap(json.Unmarshal(env.Data, out), "decode data")
}

// ---------- 认证 ----------

func (a *API) Register(ctx context.Context, name, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := a.do(ctx, http.MethodPost, "/api/users", body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (a *API) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := a.do(ctx, http.MethodPost, "/api/auth", body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (a *API) CurrentUser(ctx context.Context) (*models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/auth", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ---------- 个人资料 ----------

type profileOut struct {
	Profile Profile `json:"profile"`
}

func (a *API) MyProfile(ctx context.Context) (*Profile, error) {
	var out profileOut
	if err := a.do(ctx, http.MethodGet, "/api/profile/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

func (a *API) UpsertProfile(ctx context.Context, in ProfileInput) (*Profile, error) {
	var out profileOut
	if err := a.do(ctx, http.MethodPost, "/api/profile", in, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

func (a *API) Profiles(ctx context.Context) ([]Profile, error) {
	var out struct {
		Profiles []Profile `json:"profiles"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/profile", nil, &out); err != nil {
		return nil, err
	}
	return out.Profiles, nil
}

func (a *API) ProfileByUser(ctx context.Context, userID string) (*Profile, error) {
	var out profileOut
	if err := a.do(ctx, http.MethodGet, "/api/profile/user/"+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

// DeleteAccount 删除当前用户的账号、资料和帖子
func (a *API) DeleteAccount(ctx context.Context) error {
	return a.do(ctx, http.MethodDelete, "/api/profile", nil, nil)
}

func (a *API) AddExperience(ctx context.Context, in ExperienceInput) (*Profile, error) {
	var out profileOut
	if err := a.do(ctx, http.MethodPut, "/api/profile/experience", in, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

func (a *API) RemoveExperience(ctx context.Context, id string) (*Profile, error) {
	var out profileOut
	if err := a.do(ctx, http.MethodDelete, "/api/profile/experience/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

func (a *API) AddEducation(ctx context.Context, in EducationInput) (*Profile, error) {
	var out profileOut
	if err := a.do(ctx, http.MethodPut, "/api/profile/education", in, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

func (a *API) RemoveEducation(ctx context.Context, id string) (*Profile, error) {
	var out profileOut
	if err := a.do(ctx, http.MethodDelete, "/api/profile/education/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

func (a *API) GitHubRepos(ctx context.Context, username string) ([]*github.Repository, error) {
	var out struct {
		Repos []*github.Repository `json:"repos"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/profile/github/"+url.PathEscape(username), nil, &out); err != nil {
		return nil, err
	}
	return out.Repos, nil
}

// ---------- 帖子 ----------

type postOut struct {
	Post models.Post `json:"post"`
}

func (a *API) Posts(ctx context.Context) ([]models.Post, error) {
	var out struct {
		Posts []models.Post `json:"posts"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/posts", nil, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

func (a *API) Post(ctx context.Context, id string) (*models.Post, error) {
	var out postOut
	if err := a.do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

func (a *API) CreatePost(ctx context.Context, text string) (*models.Post, error) {
	var out postOut
	if err := a.do(ctx, http.MethodPost, "/api/posts", map[string]string{"text": text}, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

func (a *API) DeletePost(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id), nil, nil)
}

func (a *API) Like(ctx context.Context, postID string) ([]models.Like, error) {
	return a.likes(ctx, "/api/posts/like/"+url.PathEscape(postID))
}

func (a *API) Unlike(ctx context.Context, postID string) ([]models.Like, error) {
	return a.likes(ctx, "/api/posts/unlike/"+url.PathEscape(postID))
}

func (a *API) likes(ctx context.Context, path string) ([]models.Like, error) {
	var out struct {
		Likes []models.Like `json:"likes"`
	}
	if err := a.do(ctx, http.MethodPut, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Likes, nil
}

type commentsOut struct {
	Comments []models.Comment `json:"comments"`
}

func (a *API) AddComment(ctx context.Context, postID, text string) ([]models.Comment, error) {
	var out commentsOut
	path := "/api/posts/comment/" + url.PathEscape(postID)
	if err := a.do(ctx, http.MethodPost, path, map[string]string{"text": text}, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

func (a *API) RemoveComment(ctx context.Context, postID, commentID string) ([]models.Comment, error) {
	var out commentsOut
	path := "/api/posts/comment/" + url.PathEscape(postID) + "/" + url.PathEscape(commentID)
	if err := a.do(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}
