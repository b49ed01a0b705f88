package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAPIPostsFlow(t *testing.T) {
	ctx := context.Background()
	api := newTestAPI(t)

	aliceTok, err := api.Register(ctx, "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	bobTok, err := api.Register(ctx, "Bob", "bob@example.com", "secret123")
	require.NoError(t, err)

	api.SetToken(aliceTok)
	post, err := api.CreatePost(ctx, "hello")
	require.NoError(t, err)
	require.Equal(t, "hello", post.Text)
	require.Equal(t, "Alice", post.Name)

	likes, err := api.Like(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)

	_, err = api.Like(ctx, post.ID)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "Post already liked", apiErr.Message)

	api.SetToken(bobTok)
	comments, err := api.AddComment(ctx, post.ID, "nice")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	commentID := comments[0].ID

	api.SetToken(aliceTok)
	_, err = api.RemoveComment(ctx, post.ID, commentID)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)

	likes, err = api.Unlike(ctx, post.ID)
	require.NoError(t, err)
	require.Empty(t, likes)

	posts, err := api.Posts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	got, err := api.Post(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)

	api.SetToken(bobTok)
	comments, err = api.RemoveComment(ctx, post.ID, commentID)
	require.NoError(t, err)
	require.Empty(t, comments)

	require.True(t, errors.As(api.DeletePost(ctx, post.ID), &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)

	api.SetToken(aliceTok)
	require.NoError(t, api.DeletePost(ctx, post.ID))
	_, err = api.Post(ctx, post.ID)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestAPIProfileFlow(t *testing.T) {
	ctx := context.Background()
	api := newTestAPI(t)

	tok, err := api.Register(ctx, "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	api.SetToken(tok)

	_, err = api.MyProfile(ctx)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "There is no profile for this user", apiErr.Message)

	p, err := api.UpsertProfile(ctx, ProfileInput{Status: "Developer", Skills: " go, sql ,", GitHubUsername: "alice"})
	require.NoError(t, err)
	require.Equal(t, []string{"go", "sql"}, p.Skills)
	require.Equal(t, "Alice", p.User.Name)

	p, err = api.AddExperience(ctx, ExperienceInput{Title: "Dev", Company: "Acme", From: "2020-01-01", Current: true})
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	p, err = api.RemoveExperience(ctx, p.Experience[0].ID)
	require.NoError(t, err)
	require.Empty(t, p.Experience)

	p, err = api.AddEducation(ctx, EducationInput{School: "MIT", Degree: "BS", FieldOfStudy: "CS", From: "2010-09-01", To: "2014-06-01"})
	require.NoError(t, err)
	require.Len(t, p.Education, 1)

	all, err := api.Profiles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	byUser, err := api.ProfileByUser(ctx, all[0].User.ID)
	require.NoError(t, err)
	require.Equal(t, "Developer", byUser.Status)

	repos, err := api.GitHubRepos(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, repos, 1)

	require.NoError(t, api.DeleteAccount(ctx))
	_, err = api.CurrentUser(ctx)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestAPIErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "tok", r.Header.Get(TokenHeader))
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	api := NewAPI(srv.URL+"/", srv.Client())
	api.SetToken("tok")
	_, err := api.Posts(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
	require.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}
