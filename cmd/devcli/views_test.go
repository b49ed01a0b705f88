package main

import (
	"bytes"
	"testing"

	"github.com/lijie8778708/DevConnector/internal/client"
	"github.com/lijie8778708/DevConnector/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPeriod(t *testing.T) {
	require.Equal(t, "2020-01-01 - Now", period("2020-01-01", "", true))
	require.Equal(t, "2020-01-01 - 2021-01-01", period("2020-01-01", "2021-01-01", false))
	require.Equal(t, "2020-01-01", period("2020-01-01", "", false))
}

func TestRenderDashboard(t *testing.T) {
	u := &models.User{Name: "Alice"}

	var buf bytes.Buffer
	renderDashboard(&buf, u, nil)
	require.Contains(t, buf.String(), "Welcome Alice")
	require.Contains(t, buf.String(), "not yet setup a profile")

	buf.Reset()
	p := &client.Profile{}
	p.Experience = []models.Experience{{ID: "e1", Company: "Acme", Title: "Dev", From: "2020-01-01", Current: true}}
	renderDashboard(&buf, u, p)
	require.Contains(t, buf.String(), "Acme")
	require.Contains(t, buf.String(), "2020-01-01 - Now")
}

func TestEnterGuards(t *testing.T) {
	c := &cli{app: client.NewApp(client.NewAPI("http://127.0.0.1:0", nil), client.NewState(), &client.MemoryTokenStore{})}

	_, err := c.enter(client.PathDashboard)
	require.ErrorContains(t, err, "requires a session")

	_, err = c.enter("/nope")
	require.ErrorContains(t, err, "page not found")

	m, err := c.enter("/profile/abc")
	require.NoError(t, err)
	require.Equal(t, "abc", m.Params["id"])

	c.app.State.SetUser(&models.User{ID: "u1"})
	_, err = c.enter(client.PathLogin)
	require.ErrorContains(t, err, "already signed in")
}
