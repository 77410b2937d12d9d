package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"padang/internal/notifications"
	"padang/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/api", 2*time.Second, logger.Discard(), nil)
}

func TestListTeams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/teams", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"teamName":"Harimau","venue":"Padang A","slot":"A1","players":[{"name":"Ali","idNum":"900101"}],"paymentStatus":"paid","registrationDate":"2025-03-01"}]`))
	})

	teams, err := c.ListTeams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "Harimau", teams[0].TeamName)
	assert.Equal(t, "900101", teams[0].Players[0].IDNumber)
	assert.True(t, teams[0].IsPaidFor("Padang A", "A1"))
	assert.False(t, teams[0].IsPaidFor("Padang B", "A1"))
}

func TestBookedSlots(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/booked-slots", r.URL.Path)
		_, _ = w.Write([]byte(`{"Padang A":["A1","C3"],"Padang B":[]}`))
	})

	index, err := c.BookedSlots(context.Background())
	require.NoError(t, err)
	assert.True(t, index.Contains("Padang A", "C3"))
	assert.False(t, index.Contains("Padang A", "B2"))
	assert.False(t, index.Contains("Padang C", "A1"))
}

func TestRegisterTeamSendsWireFormat(t *testing.T) {
	var received map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/register-team", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(received)
	})

	team := TeamRegistration{
		TeamName:         "Harimau",
		Venue:            "Padang A",
		Slot:             "A1",
		Players:          []Player{{Name: "Ali", IDNumber: "900101"}},
		PaymentStatus:    PaymentStatusPaid,
		RegistrationDate: "2025-03-01",
	}
	stored, err := c.RegisterTeam(context.Background(), team)
	require.NoError(t, err)
	assert.Equal(t, team, *stored)

	assert.Equal(t, "Harimau", received["teamName"])
	assert.Equal(t, "paid", received["paymentStatus"])
	assert.NotContains(t, received, "paymentRef")
	players := received["players"].([]interface{})
	assert.Equal(t, "900101", players[0].(map[string]interface{})["idNum"])
}

func TestRegisterTeamConflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Slot A1 at Padang A is already booked"}`))
	})

	_, err := c.RegisterTeam(context.Background(), TeamRegistration{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotTaken)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Slot A1 at Padang A is already booked", apiErr.Error())
}

func TestRegisterTeamServerErrorWithoutMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.RegisterTeam(context.Background(), TeamRegistration{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, "HTTP error! status: 500", err.Error())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.Message, "no server message to show")
}

func TestRegisterTeamUnreachableIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewHTTPClient(srv.URL+"/api", time.Second, logger.Discard(), nil)

	_, err := c.RegisterTeam(context.Background(), TeamRegistration{TeamName: "Harimau"})
	require.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrSlotTaken)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestFallbacksRaiseWarnings(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	ctx, tray := notifications.NewContext(context.Background())

	teams, ok := TeamsOrEmpty(ctx, c)
	assert.False(t, ok)
	assert.NotNil(t, teams)
	assert.Empty(t, teams)

	index, ok := BookedSlotsOrEmpty(ctx, c)
	assert.False(t, ok)
	assert.NotNil(t, index)
	assert.Empty(t, index)

	notices := tray.Drain()
	require.Len(t, notices, 2)
	assert.Equal(t, TeamsUnavailableMessage, notices[0].Message)
	assert.Equal(t, BookedSlotsUnavailableMessage, notices[1].Message)
}

func TestUnreachableStore(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1/api", 200*time.Millisecond, logger.Discard(), nil)
	ctx, tray := notifications.NewContext(context.Background())

	index, ok := BookedSlotsOrEmpty(ctx, c)
	assert.False(t, ok)
	assert.Empty(t, index)
	assert.Len(t, tray.Drain(), 1)
}
