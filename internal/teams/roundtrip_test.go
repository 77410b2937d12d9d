package teams

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"padang/internal/remote"
	"padang/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStoreServer serves the reference remote store over HTTP on a fake repository
func newStoreServer(t *testing.T) (*httptest.Server, *remote.HTTPClient) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	SetupTeamRoutes(engine.Group("/api"), NewController(newTestService(&fakeRepository{}, nil)))

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv, remote.NewHTTPClient(srv.URL+"/api", 2*time.Second, logger.Discard(), nil)
}

func wireTeam(venue, slot string) remote.TeamRegistration {
	team := remote.TeamRegistration{
		TeamName:         "Harimau",
		Venue:            venue,
		Slot:             slot,
		PaymentStatus:    remote.PaymentStatusPaid,
		RegistrationDate: "2025-03-14",
	}
	for i := 1; i <= 10; i++ {
		team.Players = append(team.Players, remote.Player{Name: fmt.Sprintf("P%d", i), IDNumber: fmt.Sprintf("ID%d", i)})
	}
	return team
}

func TestRegisteredSlotAppearsInBookedIndex(t *testing.T) {
	_, client := newStoreServer(t)
	ctx := context.Background()

	before, err := client.BookedSlots(ctx)
	require.NoError(t, err)
	assert.False(t, before.Contains("Padang C", "D2"))

	stored, err := client.RegisterTeam(ctx, wireTeam("Padang C", "D2"))
	require.NoError(t, err)
	assert.Equal(t, "Harimau", stored.TeamName)

	after, err := client.BookedSlots(ctx)
	require.NoError(t, err)
	assert.True(t, after.Contains("Padang C", "D2"))

	teams, err := client.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.True(t, teams[0].IsPaidFor("Padang C", "D2"))
}

func TestDuplicateRegistrationIsSlotTaken(t *testing.T) {
	_, client := newStoreServer(t)
	ctx := context.Background()

	_, err := client.RegisterTeam(ctx, wireTeam("Padang A", "A1"))
	require.NoError(t, err)

	_, err = client.RegisterTeam(ctx, wireTeam("Padang A", "A1"))
	require.ErrorIs(t, err, remote.ErrSlotTaken)
	assert.Equal(t, "Slot A1 at Padang A is already booked", err.Error())
}

func TestRegisterTeamValidationOverHTTP(t *testing.T) {
	srv, _ := newStoreServer(t)

	body := `{"teamName":"","venue":"Padang A","slot":"A1","players":[],"paymentStatus":"paid"}`
	resp, err := http.Post(srv.URL+"/api/register-team", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body = `{"teamName":"X","venue":"Padang A","slot":"A1","players":[{"name":"a","idNum":"1"}],"paymentStatus":"paid","registrationDate":"14/03/2025"}`
	resp2, err := http.Post(srv.URL+"/api/register-team", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}
