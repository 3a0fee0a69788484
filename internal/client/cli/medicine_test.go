package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/client/client"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/client/models"
	"github.com/stretchr/testify/require"
)

func loggedInApp(t *testing.T, api *fakeAPI, input string) (*App, *strings.Builder) {
	t.Helper()
	a, _ := newTestApp(t, api, input)
	a.loggedIn = true
	out := &strings.Builder{}
	a.out = out
	return a, out
}

func TestCommands_RequireLogin(t *testing.T) {
	a, _ := newTestApp(t, &fakeAPI{}, "")
	ctx := context.Background()

	require.ErrorIs(t, a.List(ctx), errNotLoggedIn)
	require.ErrorIs(t, a.Add(ctx), errNotLoggedIn)
	require.ErrorIs(t, a.Update(ctx, "1"), errNotLoggedIn)
	require.ErrorIs(t, a.Delete(ctx, "1"), errNotLoggedIn)
}

func TestList(t *testing.T) {
	api := &fakeAPI{items: []models.Medicine{
		{ID: 1, DrugName: "Aspirin", MedicineType: "tablet", UserName: "Ann", Age: 40, Contact: "555"},
	}}
	a, out := loggedInApp(t, api, "")

	require.NoError(t, a.List(context.Background()))
	require.Contains(t, out.String(), "#1 Aspirin (tablet) for Ann, age 40, contact 555")
}

func TestList_Empty(t *testing.T) {
	a, out := loggedInApp(t, &fakeAPI{}, "")
	require.NoError(t, a.List(context.Background()))
	require.Equal(t, "No records\n", out.String())
}

func TestAdd_CollectsForm(t *testing.T) {
	api := &fakeAPI{}
	input := strings.Join([]string{"Ann", "40", "555", "Aspirin", "tablet", "/tmp/a.png", ""}, "\n") + "\n"
	a, out := loggedInApp(t, api, input)

	require.NoError(t, a.Add(context.Background()))
	require.Equal(t, []models.MedicineForm{{
		UserName:         "Ann",
		Age:              "40",
		Contact:          "555",
		DrugName:         "Aspirin",
		MedicineType:     "tablet",
		ProfileImagePath: "/tmp/a.png",
	}}, api.created)
	require.Contains(t, out.String(), "Added: #1 Aspirin")
}

func TestUpdate_EmptyAnswersKeepValues(t *testing.T) {
	api := &fakeAPI{items: []models.Medicine{
		{ID: 3, UserName: "Ann", Age: 40, Contact: "555", DrugName: "Aspirin", MedicineType: "tablet"},
	}}
	input := strings.Join([]string{"", "41", "", "", "", "", "/tmp/proof.pdf"}, "\n") + "\n"
	a, out := loggedInApp(t, api, input)

	require.NoError(t, a.Update(context.Background(), "3"))
	require.Equal(t, int64(3), api.updatedID)
	require.Equal(t, models.MedicineForm{
		UserName:          "Ann",
		Age:               "41",
		Contact:           "555",
		DrugName:          "Aspirin",
		MedicineType:      "tablet",
		DocumentProofPath: "/tmp/proof.pdf",
	}, api.updatedForm)
	require.Contains(t, out.String(), "Age [40]")
	require.Contains(t, out.String(), "Updated: #3")
}

func TestUpdate_PromptsForIDAndRejectsUnknown(t *testing.T) {
	a, _ := loggedInApp(t, &fakeAPI{}, "9\n")
	require.EqualError(t, a.Update(context.Background(), ""), "record 9 not found")
}

func TestDelete(t *testing.T) {
	api := &fakeAPI{}
	a, out := loggedInApp(t, api, "")

	require.NoError(t, a.Delete(context.Background(), "5"))
	require.Equal(t, int64(5), api.deletedID)
	require.Equal(t, "Deleted record 5\n", out.String())
}

func TestDelete_InvalidID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-2"} {
		a, _ := loggedInApp(t, &fakeAPI{}, "")
		require.EqualError(t, a.Delete(context.Background(), id), fmt.Sprintf("invalid id %q", id))
	}
}

func TestExpiredSessionLogsOut(t *testing.T) {
	api := &fakeAPI{err: fmt.Errorf("list: %w", client.ErrUnauthorized), token: "old"}
	a, _ := loggedInApp(t, api, "")
	require.NoError(t, a.tokens.Save("old"))

	err := a.List(context.Background())
	require.EqualError(t, err, "session expired, please login again")
	require.False(t, a.isLoggedIn())
	require.Empty(t, api.token)

	saved, lerr := a.tokens.Load()
	require.NoError(t, lerr)
	require.Empty(t, saved)
}

func TestCheckOnline_SwitchesMode(t *testing.T) {
	api := &fakeAPI{}
	a, out := newTestApp(t, api, "")

	a.checkOnline(context.Background())
	require.Equal(t, ModeOnline, a.Mode())

	api.pingErr = client.ErrUnavailable
	a.checkOnline(context.Background())
	require.Equal(t, ModeOffline, a.Mode())
	require.Equal(t, "Switched to online mode\nSwitched to offline mode\n", out.String())
	require.Equal(t, "(offline)", a.getStatus())
}
