package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avdonin/resbook/internal/config"
	"github.com/avdonin/resbook/internal/database"
	"github.com/avdonin/resbook/internal/model"
)

type TestApp struct {
	*App
	api *fiber.App
}

func NewTestApp(t *testing.T) *TestApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	dbm := database.New(db)
	require.NoError(t, dbm.Migrate())
	dbm.AddDefaults()

	require.NoError(t, dbm.Save(&model.Station{Name: "st1", Site: "north"}))
	require.NoError(t, dbm.Save(&model.Station{Name: "st2", Site: "south"}))
	require.NoError(t, dbm.Save(&model.RadioTerminal{Name: "rt1"}))

	app := &TestApp{App: NewApp(config.NewAppConfig(), dbm)}
	app.api = NewHttp(app.App)

	return app
}

func (app *TestApp) Req(method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Add(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	return app.api.Test(req, 3000)
}

func (app *TestApp) JSON(method, url string, obj any) (*http.Response, error) {
	d, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}

	return app.Req(method, url, bytes.NewReader(d))
}

func missionURL(id uint, suffix string) string {
	return fmt.Sprintf("/mission/%d%s", id, suffix)
}

func eventURL(rt string, id uint) string {
	return fmt.Sprintf("/event/%s/%d", rt, id)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))

	return v
}

func makeMission(t *testing.T, app *TestApp, name string) uint {
	t.Helper()

	resp, err := app.JSON("POST", "/mission", fiber.Map{"name": name, "scheduled_start": time.Now().UTC()})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	m := decode[model.Mission](t, resp)
	require.NotEmpty(t, m.ID)
	require.NotEmpty(t, m.Token)
	require.Equal(t, model.MissionStatusPlanned, m.Status)

	return m.ID
}

func TestTimelineBatchAPI(t *testing.T) {
	app := NewTestApp(t)
	mid := makeMission(t, app, "m1")

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	h := func(n int) time.Time { return day.Add(time.Duration(n) * time.Hour) }

	resp, err := app.JSON("PUT", missionURL(mid, "/timeline/station"), fiber.Map{
		"creates": []fiber.Map{
			{"station_id": 1, "start_time": h(8), "end_time": h(12)},
			{"station_id": 2, "start_time": h(10), "end_time": h(14)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	events := decode[[]model.StationEvent](t, resp)
	require.Len(t, events, 2)
	require.NotNil(t, events[0].EndTime)
	assert.Equal(t, h(10).Unix(), events[0].EndTime.Unix())
	assert.Equal(t, h(10).Unix(), events[1].StartTime.Unix())

	resp, err = app.JSON("PUT", missionURL(mid, "/timeline/station"), fiber.Map{
		"creates":  []fiber.Map{{"station_id": 1, "start_time": h(9), "end_time": h(11)}},
		"auto_fix": false,
	})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	body := decode[map[string]any](t, resp)
	assert.Contains(t, body, "prev_id")
	assert.Contains(t, body, "next_start")

	resp, err = app.Req("GET", missionURL(mid, "/timeline/station"), nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, decode[[]model.StationEvent](t, resp), 2)
}

func TestTimelineBatchUnknownMission(t *testing.T) {
	app := NewTestApp(t)

	resp, err := app.JSON("PUT", missionURL(999, "/timeline/station"), fiber.Map{})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSwitchAPI(t *testing.T) {
	app := NewTestApp(t)
	mid := makeMission(t, app, "m1")

	resp, err := app.JSON("POST", missionURL(mid, "/switch/rt"), fiber.Map{
		"resource_id": 1,
		"data":        fiber.Map{"rt_id": 1, "active": true, "up_channel": 3, "down_channel": 5},
	})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	ev := decode[model.RadioTerminalEvent](t, resp)
	require.NotEmpty(t, ev.ID)
	require.Nil(t, ev.EndTime)
	assert.Equal(t, 3, ev.UpChannel)

	resp, err = app.JSON("POST", missionURL(mid, "/switch/rt"), fiber.Map{
		"resource_id": 1,
		"data":        fiber.Map{"rt_id": 1},
	})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, ev.ID, decode[model.RadioTerminalEvent](t, resp).ID)

	other := makeMission(t, app, "m2")

	resp, err = app.JSON("POST", missionURL(other, "/switch/rt"), fiber.Map{
		"resource_id": 1,
		"data":        fiber.Map{"rt_id": 1},
	})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestManualEventAPI(t *testing.T) {
	app := NewTestApp(t)
	mid := makeMission(t, app, "m1")

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	resp, err := app.JSON("POST", missionURL(mid, "/event/station"), fiber.Map{
		"station_id": 1,
		"start_time": day.Add(8 * time.Hour),
		"end_time":   day.Add(10 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	ev := decode[model.StationEvent](t, resp)
	require.NotEmpty(t, ev.ID)

	resp, err = app.JSON("PATCH", eventURL("station", ev.ID), fiber.Map{
		"start_time": day.Add(7 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, day.Add(7*time.Hour).Unix(), decode[model.StationEvent](t, resp).StartTime.Unix())

	resp, err = app.JSON("PATCH", eventURL("station", ev.ID), fiber.Map{
		"start_time": day.Add(11 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Req("DELETE", eventURL("station", ev.ID), nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Req("DELETE", eventURL("station", ev.ID), nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCatalogAPI(t *testing.T) {
	app := NewTestApp(t)

	resp, err := app.Req("GET", "/catalog/stations", nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, decode[[]model.Station](t, resp), 2)

	resp, err = app.Req("GET", "/catalog/roles", nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, decode[[]model.Role](t, resp), 3)

	resp, err = app.Req("GET", "/catalog/stations?id=99", nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMissionAPI(t *testing.T) {
	app := NewTestApp(t)
	mid := makeMission(t, app, "m1")

	resp, err := app.JSON("POST", "/mission", fiber.Map{"name": "m1"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, err = app.JSON("PATCH", missionURL(mid, ""), fiber.Map{"status": model.MissionStatusActive})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, model.MissionStatusActive, decode[model.Mission](t, resp).Status)

	resp, err = app.Req("GET", "/mission", nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, decode[[]model.Mission](t, resp), 1)

	resp, err = app.Req("GET", "/mission?name=m1", nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, decode[[]model.Mission](t, resp), 1)

	resp, err = app.Req("GET", "/mission?name=nope", nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Empty(t, decode[[]model.Mission](t, resp))

	resp, err = app.Req("DELETE", missionURL(mid, ""), nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Req("GET", missionURL(mid, ""), nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
