package messana

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMBox plays the controller side of the API and keeps score
type fakeMBox struct {
	mu   sync.Mutex
	gets map[string]int
	puts []putCall

	// per-path canned GET responses
	responses map[string]string
	// paths that should fail with a 500
	broken map[string]bool

	server *httptest.Server
}

type putCall struct {
	path string
	cmd  Command
}

func newFakeMBox(t *testing.T) *fakeMBox {
	t.Helper()
	f := &fakeMBox{
		gets:      make(map[string]int),
		responses: make(map[string]string),
		broken:    make(map[string]bool),
	}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "testkey" {
			t.Errorf("missing apikey header on %s", r.URL.Path)
		}
		path := strings.TrimPrefix(r.URL.Path, "/api/")

		f.mu.Lock()
		defer f.mu.Unlock()

		if f.broken[path] {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}

		switch r.Method {
		case http.MethodGet:
			f.gets[path]++
			resp, ok := f.responses[path]
			if !ok {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, resp)
		case http.MethodPut:
			body, _ := ioutil.ReadAll(r.Body)
			var cmd Command
			if err := json.Unmarshal(body, &cmd); err != nil {
				t.Errorf("bad PUT body on %s: %s", path, string(body))
			}
			f.puts = append(f.puts, putCall{path: path, cmd: cmd})
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected method %s %s", r.Method, r.URL.Path)
		}
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeMBox) adapter(zone int) *ZoneAdapter {
	host := strings.TrimPrefix(f.server.URL, "http://")
	api := NewClient(host, "testkey")
	return NewZoneAdapter(zone, api, NewSystem(api))
}

func (f *fakeMBox) getCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets[path]
}

func (f *fakeMBox) putCalls() []putCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]putCall{}, f.puts...)
}

func TestCurrentHeatingCoolingState(t *testing.T) {
	f := newFakeMBox(t)
	f.responses["zone/thermalStatus/3"] = `{"status": 2}`

	state, err := f.adapter(3).CurrentHeatingCoolingState()
	require.NoError(t, err)
	assert.Equal(t, 2, state)
}

func TestTargetStateOffShortCircuits(t *testing.T) {
	f := newFakeMBox(t)
	f.responses["zone/status/3"] = `{"status": 0}`
	f.responses["hc/mode/0"] = `{"value": 1}`

	state, err := f.adapter(3).TargetHeatingCoolingState()
	require.NoError(t, err)
	assert.Equal(t, 0, state)
	// an off zone must never consult the shared mode
	assert.Equal(t, 0, f.getCount("hc/mode/0"))
	assert.Equal(t, 1, f.getCount("zone/status/3"))
}

func TestTargetStateOnConsultsSystemMode(t *testing.T) {
	f := newFakeMBox(t)
	f.responses["zone/status/3"] = `{"status": 1}`
	f.responses["hc/mode/0"] = `{"value": 1}`

	state, err := f.adapter(3).TargetHeatingCoolingState()
	require.NoError(t, err)
	assert.Equal(t, 2, state)
	assert.Equal(t, 1, f.getCount("hc/mode/0"))
}

func TestTargetStateHeatMode(t *testing.T) {
	f := newFakeMBox(t)
	f.responses["zone/status/0"] = `{"status": 1}`
	f.responses["hc/mode/0"] = `{"value": 0}`

	state, err := f.adapter(0).TargetHeatingCoolingState()
	require.NoError(t, err)
	assert.Equal(t, 1, state)
}

func TestTargetStateStatusErrorShortCircuits(t *testing.T) {
	f := newFakeMBox(t)
	f.broken["zone/status/3"] = true
	f.responses["hc/mode/0"] = `{"value": 1}`

	_, err := f.adapter(3).TargetHeatingCoolingState()
	require.Error(t, err)
	assert.Equal(t, 0, f.getCount("hc/mode/0"))
}

func TestSetTargetStateClampsHigh(t *testing.T) {
	f := newFakeMBox(t)

	require.NoError(t, f.adapter(3).SetTargetHeatingCoolingState(5))

	puts := f.putCalls()
	require.Len(t, puts, 1)
	assert.Equal(t, "zone/status", puts[0].path)
	assert.Equal(t, Command{ID: 3, Value: 1}, puts[0].cmd)
}

func TestSetTargetStateOff(t *testing.T) {
	f := newFakeMBox(t)

	require.NoError(t, f.adapter(3).SetTargetHeatingCoolingState(0))

	puts := f.putCalls()
	require.Len(t, puts, 1)
	assert.Equal(t, Command{ID: 3, Value: 0}, puts[0].cmd)
}

func TestSetTargetStateNegativePassesThrough(t *testing.T) {
	// the upper bound is clamped, the lower one deliberately is not --
	// the controller gets to decide what a negative means
	f := newFakeMBox(t)

	require.NoError(t, f.adapter(3).SetTargetHeatingCoolingState(-1))

	puts := f.putCalls()
	require.Len(t, puts, 1)
	assert.Equal(t, Command{ID: 3, Value: -1}, puts[0].cmd)
}

func TestGetTemperatures(t *testing.T) {
	f := newFakeMBox(t)
	f.responses["zone/temperature/7"] = `{"value": 68}`
	f.responses["zone/setpoint/7"] = `{"value": 77}`

	a := f.adapter(7)

	cur, err := a.CurrentTemperature()
	require.NoError(t, err)
	assert.InDelta(t, 20.0, cur, 1e-9)

	sp, err := a.TargetTemperature()
	require.NoError(t, err)
	assert.InDelta(t, 25.0, sp, 1e-9)
}

func TestSetTargetTemperaturePowersOnThenSetsSetpoint(t *testing.T) {
	f := newFakeMBox(t)

	require.NoError(t, f.adapter(3).SetTargetTemperature(20))

	puts := f.putCalls()
	require.Len(t, puts, 2)
	assert.Equal(t, "zone/status", puts[0].path)
	assert.Equal(t, Command{ID: 3, Value: 1}, puts[0].cmd)
	assert.Equal(t, "zone/setpoint", puts[1].path)
	assert.Equal(t, Command{ID: 3, Value: 68}, puts[1].cmd)
}

func TestSetTargetTemperaturePartialFailure(t *testing.T) {
	// if the on-write fails the setpoint write still goes out and the
	// caller hears about the failure
	f := newFakeMBox(t)
	f.broken["zone/status"] = true

	err := f.adapter(3).SetTargetTemperature(20)
	require.Error(t, err)

	puts := f.putCalls()
	require.Len(t, puts, 1)
	assert.Equal(t, "zone/setpoint", puts[0].path)
	assert.Equal(t, Command{ID: 3, Value: 68}, puts[0].cmd)
}

func TestFetchErrorsPropagate(t *testing.T) {
	f := newFakeMBox(t)
	f.broken["zone/temperature/3"] = true

	_, err := f.adapter(3).CurrentTemperature()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mBox API error 500")
}

func TestSystemMode(t *testing.T) {
	f := newFakeMBox(t)
	f.responses["hc/mode/0"] = `{"value": 1}`

	host := strings.TrimPrefix(f.server.URL, "http://")
	api := NewClient(host, "testkey")
	mode, err := NewSystem(api).Mode()
	require.NoError(t, err)
	assert.Equal(t, 1, mode)
}
