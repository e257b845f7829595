package messana

import (
	"fmt"
)

// responses are minimal versions of just what we need here
type zoneStatus struct {
	Status int `json:"status"`
}

type apiValue struct {
	Value float64 `json:"value"`
}

// ZoneAdapter translates one thermal zone between HomeKit's thermostat
// model and the mBox's. The controller stores temperatures in Fahrenheit
// and splits "target state" across the zone's on/off flag and the shared
// system mode; HomeKit wants Celsius and a single enum.
// Nothing is cached -- every read goes back to the controller.
type ZoneAdapter struct {
	Zone   int // assigned by the controller, stable for the life of the bridge
	api    *Client
	system *System
}

// NewZoneAdapter builds the adapter for a single zone index
func NewZoneAdapter(zone int, api *Client, system *System) *ZoneAdapter {
	return &ZoneAdapter{Zone: zone, api: api, system: system}
}

// CurrentHeatingCoolingState reports what the zone is physically doing
// right now: 0 off, 1 heating, 2 cooling. Passed through unmodified.
func (z *ZoneAdapter) CurrentHeatingCoolingState() (int, error) {
	var s zoneStatus
	if err := z.api.FetchJSON(fmt.Sprintf("zone/thermalStatus/%d", z.Zone), &s); err != nil {
		return 0, err
	}
	return s.Status, nil
}

// TargetHeatingCoolingState reports what the zone is asked to do.
// An off zone is 0, full stop -- the shared mode is not consulted.
// An on zone reports the controller mode shifted up one, since HomeKit
// reserves 0 for off.
func (z *ZoneAdapter) TargetHeatingCoolingState() (int, error) {
	var s zoneStatus
	if err := z.api.FetchJSON(fmt.Sprintf("zone/status/%d", z.Zone), &s); err != nil {
		return 0, err
	}
	if s.Status == 0 {
		return 0, nil
	}

	mode, err := z.system.Mode()
	if err != nil {
		return 0, err
	}
	return mode + 1, nil
}

// SetTargetHeatingCoolingState turns the zone on or off. The zone API
// only knows {0, 1}; heat vs cool belongs to the controller mode, so
// anything above 1 is clamped down to "on".
func (z *ZoneAdapter) SetTargetHeatingCoolingState(state int) error {
	if state > 1 {
		state = 1
	}
	return z.api.PutJSON("zone/status", Command{ID: z.Zone, Value: float64(state)})
}

// CurrentTemperature reports the measured zone temperature in Celsius
func (z *ZoneAdapter) CurrentTemperature() (float64, error) {
	var v apiValue
	if err := z.api.FetchJSON(fmt.Sprintf("zone/temperature/%d", z.Zone), &v); err != nil {
		return 0, err
	}
	return ToCelsius(v.Value), nil
}

// TargetTemperature reports the zone setpoint in Celsius
func (z *ZoneAdapter) TargetTemperature() (float64, error) {
	var v apiValue
	if err := z.api.FetchJSON(fmt.Sprintf("zone/setpoint/%d", z.Zone), &v); err != nil {
		return 0, err
	}
	return ToCelsius(v.Value), nil
}

// SetTargetTemperature writes a new setpoint. Setting a temperature
// implicitly powers the zone on, so two independent PUTs go out: the
// on-write first, then the setpoint. There is no transaction here; if
// the second write fails the zone is left on with a stale setpoint and
// the error says so.
func (z *ZoneAdapter) SetTargetTemperature(celsius float64) error {
	onErr := z.api.PutJSON("zone/status", Command{ID: z.Zone, Value: 1})
	spErr := z.api.PutJSON("zone/setpoint", Command{ID: z.Zone, Value: ToFahrenheit(celsius)})

	if onErr != nil {
		return onErr
	}
	return spErr
}
