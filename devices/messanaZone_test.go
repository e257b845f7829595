package devices

import (
	"testing"

	"github.com/brutella/hc/accessory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessanaZone(t *testing.T) {
	z := NewMessanaZone(accessory.Info{Name: "Office", ID: 2003})
	require.NotNil(t, z.Thermostat)
	require.NotNil(t, z.Thermostat.TargetHeatingCoolingState)
	require.NotNil(t, z.Thermostat.CurrentTemperature)

	z.Thermostat.TargetTemperature.SetValue(21.5)
	assert.Equal(t, 21.5, z.Thermostat.TargetTemperature.GetValue())
}

func TestNewOutdoorSensor(t *testing.T) {
	s := NewOutdoorSensor(accessory.Info{Name: "Outside", ID: 1341})
	require.NotNil(t, s.TemperatureSensor)
	require.NotNil(t, s.HumiditySensor)
	assert.Equal(t, "Outside Temp", s.TemperatureSensor.CurrentTemperature.Description)
}
