package devices

import (
	"github.com/brutella/hc/accessory"
	"github.com/brutella/hc/service"
)

// MessanaZone is one radiant zone shown as a HomeKit thermostat
type MessanaZone struct {
	*accessory.Accessory
	Thermostat *service.Thermostat
}

func NewMessanaZone(info accessory.Info) *MessanaZone {
	acc := MessanaZone{}
	acc.Accessory = accessory.New(info, accessory.TypeThermostat)
	acc.Thermostat = service.NewThermostat()

	// radiant systems respond slowly, no point offering silly setpoints
	acc.Thermostat.TargetTemperature.SetMinValue(10.0)
	acc.Thermostat.TargetTemperature.SetMaxValue(32.0)
	acc.Thermostat.TargetTemperature.SetStepValue(0.5)

	acc.AddService(acc.Thermostat.Service)

	return &acc
}
