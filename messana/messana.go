package messana

import (
	"sync"
	"time"

	"github.com/brutella/hc/accessory"
	"github.com/brutella/hc/log"
	"github.com/sirupsen/logrus"

	twaccessory "github.com/cloudkucooland/toowarm/accessory"
	"github.com/cloudkucooland/toowarm/action"
	"github.com/cloudkucooland/toowarm/config"
	"github.com/cloudkucooland/toowarm/devices"
	"github.com/cloudkucooland/toowarm/platform"
	"github.com/cloudkucooland/toowarm/runner"
)

// Platform is the platform handle for the Messana mBox stuff
type Platform struct {
	Running bool
}

var zones map[string]*twaccessory.TWAccessory
var adapters map[string]*ZoneAdapter
var doOnce sync.Once

var apiClient *Client
var system *System
var pullrate time.Duration

// Startup is called by the platform management to start the platform up
func (p Platform) Startup(c *config.Config) platform.Control {
	if c.MessanaHost == "" {
		log.Info.Print("no mBox controller configured, Messana platform idle")
		return p
	}
	if c.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	apiClient = NewClient(c.MessanaHost, c.MessanaAPIKey)
	system = NewSystem(apiClient)

	pullrate = time.Second * 60
	if c.MessanaPullRate > 0 {
		pullrate = time.Second * time.Duration(c.MessanaPullRate)
	}

	p.Running = true
	return p
}

// Shutdown is called by the platform management to shut things down
func (p Platform) Shutdown() platform.Control {
	p.Running = false
	return p
}

// AddAccessory adds a zone thermostat and registers it with HC
func (p Platform) AddAccessory(a *twaccessory.TWAccessory) {
	doOnce.Do(func() {
		zones = make(map[string]*twaccessory.TWAccessory)
		adapters = make(map[string]*ZoneAdapter)
	})

	if apiClient == nil {
		log.Info.Print("mBox controller not configured, ignoring zone accessory")
		return
	}

	if a.Info.Name == "" {
		a.Info.Name = a.Name
	}
	a.Type = accessory.TypeThermostat
	a.Info.Manufacturer = "Messana"
	a.Info.Model = "mBox zone"
	a.Info.FirmwareRevision = "0.0.1"
	// zone indexes are small and stable, offset them out of the range
	// used by the other platforms
	a.Info.ID = uint64(a.Zone) + 2000

	zone := NewZoneAdapter(a.Zone, apiClient, system)
	adapters[a.Name] = zone

	a.Device = devices.NewMessanaZone(a.Info)
	a.Accessory = a.Device.(*devices.MessanaZone).Accessory

	zones[a.Name] = a

	// add to HC for GUI
	h, _ := platform.GetPlatform("HomeControl")
	h.AddAccessory(a)

	// set initial state
	updateHCGUI(a, zone)

	// install callbacks: if we get an update from HC, push it to the mBox
	t := a.Device.(*devices.MessanaZone).Thermostat
	t.TargetHeatingCoolingState.OnValueRemoteUpdate(func(state int) {
		log.Info.Printf("setting [%s] target state to [%d] from HC handler", a.Name, state)
		if err := zone.SetTargetHeatingCoolingState(state); err != nil {
			log.Info.Println(err.Error())
		}
	})
	t.TargetTemperature.OnValueRemoteUpdate(func(c float64) {
		log.Info.Printf("setting [%s] setpoint to [%.1fC] from HC handler", a.Name, c)
		if err := zone.SetTargetTemperature(c); err != nil {
			log.Info.Println(err.Error())
		}
	})

	a.Runner = messanaRunner
	log.Info.Printf("Messana zone %d: %s", a.Zone, a.Info.Name)
}

func messanaRunner(a *twaccessory.TWAccessory, d *action.Action) {
	zone, ok := adapters[a.Name]
	if !ok {
		log.Info.Printf("no adapter for [%s]", a.Name)
		return
	}
	switch d.Verb {
	case "On":
		if err := zone.SetTargetHeatingCoolingState(1); err != nil {
			log.Info.Println(err.Error())
		}
	case "Off":
		if err := zone.SetTargetHeatingCoolingState(0); err != nil {
			log.Info.Println(err.Error())
		}
	default:
		log.Info.Printf("unknown messana action verb: %s", d.Verb)
	}
}

// GetAccessory looks up a zone by name
func (p Platform) GetAccessory(name string) (*twaccessory.TWAccessory, bool) {
	val, ok := zones[name]
	return val, ok
}

// Background runs a background Go task periodically pulling all zones
func (p Platform) Background() {
	if apiClient == nil {
		return
	}
	go func() {
		for range time.Tick(pullrate) {
			p.backgroundPuller()
		}
	}()
}

func (p Platform) backgroundPuller() {
	for name, a := range zones {
		updateHCGUI(a, adapters[name])
	}
}

// updateHCGUI pulls a zone and pushes fresh values into the HomeKit GUI.
// Errors are logged and the stale GUI value stands until the next pull.
func updateHCGUI(a *twaccessory.TWAccessory, zone *ZoneAdapter) {
	t := a.Device.(*devices.MessanaZone).Thermostat

	if cur, err := zone.CurrentTemperature(); err != nil {
		log.Info.Println(err.Error())
	} else if t.CurrentTemperature.GetValue() != cur {
		t.CurrentTemperature.SetValue(cur)
	}

	if sp, err := zone.TargetTemperature(); err != nil {
		log.Info.Println(err.Error())
	} else if t.TargetTemperature.GetValue() != sp {
		t.TargetTemperature.SetValue(sp)
	}

	if state, err := zone.CurrentHeatingCoolingState(); err != nil {
		log.Info.Println(err.Error())
	} else if t.CurrentHeatingCoolingState.GetValue() != state {
		t.CurrentHeatingCoolingState.SetValue(state)
	}

	target, err := zone.TargetHeatingCoolingState()
	if err != nil {
		log.Info.Println(err.Error())
		return
	}
	prev := t.TargetHeatingCoolingState.GetValue()
	if prev == target {
		return
	}
	t.TargetHeatingCoolingState.SetValue(target)

	// turned on or off outside of HomeKit, run any configured actions
	if target == 0 {
		runner.RunActions(a.MatchActions("Off"))
	} else if prev == 0 {
		runner.RunActions(a.MatchActions("On"))
	}
}
