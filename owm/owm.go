package owm

import (
	"sync"
	"time"

	owm "github.com/briandowns/openweathermap"

	"github.com/brutella/hc/accessory"
	"github.com/brutella/hc/log"
	"github.com/brutella/hc/util"

	twaccessory "github.com/cloudkucooland/toowarm/accessory"
	"github.com/cloudkucooland/toowarm/config"
	"github.com/cloudkucooland/toowarm/devices"
	"github.com/cloudkucooland/toowarm/platform"
)

// Platform is the handle to the OWM sensors
type Platform struct {
	Running bool
}

var owms map[string]*twaccessory.TWAccessory
var doOnce sync.Once
var pullrate time.Duration

// Startup is called by the platform management to get things going
func (o Platform) Startup(c *config.Config) platform.Control {
	pullrate = time.Minute * 5
	if c.OWMPullRate > 0 {
		pullrate = time.Second * time.Duration(c.OWMPullRate)
	}
	o.Running = true
	return o
}

// Shutdown is called by the platform management to shut things down
func (o Platform) Shutdown() platform.Control {
	o.Running = false
	return o
}

// AddAccessory adds an OWM location and registers it with HC
func (o Platform) AddAccessory(a *twaccessory.TWAccessory) {
	doOnce.Do(func() {
		owms = make(map[string]*twaccessory.TWAccessory)
	})

	if a.Info.Name == "" {
		a.Info.Name = a.Username
	}
	a.Info.Manufacturer = "OpenWeatherMap"
	if a.Info.ID == 0 {
		a.Info.ID = 1341
	}

	storage, err := util.NewFileStorage("serials")
	if err != nil {
		log.Info.Println("unable to get storage")
	}
	a.Info.SerialNumber = util.GetSerialNumberForAccessoryName(a.Info.Name, storage)

	a.Type = accessory.TypeSensor
	a.Device = devices.NewOutdoorSensor(a.Info)
	a.Accessory = a.Device.(*devices.OutdoorSensor).Accessory

	owms[a.Name] = a

	// add to HC for GUI
	h, _ := platform.GetPlatform("HomeControl")
	h.AddAccessory(a)

	pull(a)
}

// GetAccessory looks up an OWM sensor
func (o Platform) GetAccessory(name string) (*twaccessory.TWAccessory, bool) {
	val, ok := owms[name]
	return val, ok
}

// Background starts up the go process to periodically update the sensor values
func (o Platform) Background() {
	go func() {
		for range time.Tick(pullrate) {
			o.backgroundPuller()
		}
	}()
}

func (o Platform) backgroundPuller() {
	for _, a := range owms {
		pull(a)
	}
}

// pull fetches current conditions; Username is the city, Password the API key
func pull(a *twaccessory.TWAccessory) {
	w, err := owm.NewCurrent("C", "EN", a.Password)
	if err != nil {
		log.Info.Println(err.Error())
		return
	}
	if err := w.CurrentByName(a.Username); err != nil {
		log.Info.Println(err.Error())
		return
	}

	d := a.Device.(*devices.OutdoorSensor)
	if d.TemperatureSensor.CurrentTemperature.GetValue() != w.Main.Temp {
		d.TemperatureSensor.CurrentTemperature.SetValue(w.Main.Temp)
	}
	if d.HumiditySensor.CurrentRelativeHumidity.GetValue() != float64(w.Main.Humidity) {
		d.HumiditySensor.CurrentRelativeHumidity.SetValue(float64(w.Main.Humidity))
	}
}
