package ping

import (
	"sync"
	"time"

	gping "github.com/go-ping/ping"

	"github.com/brutella/hc/accessory"
	"github.com/brutella/hc/characteristic"
	"github.com/brutella/hc/log"
	"github.com/brutella/hc/service"
	"github.com/brutella/hc/util"

	twaccessory "github.com/cloudkucooland/toowarm/accessory"
	"github.com/cloudkucooland/toowarm/config"
	"github.com/cloudkucooland/toowarm/platform"
)

// Platform is the platform handle for the reachability watchdogs
type Platform struct {
	Running bool
}

var watched map[string]*twaccessory.TWAccessory
var doOnce sync.Once
var pingrate time.Duration

// Startup is called by the platform management to start the platform up
func (p Platform) Startup(c *config.Config) platform.Control {
	pingrate = time.Second * 60
	if c.PingRate > 0 {
		pingrate = time.Second * time.Duration(c.PingRate)
	}
	p.Running = true
	return p
}

// Shutdown is called by the platform management to shut things down
func (p Platform) Shutdown() platform.Control {
	p.Running = false
	return p
}

// AddAccessory adds a watched host, then adds it to HC
func (p Platform) AddAccessory(a *twaccessory.TWAccessory) {
	doOnce.Do(func() {
		watched = make(map[string]*twaccessory.TWAccessory)
	})

	storage, err := util.NewFileStorage("serials")
	if err != nil {
		log.Info.Println("unable to get storage")
	}

	if a.Info.Name == "" {
		a.Info.Name = a.Name
	}
	a.Type = accessory.TypeSensor
	a.Info.SerialNumber = util.GetSerialNumberForAccessoryName(a.Info.Name, storage)
	a.Info.Model = "TooWarmPing"
	a.Info.Manufacturer = "deviousness"
	a.Info.FirmwareRevision = "0.0.1"

	a.Accessory = accessory.New(a.Info, a.Type)
	cs := service.NewContactSensor()
	cs.ContactSensorState.SetValue(pingHost(a.IP))
	a.Accessory.AddService(cs.Service)

	h, _ := platform.GetPlatform("HomeControl")
	h.AddAccessory(a)

	watched[a.IP] = a
}

// GetAccessory looks up a watched host by IP address
func (p Platform) GetAccessory(ip string) (*twaccessory.TWAccessory, bool) {
	val, ok := watched[ip]
	return val, ok
}

// Background runs a background Go task periodically pinging everything
func (p Platform) Background() {
	go func() {
		for range time.Tick(pingrate) {
			p.backgroundPuller()
		}
	}()
}

func (p Platform) backgroundPuller() {
	for _, a := range watched {
		up := pingHost(a.IP)
		cs := getCS(a)
		if cs != nil {
			cs.Value = up
		}
	}
}

// pingHost returns the contact-sensor state for a host: detected when it
// answers ICMP, not-detected when it doesn't
func pingHost(host string) int {
	pinger, err := gping.NewPinger(host)
	if err != nil {
		log.Info.Println(err.Error())
		return characteristic.ContactSensorStateContactNotDetected
	}
	pinger.Count = 1
	pinger.Timeout = time.Second * 2
	pinger.SetPrivileged(true)
	if err := pinger.Run(); err != nil {
		log.Info.Println(err.Error())
		return characteristic.ContactSensorStateContactNotDetected
	}
	if pinger.Statistics().PacketsRecv == 0 {
		return characteristic.ContactSensorStateContactNotDetected
	}
	return characteristic.ContactSensorStateContactDetected
}

func getCS(a *twaccessory.TWAccessory) *characteristic.Characteristic {
	for _, v := range a.GetServices() {
		if v.Type == service.TypeContactSensor {
			for _, cv := range v.Characteristics {
				if cv.Type == characteristic.TypeContactSensorState {
					return cv
				}
			}
		}
	}
	return nil
}
