package toowarm

import (
	"fmt"

	"github.com/brutella/hc/log"

	"github.com/cloudkucooland/toowarm/accessory"
	"github.com/cloudkucooland/toowarm/config"
	twhc "github.com/cloudkucooland/toowarm/homecontrol"
	"github.com/cloudkucooland/toowarm/messana"
	"github.com/cloudkucooland/toowarm/owm"
	"github.com/cloudkucooland/toowarm/ping"
	"github.com/cloudkucooland/toowarm/platform"
	"github.com/cloudkucooland/toowarm/twhttp"
)

// BootstrapPlatforms sets up all the platforms
// hardcode this until I can spend the time to make it dynamic
func BootstrapPlatforms(c *config.Config) {
	var h twhttp.Platform
	platform.RegisterPlatform("HTTP", h)

	var m messana.Platform
	platform.RegisterPlatform("Messana", m)

	var owmp owm.Platform
	platform.RegisterPlatform("OWM", owmp)

	var png ping.Platform
	platform.RegisterPlatform("Ping", png)

	var hcp twhc.HCPlatform
	platform.RegisterPlatform("HomeControl", hcp)

	platform.StartupAllPlatforms(c)
}

// AddAccessory is a wrapper to each platform's AddAccessory, no need to expose each platform to the daemon
func AddAccessory(h *accessory.TWAccessory) error {
	if h.Platform == "" {
		err := fmt.Errorf("accessory platform unset: %+v", h)
		log.Info.Print(err)
		return err
	}

	p, ok := platform.GetPlatform(h.Platform)
	if !ok {
		err := fmt.Errorf("unknown accessory platform: %+v", h)
		log.Info.Print(err)
		return err
	}

	p.AddAccessory(h)
	return nil
}

// StartHC is just a wrapper, no need to expose twhc to the daemon
func StartHC() {
	twhc.StartHC()
}
