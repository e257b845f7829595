package platform

import (
	"sync"

	"github.com/cloudkucooland/toowarm/accessory"
	"github.com/cloudkucooland/toowarm/config"
)

// Control is the interface which all platforms must satisfy
type Control interface {
	Startup(*config.Config) Control
	Background()
	Shutdown() Control
	AddAccessory(*accessory.TWAccessory)
	GetAccessory(string) (*accessory.TWAccessory, bool)
}

var platforms map[string]Control
var doOnce sync.Once

// RegisterPlatform is called whenever a new platform is instantiated
func RegisterPlatform(name string, control Control) {
	doOnce.Do(func() {
		platforms = make(map[string]Control)
	})
	if !platformExists(name) {
		platforms[name] = control
	}
}

// GetPlatform looks up a registered platform by name
func GetPlatform(name string) (Control, bool) {
	pc, ok := platforms[name]
	return pc, ok
}

func platformExists(name string) bool {
	_, ok := platforms[name]
	return ok
}

// ShutdownAllPlatforms is called at process stop to shutdown all platforms
func ShutdownAllPlatforms() {
	for name, platform := range platforms {
		platforms[name] = platform.Shutdown()
	}
}

// StartupAllPlatforms is called at process start to initialize all platforms
func StartupAllPlatforms(c *config.Config) {
	for name, platform := range platforms {
		platforms[name] = platform.Startup(c)
	}
}

// Background starts the background processes for every platform
func Background() {
	for _, platform := range platforms {
		platform.Background()
	}
}
