package config

import (
	"github.com/brutella/hc"
)

// Config is the primary daemon configuration...
type Config struct {
	ConfigDir       string    // passed in from CLI
	ConfigFile      string    // server.json
	HTTPAddress     string    // net.Dial address format, :port is good enough
	Name            string    // what this bridge shows as
	ID              string    // displayed serial number -- if you run multiple instances, make sure each has a distinct ID
	HCConfig        hc.Config // base HomeControl configuration
	MessanaHost     string    // host[:port] of the mBox controller
	MessanaAPIKey   string    // apikey issued by the mBox
	MessanaPullRate int       // (seconds) how frequently to pull zone state -- 0 to disable
	OWMPullRate     int       // (seconds) how frequently to pull outdoor conditions -- 0 to disable
	PingRate        int       // (seconds) how frequently to ping watched hosts -- 0 to disable
	Verbose         bool      // enable wire-level debug logging
}

var runningConfig *Config

// Get a pointer to the global config
func Get() *Config {
	return runningConfig
}

// should only be called by the bootstrap
func Set(c *Config) {
	runningConfig = c
}
