package accessory

import (
	hcaccessory "github.com/brutella/hc/accessory"
	"github.com/brutella/hc/log"
	"github.com/cloudkucooland/toowarm/action"
)

// TWAccessory is the accessory type, TooWarm's stuff, plus hc's stuff
type TWAccessory struct {
	Platform string // Messana, OWM, Ping, etc
	Name     string // the name used internally
	// the accessory's config file name or dynamically determined for discovered devices
	IP       string // the IP address of the device (ping targets)
	Username string // for OWM: city name
	Password string // for OWM: API key
	Zone     int    // for Messana: the controller's zone index, stable for the life of the bridge

	Type hcaccessory.AccessoryType // defined at https://github.com/brutella/hc/tree/master/accessory

	// embedded struct (pointer)
	Info                   hcaccessory.Info // defined at https://github.com/brutella/hc/blob/master/accessory/accessory.go
	*hcaccessory.Accessory                  // set when the device is added to HomeControl

	Device interface{}

	Actions []action.Action
	Runner  func(*TWAccessory, *action.Action)
}

// MatchActions returns a slice of actions that should be run
// jumping through hoops since including platform here would be circular
func (a TWAccessory) MatchActions(state string) []*action.Action {
	var actions []*action.Action
	for i := range a.Actions {
		if a.Actions[i].TriggerState == state {
			log.Info.Printf("%s: %+v", state, a.Actions[i])
			actions = append(actions, &a.Actions[i])
		}
	}
	return actions
}
