package messana

import (
	"fmt"
	"net/http"

	"github.com/brutella/hc/log"
	"github.com/gorilla/mux"

	"github.com/cloudkucooland/toowarm/platform"
)

// Handler is registered with the HTTP platform
// it forces a fresh pull of one zone (or all) without waiting for the poller
func Handler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["zone"]

	m, ok := platform.GetPlatform("Messana")
	if !ok {
		log.Info.Print("unable to get messana platform, giving up")
		http.Error(w, `{ "status": "bad" }`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")

	if name == "" {
		m.(Platform).backgroundPuller()
		fmt.Fprint(w, `{ "status": "OK" }`)
		return
	}

	a, ok := m.GetAccessory(name)
	if !ok {
		log.Info.Printf("refresh request for unknown zone (%s), ignoring", name)
		http.Error(w, `{ "status": "bad" }`, http.StatusNotAcceptable)
		return
	}
	updateHCGUI(a, adapters[a.Name])
	fmt.Fprint(w, `{ "status": "OK" }`)
}
