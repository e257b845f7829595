package twhttp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/brutella/hc/log"
	"github.com/gorilla/mux"

	twaccessory "github.com/cloudkucooland/toowarm/accessory"
	"github.com/cloudkucooland/toowarm/config"
	"github.com/cloudkucooland/toowarm/messana"
	"github.com/cloudkucooland/toowarm/platform"
)

// Platform is the primary handle
type Platform struct {
	Running bool
}

var srv http.Server

// Startup is called by the platform management to get things running
func (h Platform) Startup(c *config.Config) platform.Control {
	// each platform should register its own routes
	r := mux.NewRouter()
	r.HandleFunc("/", homeHandler)
	r.HandleFunc("/messana/refresh", messana.Handler)
	r.HandleFunc("/messana/refresh/{zone}", messana.Handler)

	srv = http.Server{
		Addr:         c.HTTPAddress,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      r,
	}

	go func() {
		log.Info.Printf("starting up HTTP control channel on %s", c.HTTPAddress)
		if err := srv.ListenAndServe(); err != nil {
			log.Info.Print(err)
		}
	}()

	return h
}

// Shutdown is called by the platform management to shut things down
func (h Platform) Shutdown() platform.Control {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	srv.Shutdown(ctx)
	return h
}

func homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	fmt.Fprint(w, "{ \"status\": \"OK\" }")
}

// AddAccessory - do not use, just satisfies the Platform interface
func (h Platform) AddAccessory(a *twaccessory.TWAccessory) {
	//
}

// GetAccessory - do not use, just satisfies the Platform interface
func (h Platform) GetAccessory(name string) (*twaccessory.TWAccessory, bool) {
	return nil, false
}

// Background - just satisfies the Platform interface
func (h Platform) Background() {
	// nothing to do
}
