package main

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/brutella/hc/log"
	"github.com/urfave/cli/v2"

	"github.com/cloudkucooland/toowarm"
	"github.com/cloudkucooland/toowarm/accessory"
	"github.com/cloudkucooland/toowarm/config"
	"github.com/cloudkucooland/toowarm/platform"
)

func main() {
	var dir, file string

	app := cli.App{
		Name:  "toowarm",
		Usage: "HomeKit bridge for Messana mBox controllers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Value:       "config",
				Usage:       "configuration directory",
				Destination: &dir,
			},
			&cli.StringFlag{
				Name:        "config",
				Value:       "server.json",
				Usage:       "configuration file",
				Destination: &file,
			},
		},
		Action: func(c *cli.Context) error {
			fulldir, err := filepath.Abs(dir)
			if err != nil {
				log.Info.Panic("unable to get config directory", dir)
			}
			cfd := filepath.Join(fulldir, file)
			raw, err := ioutil.ReadFile(cfd)
			if err != nil {
				log.Info.Panic("unable to open config: ", cfd)
			}

			var conf config.Config
			if err := json.Unmarshal(raw, &conf); err != nil {
				log.Info.Panic(err, string(raw))
			}

			conf.ConfigDir = fulldir
			conf.ConfigFile = cfd
			config.Set(&conf)

			// spin up platforms to talk to devices
			toowarm.BootstrapPlatforms(&conf)

			// load accessory configs
			accdir := filepath.Join(fulldir, "accessories")
			files, err := ioutil.ReadDir(accdir)
			if err != nil {
				log.Info.Panic(err)
			}
			for _, f := range files {
				acc, err := fileToAccessory(filepath.Join(accdir, f.Name()), f.Name())
				if err != nil {
					log.Info.Print(err.Error())
					continue
				}
				toowarm.AddAccessory(acc)
			}

			// HC can only be started once all accessories are known
			toowarm.StartHC()

			// run all the background processes
			platform.Background()

			// wait for signal to shut down
			sigch := make(chan os.Signal, 3)
			signal.Notify(sigch, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGHUP, os.Interrupt)

			// loop until signal sent
			sig := <-sigch

			log.Info.Printf("shutdown requested by signal: %s", sig)
			platform.ShutdownAllPlatforms()
			return nil
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Info.Panic(err)
	}
}

func fileToAccessory(file string, name string) (*accessory.TWAccessory, error) {
	raw, err := ioutil.ReadFile(file)
	if err != nil {
		log.Info.Printf("unable to open accessory config file: %s %s", file, err.Error())
		return nil, err
	}

	var acc accessory.TWAccessory
	if err := json.Unmarshal(raw, &acc); err != nil {
		log.Info.Println(err, string(raw))
		return nil, err
	}

	acc.Name = name[:strings.LastIndex(name, ".")]
	return &acc, nil
}
