package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"

	C "github.com/portside/httpmeta/constant"
	"github.com/portside/httpmeta/hub"
	"github.com/portside/httpmeta/hub/executor"
	"github.com/portside/httpmeta/log"
)

var (
	version            bool
	testConfig         bool
	configFile         string
	externalController string
	secret             string
)

func init() {
	flag.StringVar(&configFile, "f", os.Getenv("HTTPMETA_CONFIG_FILE"), "specify configuration file")
	flag.StringVar(&externalController, "ext-ctl", os.Getenv("HTTPMETA_OVERRIDE_EXTERNAL_CONTROLLER"),
		"override external controller address")
	flag.StringVar(&secret, "secret", os.Getenv("HTTPMETA_OVERRIDE_SECRET"),
		"override secret for RESTful API")
	flag.BoolVar(&version, "v", false, "show current version of httpmeta")
	flag.BoolVar(&testConfig, "t", false, "test configuration and exit")
	flag.Parse()
}

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	if version {
		fmt.Printf("httpmeta %s %s %s with %s %s\n",
			C.Version,
			runtime.GOOS,
			runtime.GOARCH,
			runtime.Version(),
			C.BuildTime,
		)
		return
	}

	if configFile == "" {
		configFile = "config.yaml"
	}

	if testConfig {
		if _, err := executor.ParseWithPath(configFile); err != nil {
			log.Errorln("configuration file %s test failed: %s", configFile, err.Error())
			os.Exit(1)
		}
		fmt.Printf("configuration file %s test is successful\n", configFile)
		return
	}

	var options []hub.Option
	if externalController != "" {
		options = append(options, hub.WithExternalController(externalController))
	}
	if secret != "" {
		options = append(options, hub.WithSecret(secret))
	}

	if err := hub.Parse(configFile, options...); err != nil {
		log.Fatalln("parse config error: %s", err.Error())
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	executor.Shutdown()
}
