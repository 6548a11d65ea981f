// entry point to the iconify HTTP server
package main

import (
	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/iconify/config"
	"github.com/ds124wfegd/iconify/internal/appServer"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	viperInstance, err := config.LoadConfig(config.GetEnv("ICONIFY_CONFIG", ""))
	if err != nil {
		logrus.Fatalf("Cannot load config. Error: {%s}", err.Error())
	}

	cfg, err := config.ParseConfig(viperInstance)
	if err != nil {
		logrus.Fatalf("Cannot parse config. Error: {%s}", err.Error())
	}

	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(level)
	}

	if err := appServer.NewServer(cfg); err != nil {
		logrus.Fatalf("Server stopped. Error: {%s}", err.Error())
	}
}
