package main

import (
	"flag"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"rothermal/config"
	"rothermal/runner"
	"rothermal/server"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func main() {
	confPath := flag.String("conf", "", "config file (default $ROTHERMAL_CONF or conf/config.ini)")
	serve := flag.Bool("serve", false, "serve the built profiles over websocket after the run")
	out := flag.String("out", "", "output directory, overrides the config")
	flag.Parse()

	cfg, err := config.Load(config.LoadEnv(*confPath))
	if err != nil {
		log.Fatal(err)
	}
	if *out != "" {
		cfg.Paths.OutputDir = *out
	}
	setupLogger(cfg.Log)

	build := func() (*runner.Catalog, error) { return runner.Run(cfg, log.StandardLogger()) }
	cat, err := build()
	if err != nil {
		log.Fatal(err)
	}
	if !*serve {
		return
	}

	upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}
	s := server.NewServer(cfg.Server.Addr, cfg.Server.MetricsPath, upgrader, server.NewStore(cat, build), nil)
	if err := s.Serve(); err != nil {
		log.Fatal("ListenAndServe: ", err)
	}
}

func setupLogger(c config.LogConfig) {
	if c.JSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		log.WithField("level", c.Level).Warn("unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
