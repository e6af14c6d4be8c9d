package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/flying-scorpio/i3blocks-contrib/internal/corona"
)

var cfgFilename = flag.String("config", "", "path to corona.cfg (default ~/.config/corona/corona.cfg if present)")

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := corona.Start(ctx, *cfgFilename); err != nil {
		log.WithField("err", err).Error("corona block failed")
		stop()
		os.Exit(1)
	}
}
