package main

import (
	"log"

	"github.com/Badsnus/cu-events/cmd/app"
	"github.com/Badsnus/cu-events/internal/adapters/config"
	setupHTTP "github.com/Badsnus/cu-events/internal/adapters/controller/http/setup"

	_ "time/tzdata"
)

func main() {
	cfg := config.Get()
	a, err := app.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	setupHTTP.Setup(a)

	if err = a.Start(); err != nil {
		log.Panic(err)
	}
}
