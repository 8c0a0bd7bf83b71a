package main

import (
	"context"
	"log"
	"os"

	"github.com/wayfarer-app/wayfarer/internal/buildinfo"
	"github.com/wayfarer-app/wayfarer/internal/client/cli"
	"github.com/wayfarer-app/wayfarer/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
