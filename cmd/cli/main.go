package main

import (
	"context"
	"log"
	"os"

	"github.com/dishcovery/dishcovery/internal/buildinfo"
	"github.com/dishcovery/dishcovery/internal/client/cli"
	"github.com/dishcovery/dishcovery/internal/client/config"
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
