package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/buildinfo"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)
	gin.SetMode(gin.ReleaseMode)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}

}
