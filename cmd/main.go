package main

import (
	"github.com/corray333/backend-labs/notify/internal/app"
	"github.com/corray333/backend-labs/notify/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp(config.MustNew()).Run()
}
