package main

import (
	"github.com/webshop-labs/order/internal/app"
	"github.com/webshop-labs/order/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
