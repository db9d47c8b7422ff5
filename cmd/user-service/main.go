package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/booking-platform/services/internal/app"
)

//	@title			User Service API
//	@version		1.0
//	@description	CRUD and activation actions for customers, administrators and employees.
//	@BasePath		/

//	@accept		json
//	@produce	json

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := app.NewUserCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
