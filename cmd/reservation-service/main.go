package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/booking-platform/services/internal/app"
)

//	@title			Reservation Service API
//	@version		1.0
//	@description	CRUD and status actions for restaurant reservations.
//	@BasePath		/

//	@accept		json
//	@produce	json

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := app.NewReservationCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
