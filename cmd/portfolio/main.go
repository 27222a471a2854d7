package main

import (
	"context"
	"log"

	// Embedded zone data so the about page can show local time on hosts
	// without a system tz database.
	_ "time/tzdata"

	"github.com/dalemusser/portfolio/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
