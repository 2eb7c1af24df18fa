package main

import (
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/manjunath2605/courtcase-app/api"
	"github.com/manjunath2605/courtcase-app/api/handlers"
	"github.com/manjunath2605/courtcase-app/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil { //initialize database, mail dispatcher and router
		log.Fatal(err)
	}

	port := a.Config.Port
	if port == "" {
		port = "5000"
	}
	zap.S().Infow("courtcase-app is up and running",
		"port", port,
		"url", a.Config.BaseURL,
	)
	handler := api.CORS(a.Config.AllowedOrigins)(a.Router)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), handler))
}
