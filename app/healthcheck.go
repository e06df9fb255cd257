package main

import (
	"context"
	"net/http"
	"time"
)

func (app *application) liveness(w http.ResponseWriter, r *http.Request) {
	env := envelope{
		"message":   "API is running",
		"timestamp": time.Now().UTC(),
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := app.backend.Ping(ctx); err != nil {
		app.storageUnavailableResponse(w, r, err)
		return
	}

	env := envelope{
		"status": "available",
		"system_info": map[string]string{
			"environment": app.config.Environment,
			"version":     app.config.Version,
			"storage":     app.backend.Driver,
		},
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
