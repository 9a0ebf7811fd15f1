package server

import (
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"
)

func health(checks map[string]Pinger) http.HandlerFunc {
	// swagger:operation GET /health Health Health
	//
	// Ping service's dependencies.
	//
	// ---
	// produces:
	// - application/json
	// responses:
	//   '200':
	//     description: every dependency is reachable
	//     schema:
	//       "$ref": "#/definitions/Response"
	//   '503':
	//     description: some dependency is unreachable
	//     schema:
	//       "$ref": "#/definitions/Response"

	return func(w http.ResponseWriter, r *http.Request) {
		var (
			mu     sync.Mutex
			status = make(map[string]string, len(checks))
		)

		// every check runs to the end, so the response reports each dependency
		var gr errgroup.Group
		for name, p := range checks {
			name, p := name, p
			gr.Go(func() error {
				res := "ok"
				err := p.Ping(r.Context())
				if err != nil {
					log.WithError(err).WithField("dependency", name).Error("health check failed")
					res = err.Error()
				}

				mu.Lock()
				status[name] = res
				mu.Unlock()

				return err
			})
		}

		if err := gr.Wait(); err != nil {
			write(w, http.StatusServiceUnavailable, Response{
				Message: err.Error(),
				Data:    status,
			})
			return
		}

		writeOK(w, http.StatusOK, status)
	}
}
