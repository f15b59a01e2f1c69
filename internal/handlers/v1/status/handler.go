package status

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/carson-networks/vending-server/internal/logging"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Database pinger
}

func NewHandler(db pinger) Handler {
	return Handler{Database: db}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != "GET" {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
	defer cancel()

	stopTimer := logData.AddTiming("pingMs")
	err := h.Database.Ping(ctx)
	stopTimer()
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return err
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
