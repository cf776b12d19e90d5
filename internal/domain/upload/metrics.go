package upload

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fileOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "fileshelf_file_operations_total",
		Help: "File record store operations by outcome",
	},
	[]string{"op", "result"},
)

func observe(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrFileNotFound):
		result = "not_found"
	case errors.Is(err, ErrInvalidFileType):
		result = "invalid_type"
	default:
		result = "error"
	}
	fileOperationsTotal.WithLabelValues(op, result).Inc()
}
