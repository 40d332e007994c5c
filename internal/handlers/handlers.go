package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

func SendJSON(w http.ResponseWriter, statusCode int, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return w.Write(payload)
}

func sendJSONOrLog(
	w http.ResponseWriter, logger logrus.FieldLogger, statusCode int, v any,
) {
	_, err := SendJSON(w, statusCode, v)
	if err != nil {
		logger.WithError(err).WithField("response", v).Error("unable to send response")
	}
}

func sendErrorOrLog(
	w http.ResponseWriter, logger logrus.FieldLogger, statusCode int, e error,
) {
	sendJSONOrLog(w, logger, statusCode, wrapError(e))
}

// internalError logs err and answers with a generic 500 so internals do
// not leak to clients.
func internalError(
	w http.ResponseWriter, logger logrus.FieldLogger, msg string, err error,
) {
	logger.WithError(err).Error(msg)
	sendJSONOrLog(w, logger, http.StatusInternalServerError, map[string]string{
		"error": http.StatusText(http.StatusInternalServerError),
	})
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

func Health(logger logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sendJSONOrLog(w, logger, http.StatusOK, map[string]string{
			"message": "ok",
		})
	}
}
