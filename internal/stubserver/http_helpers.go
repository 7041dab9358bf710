package stubserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
)

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeStatusError answers with the game server's in-band error sentinel.
func writeStatusError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  statusError,
		"message": message,
	})
}

func writeAck(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  statusOK,
		"message": message,
	})
}

// flexCount accepts a JSON number or a numeric string.
type flexCount int

func (c *flexCount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || string(data) == "null" {
		*c = 0
		return nil
	}
	value, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}
	*c = flexCount(value)
	return nil
}
