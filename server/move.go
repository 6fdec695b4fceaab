package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"robodrive/command"
)

var errInvalidJSON = errors.New("invalid json")

// maxMoveBody 请求体上限，一个方向指令远小于此
const maxMoveBody = 4 << 10

// parseDirection 从 JSON 中取出 direction 字段（其它字段忽略）
func parseDirection(payload []byte) (command.Direction, error) {
	if !gjson.ValidBytes(payload) {
		return "", errInvalidJSON
	}
	v := gjson.GetBytes(payload, "direction")
	if v.Type != gjson.String {
		return "", fmt.Errorf("%w: missing direction", command.ErrUnknownDirection)
	}
	return command.Parse(v.Str)
}

// HandleMove POST /move {"direction":"forward"}
func HandleMove(robot *Robot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		payload, err := io.ReadAll(io.LimitReader(r.Body, maxMoveBody))
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		dir, err := parseDirection(payload)
		if err != nil {
			robot.Metrics().IncRejected()
			robot.log.Debugf("move rejected: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := robot.Apply(dir); err != nil {
			robot.log.Errorf("apply %s: %v", dir, err)
			http.Error(w, "motor error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
