package joystick

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/models"
)

type undefined struct{}

// Undefined stands for a default that has no value, such as the user id of an
// unauthenticated call.
var Undefined = undefined{}

// CommandEnv holds the service URLs every command template may reference.
type CommandEnv struct {
	StreamAPIURL   string
	SwitcherAPIURL string
}

type templateVar struct {
	key   string
	value any
}

// ParseActionCommand renders command by replacing every "$key" with the string
// form of its value. Defaults are device, mediamtx, switcher, userId and the
// device information fields; params override defaults with the same key.
//
// Keys are applied in a fixed order and matched as plain substrings, so "$id"
// also rewrites the start of "$identity" when both keys are present.
func ParseActionCommand(command string, device *models.Device, params map[string]any, env CommandEnv, auth *AuthContext) string {
	vars := commandVars(device, params, env, auth)

	rendered := command
	for _, v := range vars {
		token := "$" + v.key
		if strings.Contains(rendered, token) {
			rendered = strings.ReplaceAll(rendered, token, FormatValue(v.value))
		}
	}
	return rendered
}

func commandVars(device *models.Device, params map[string]any, env CommandEnv, auth *AuthContext) []templateVar {
	var userID any = Undefined
	if auth != nil && auth.UserID != "" {
		userID = auth.UserID
	}

	vars := []templateVar{
		{"device", device.ID},
		{"mediamtx", env.StreamAPIURL},
		{"switcher", env.SwitcherAPIURL},
		{"userId", userID},
	}
	index := map[string]int{}
	for i, v := range vars {
		index[v.key] = i
	}

	set := func(key string, value any) {
		if i, ok := index[key]; ok {
			vars[i].value = value
			return
		}
		index[key] = len(vars)
		vars = append(vars, templateVar{key, value})
	}

	for _, key := range common.SortedKeys(device.Information) {
		set(key, device.Information[key])
	}
	for _, key := range common.SortedKeys(params) {
		set(key, params[key])
	}
	return vars
}

// FormatValue renders a template value the way it is substituted into a
// command. Scalars render as their plain text. Slices and maps render as
// compact JSON, so []any{1, "a"} becomes [1,"a"] rather than 1,a.
func FormatValue(value any) string {
	switch v := value.(type) {
	case undefined:
		return "undefined"
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return v.String()
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(raw)
}
