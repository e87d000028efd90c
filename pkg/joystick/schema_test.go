package joystick_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"joystick.io/fleet-control/pkg/joystick"
)

func mustSchema(t *testing.T, raw string) *joystick.ParamSchema {
	schema, err := joystick.ParseParamSchema([]byte(raw))
	require.NoError(t, err)
	require.NotNil(t, schema)
	return schema
}

func TestParseParamSchemaEmpty(t *testing.T) {
	for _, raw := range []string{"", "  ", "null"} {
		schema, err := joystick.ParseParamSchema([]byte(raw))
		assert.NoError(t, err)
		assert.Nil(t, schema)
	}

	_, err := joystick.ParseParamSchema([]byte("{not json"))
	assert.Error(t, err)
}

func TestValidateIntegerRequired(t *testing.T) {
	v := joystick.BuildParamValidator(mustSchema(t, `{"properties":{"fps":{"type":"integer"}},"required":["fps"]}`))

	assert.Equal(t, []string{"fps"}, v.Fields())
	assert.False(t, v.IsOptional("fps"))

	out, issues := v.Validate(map[string]any{"fps": float64(30)})
	assert.Empty(t, issues)
	assert.Equal(t, int64(30), out["fps"])

	_, issues = v.Validate(map[string]any{"fps": 29.5})
	require.Len(t, issues, 1)
	assert.Equal(t, joystick.ParamIssue{Field: "fps", Message: "expected integer"}, issues[0])

	_, issues = v.Validate(map[string]any{})
	require.Len(t, issues, 1)
	assert.Equal(t, "is required", issues[0].Message)

	_, issues = v.Validate(map[string]any{"fps": nil})
	require.Len(t, issues, 1)
	assert.Equal(t, "is required", issues[0].Message)

	_, issues = v.Validate(map[string]any{"fps": "fast"})
	assert.Len(t, issues, 1)
}

func TestValidateEnum(t *testing.T) {
	v := joystick.BuildParamValidator(mustSchema(t,
		`{"properties":{"mode":{"type":"string","enum":["live","offline"]}},"required":["mode"]}`))

	out, issues := v.Validate(map[string]any{"mode": "live"})
	assert.Empty(t, issues)
	assert.Equal(t, "live", out["mode"])

	_, issues = v.Validate(map[string]any{"mode": "turbo"})
	require.Len(t, issues, 1)
	assert.Equal(t, "must be one of live, offline", issues[0].Message)
}

func TestValidateOptionalAndDefaults(t *testing.T) {
	v := joystick.BuildParamValidator(mustSchema(t, `{
		"properties": {
			"enabled": {"type": "boolean"},
			"quality": {"type": "number", "default": 80},
			"label":   {"type": "string"},
			"rois":    {"type": "array"}
		}
	}`))

	assert.True(t, v.IsOptional("label"))
	assert.True(t, v.IsOptional("unknown"))

	out, issues := v.Validate(map[string]any{})
	assert.Empty(t, issues)
	assert.Equal(t, false, out["enabled"])
	assert.Equal(t, float64(80), out["quality"])
	assert.NotContains(t, out, "label")
	assert.NotContains(t, out, "rois")

	rois := []any{map[string]any{"x": 1}}
	out, issues = v.Validate(map[string]any{"rois": rois, "extra": 1})
	assert.Empty(t, issues)
	assert.Equal(t, rois, out["rois"])
	assert.NotContains(t, out, "extra")
}

func TestValidateReportsEveryField(t *testing.T) {
	v := joystick.BuildParamValidator(mustSchema(t,
		`{"properties":{"a":{"type":"integer"},"b":{"type":"string"}},"required":["a","b"]}`))

	_, issues := v.Validate(map[string]any{"a": 1.5})
	require.Len(t, issues, 2)
	assert.Equal(t, "a", issues[0].Field)
	assert.Equal(t, "b", issues[1].Field)
}

func TestValidateOnlyNumbersCoerce(t *testing.T) {
	v := joystick.BuildParamValidator(mustSchema(t, `{
		"properties": {
			"label": {"type": "string"},
			"on":    {"type": "boolean"},
			"n":     {"type": "integer"},
			"mode":  {"type": "string", "enum": ["live", "offline"]}
		}
	}`))

	out, issues := v.Validate(map[string]any{"label": 5, "on": "true", "n": "5", "mode": true})
	assert.ElementsMatch(t, []joystick.ParamIssue{
		{Field: "label", Message: "expected string"},
		{Field: "mode", Message: "expected string"},
		{Field: "on", Message: "expected boolean"},
	}, issues)
	assert.Equal(t, int64(5), out["n"])

	out, issues = v.Validate(map[string]any{"label": "cam", "on": true, "n": 5.0, "mode": "live"})
	assert.Empty(t, issues)
	assert.Equal(t, map[string]any{"label": "cam", "on": true, "n": int64(5), "mode": "live"}, out)
}
