package mcp

// Parameter extraction helpers. JSON numbers arrive as float64 regardless of
// the schema type, so the int helper converts.

func stringParam(params map[string]interface{}, key string) string {
	v, _ := params[key].(string)
	return v
}

func intParam(params map[string]interface{}, key string, def int) int {
	if v, ok := params[key].(float64); ok {
		return int(v)
	}
	return def
}

func floatParam(params map[string]interface{}, key string, def float64) float64 {
	if v, ok := params[key].(float64); ok {
		return v
	}
	return def
}

func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}
