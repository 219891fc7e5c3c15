package socketio_utils

// Payload extraction helpers. Socket.io delivers JSON objects as
// map[string]interface{} with every number decoded as float64.

func Payload(args []interface{}) (map[string]interface{}, bool) {
	if len(args) < 1 {
		return nil, false
	}
	payload, ok := args[0].(map[string]interface{})
	return payload, ok
}

func StringField(payload map[string]interface{}, key string) (string, bool) {
	value, ok := payload[key].(string)
	return value, ok
}

func IntField(payload map[string]interface{}, key string) (int, bool) {
	value, ok := payload[key].(float64)
	if !ok {
		return 0, false
	}
	return int(value), true
}

func FloatField(payload map[string]interface{}, key string) (float64, bool) {
	value, ok := payload[key].(float64)
	return value, ok
}

func BoolField(payload map[string]interface{}, key string) (bool, bool) {
	value, ok := payload[key].(bool)
	return value, ok
}

func IntSliceField(payload map[string]interface{}, key string) []int {
	raw, ok := payload[key].([]interface{})
	if !ok {
		return nil
	}
	values := make([]int, 0, len(raw))
	for _, item := range raw {
		if f, ok := item.(float64); ok {
			values = append(values, int(f))
		}
	}
	return values
}
