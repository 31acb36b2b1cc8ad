package cfgm

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251207-go-pkg-vitecfg/pkg/templexp"
)

var (
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
)

// configKey 返回字段的配置 key (json tag 名称)，无 key 时返回空串。
func configKey(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

func isStructType(typ reflect.Type) bool {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	return typ.Kind() == reflect.Struct && typ != durationType && typ != timeType
}

// structToMap 把配置结构体转为以 json key 为键的嵌套 map。
func structToMap(cfg any) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(cfg))
	if val.Kind() != reflect.Struct {
		return map[string]any{}
	}

	out := make(map[string]any)
	typ := val.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		key := configKey(field)
		if key == "" || !field.IsExported() {
			continue
		}

		fv := val.Field(i)
		switch {
		case isStructType(field.Type):
			out[key] = structToMap(fv.Interface())
		case fv.Kind() == reflect.Slice && !fv.IsNil():
			items := make([]any, fv.Len())
			for j := range fv.Len() {
				items[j] = fv.Index(j).Interface()
			}
			out[key] = items
		default:
			out[key] = fv.Interface()
		}
	}

	return out
}

// expandStrings 对 map 中的字符串值 (含切片元素) 执行模板展开。
func expandStrings(m map[string]any, lookup templexp.LookupFunc) error {
	for key, value := range m {
		switch typed := value.(type) {
		case string:
			expanded, err := templexp.Expand(typed, lookup)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			m[key] = expanded
		case map[string]any:
			if err := expandStrings(typed, lookup); err != nil {
				return fmt.Errorf("%s.%w", key, err)
			}
		case []any:
			for i, item := range typed {
				s, ok := item.(string)
				if !ok {
					continue
				}
				expanded, err := templexp.Expand(s, lookup)
				if err != nil {
					return fmt.Errorf("%s[%d]: %w", key, i, err)
				}
				typed[i] = expanded
			}
		}
	}

	return nil
}

func parseConfigBytes(path string, content []byte) (map[string]any, error) {
	var raw any
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(content, &raw)
	} else {
		err = yamlv3.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return map[string]any{}, nil
	}

	m, ok := normalizeKeys(raw).(map[string]any)
	if !ok {
		return nil, errors.New("config root must be object")
	}

	return m, nil
}

func normalizeKeys(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		for k, v := range typed {
			typed[k] = normalizeKeys(v)
		}
		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[fmt.Sprint(k)] = normalizeKeys(v)
		}
		return out
	case []any:
		for i := range typed {
			typed[i] = normalizeKeys(typed[i])
		}
		return typed
	default:
		return val
	}
}

func mergeMaps(dst, src map[string]any) {
	for key, value := range src {
		if sub, ok := value.(map[string]any); ok {
			if dstSub, ok := dst[key].(map[string]any); ok {
				mergeMaps(dstSub, sub)
				continue
			}
		}
		dst[key] = value
	}
}

func setByPath(dst map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := dst
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

func decodeConfigMap(data map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}
