package cfgm

import (
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"
)

// FlagName 返回配置 key 对应的 CLI flag 名称。
func FlagName(key string) string {
	return strings.ReplaceAll(key, ".", "-")
}

// applyFlags 把用户显式设置的 flags 写入配置 map，返回写入数量。
func applyFlags[T any](cmd *cli.Command, config map[string]any, defaultConfig T) int {
	return applyFlagsRecursive(cmd, config, reflect.TypeOf(defaultConfig), "")
}

func applyFlagsRecursive(cmd *cli.Command, config map[string]any, typ reflect.Type, prefix string) int {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return 0
	}

	n := 0
	for i := range typ.NumField() {
		field := typ.Field(i)
		key := configKey(field)
		if key == "" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}

		if isStructType(field.Type) {
			n += applyFlagsRecursive(cmd, config, field.Type, key)
			continue
		}

		name := FlagName(key)
		if !cmd.IsSet(name) {
			continue
		}
		if value, ok := flagValue(cmd, name, field.Type); ok {
			setByPath(config, key, value)
			n++
		}
	}

	return n
}

// flagValue 按字段类型读取 flag 值，不支持的类型返回 false。
func flagValue(cmd *cli.Command, name string, typ reflect.Type) (any, bool) {
	if typ == durationType {
		return cmd.Duration(name), true
	}

	switch typ.Kind() {
	case reflect.String:
		return cmd.String(name), true
	case reflect.Bool:
		return cmd.Bool(name), true
	case reflect.Int:
		return cmd.Int(name), true
	case reflect.Int64:
		return cmd.Int64(name), true
	case reflect.Uint:
		return cmd.Uint(name), true
	case reflect.Uint64:
		return cmd.Uint64(name), true
	case reflect.Float64:
		return cmd.Float64(name), true
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.String {
			return cmd.StringSlice(name), true
		}
	}

	return nil, false
}
