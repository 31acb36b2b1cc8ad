package cfgm

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// ExampleYAML 根据配置结构体的 json/desc tag 生成带注释的 YAML 示例。
//
// 字符串值保持原样 (包括 ${...} 模板)，用单引号包裹。
func ExampleYAML[T any](cfg T, fileName string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# 配置示例文件, 复制此文件为 %s 并根据需要修改\n", fileName)
	writeExample(&buf, reflect.Indirect(reflect.ValueOf(cfg)), 0)

	return buf.Bytes()
}

func writeExample(buf *bytes.Buffer, val reflect.Value, depth int) {
	if val.Kind() != reflect.Struct {
		return
	}

	indent := strings.Repeat("  ", depth)
	typ := val.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		key := configKey(field)
		if key == "" || !field.IsExported() {
			continue
		}
		desc := field.Tag.Get("desc")

		if isStructType(field.Type) {
			buf.WriteByte('\n')
			if desc != "" {
				fmt.Fprintf(buf, "%s# %s\n", indent, desc)
			}
			fmt.Fprintf(buf, "%s%s:\n", indent, key)
			writeExample(buf, reflect.Indirect(val.Field(i)), depth+1)

			continue
		}

		line := fmt.Sprintf("%s%s: %s", indent, key, exampleValue(val.Field(i)))
		if desc != "" {
			line += " # " + desc
		}
		buf.WriteString(line + "\n")
	}
}

func exampleValue(v reflect.Value) string {
	if v.Type() == durationType {
		return time.Duration(v.Int()).String()
	}

	switch v.Kind() {
	case reflect.String:
		return "'" + strings.ReplaceAll(v.String(), "'", "''") + "'"
	case reflect.Slice:
		items := make([]string, v.Len())
		for i := range v.Len() {
			items[i] = exampleValue(v.Index(i))
		}
		return "[" + strings.Join(items, ", ") + "]"
	default:
		return fmt.Sprint(v.Interface())
	}
}
