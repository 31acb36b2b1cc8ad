// Package templexp 提供配置字符串的 Shell 参数展开。
//
// 仅处理 ${...} 语法，用于把 NODE_ENV、VITE_HOST、API_PORT 等环境变量
// 带默认值地写入配置默认值与配置文件。
//
// # 支持语法
//
//   - ${VAR} - 变量替换，未设置时为空串
//   - ${VAR:-word} - 未设置或为空时使用 word (等价于 JS 的 `||`)
//   - ${VAR-word} - 仅未设置时使用 word
//   - ${VAR:?msg} - 未设置或为空时报错
//   - $$ - 字面量 "$"
//
// 无法识别的表达式保持原样，word 内允许嵌套 ${...}。
//
// # 快速开始
//
//	target, err := templexp.Expand("http://127.0.0.1:${API_PORT:-6000}", os.LookupEnv)
package templexp
