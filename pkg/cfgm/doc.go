// Package cfgm 提供分层配置加载。
//
// 配置 key 由 json tag 定义，YAML 与 JSON 共享同一套 key；desc tag 用于生成示例文件。
//
// # 加载优先级 (从低到高)
//
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - 通过 [WithConfigPaths] 或 [WithAppName] 设置，命中首个文件即停止
//  3. 前缀环境变量 - 通过 [WithEnvPrefix] 启用，由 envconfig 解析
//  4. CLI flags - 通过 [WithCommand] 设置，仅用户显式指定的 flag 生效
//
// [WithDotenv] 在所有层之前把 .env 文件载入进程环境 (不覆盖已有变量)。
//
// # 模板展开
//
// 默认值中的字符串与配置文件文本都会执行 ${...} 展开 (见 templexp 包)，
// 因此默认值可以直接引用外部约定的环境变量：
//
//	Mode: "${NODE_ENV:-development}",
//	APIPort: "${API_PORT:-6000}",
//
// 使用 [WithoutTemplateExpansion] 可禁用。
//
// # 环境变量
//
// 前缀 "VITECFG" 时，字段 Server.APIPort (split_words) 对应 VITECFG_SERVER_API_PORT，
// 字段上的 envconfig tag 可指定替代名称。
//
// # CLI Flag 映射
//
// json key 路径中的 "." 替换为 "-"：server.api-port → --server-api-port。
//
// # 生成配置示例
//
//	yaml := cfgm.ExampleYAML(config.DefaultConfig(), ".vitecfg.yaml")
package cfgm
