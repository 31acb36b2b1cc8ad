// Package bundler 组装一次构建调用所需的 Vite 配置对象。
//
// [Assemble] 根据 [Options] 生成 [UserConfig]：
//
//   - 注入的全局变量 (构建时间、提交短哈希、应用版本、调试标记)
//   - 构建模式下写入 rollup intro，开发模式下作为 define 替换
//   - 开发代理规则 ^(/api|/static).* → http://127.0.0.1:<API_PORT|6000>，启用 WebSocket
//   - 路径别名 ~ 与 $lib
//   - svelte 插件的 markup 预处理规则与告警过滤，auto-import 插件声明
//
// 提交哈希或 package.json 读取失败时，整个组装失败。
//
// 配置对象只描述，不执行：编译、打包与代理转发都由外部工具完成。
package bundler
