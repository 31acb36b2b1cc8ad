// Package markup 在组件源码编译前执行有序的文本替换规则。
//
// 每条 [Rule] 由模式与替换组成，替换可以是带反向引用的模板 ($1、${name}、$$)，
// 也可以是函数。[Apply] 按声明顺序执行，后续规则看到的是前面规则的输出。
//
// 模式使用 regexp2 (回溯引擎，ECMAScript 语义)，以支持外链规则所需的 lookbehind/lookahead：
//
//	(?<=<a )(?=href="?https?:)
//
// 默认规则见 [DefaultRules]。两条默认规则对自身输出不再匹配，
// 因此重复执行是幂等的，--write 与 --watch 同时使用时不会反复改写文件。
package markup
