package markup

// 默认规则的模式。
const (
	IconPattern         = `<icon id=(.+?)>`
	ExternalLinkPattern = `(?<=<a )(?=href="?https?:)`
)

// IconHref 返回图标 <use href> 的前缀：构建产物内联 sprite 时引用 #icon-<id>，
// 开发服务器引用 public 目录中的 /icons.svg#<id>。
func IconHref(build bool) string {
	if build {
		return "#icon-"
	}

	return "/icons.svg#"
}

// DefaultRules 返回组件预处理使用的规则，build 在构造时决定图标 href 形式。
//
//  1. icon: <icon id=star> → <svg class="icon icon-star"><use href=#icon-star/></svg>
//  2. external-link: 在 <a href="http(s)://..."> 的 href 前插入 "target=_blank "
func DefaultRules(build bool) ([]Rule, error) {
	icon, err := NewTemplateRule("icon", IconPattern,
		`<svg class="icon icon-$1"><use href=`+IconHref(build)+`$1/></svg>`)
	if err != nil {
		return nil, err
	}

	link, err := NewTemplateRule("external-link", ExternalLinkPattern, "target=_blank ")
	if err != nil {
		return nil, err
	}

	return []Rule{icon, link}, nil
}
