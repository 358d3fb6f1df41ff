package util

import (
	"github.com/microcosm-cc/bluemonday"
)

// logMessagePolicy is the sanitizer for revision log messages.
// The allow-list is enumerated explicitly: no script/style elements and no
// event handler attributes survive sanitization.
// logMessagePolicy 是修订日志消息的净化器。
// 允许的标签显式列举：script/style 标签和事件处理属性都会被移除。
var logMessagePolicy = newLogMessagePolicy()

func newLogMessagePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"a", "em", "strong", "cite", "blockquote", "code",
		"ul", "ol", "li", "dl", "dt", "dd",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	return p
}

// SanitizeLogMessage strips everything outside the allow-list from a
// revision log message before it is handed to the presentation layer
// SanitizeLogMessage 在修订日志消息交给展示层之前，移除允许列表之外的所有内容
func SanitizeLogMessage(message string) string {
	return logMessagePolicy.Sanitize(message)
}
