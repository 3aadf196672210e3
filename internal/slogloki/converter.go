package slogloki

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/prometheus/common/model"
)

// DefaultConverter flattens every attr into a label. Groups join their keys
// with "_", and the record level is added as "level".
func DefaultConverter(addSource bool, replaceAttr ReplaceAttrFn, loggerAttrs []slog.Attr, groups []string, record *slog.Record) model.LabelSet {
	attrs := recordAttrs(loggerAttrs, groups, record)
	attrs = replaceErrors(attrs, ErrorKey)

	if addSource {
		attrs = append(attrs, source(SourceKey, record))
	}

	attrs = append(attrs, slog.String("level", record.Level.String()))
	attrs = replaceAttrs(replaceAttr, nil, attrs...)
	attrs = removeEmptyAttrs(attrs)

	labels := model.LabelSet{}
	flatten("", attrsToMap(attrs...), labels)

	return labels
}

func flatten(prefix string, values map[string]any, labels model.LabelSet) {
	for key, v := range values {
		name := prefix + key

		if child, ok := v.(map[string]any); ok {
			flatten(name+"_", child, labels)
			continue
		}

		labels[labelName(name)] = model.LabelValue(fmt.Sprint(v))
	}
}

// labelName maps key onto the label name charset [a-zA-Z_][a-zA-Z0-9_]*.
func labelName(key string) model.LabelName {
	var b strings.Builder

	for i, r := range key {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || r == '_'):
			b.WriteRune(r)
		case r < unicode.MaxASCII && unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	return model.LabelName(b.String())
}
