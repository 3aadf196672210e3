package slogloki

import (
	"context"
	"log/slog"
	"reflect"
	"runtime"
	"slices"
)

type ReplaceAttrFn = func(groups []string, a slog.Attr) slog.Attr

// appendToGroup adds attrs under the nested group path, creating groups that
// do not exist yet. Later keys replace earlier ones.
func appendToGroup(groups []string, current []slog.Attr, attrs ...slog.Attr) []slog.Attr {
	if len(groups) == 0 {
		return uniqAttrs(slices.Concat(current, attrs))
	}

	current = slices.Clone(current)

	for i, attr := range current {
		if attr.Key == groups[0] && attr.Value.Kind() == slog.KindGroup {
			current[i] = groupAttr(groups[0], appendToGroup(groups[1:], attr.Value.Group(), attrs...))
			return current
		}
	}

	return uniqAttrs(append(current, groupAttr(groups[0], appendToGroup(groups[1:], nil, attrs...))))
}

func groupAttr(key string, attrs []slog.Attr) slog.Attr {
	return slog.Attr{Key: key, Value: slog.GroupValue(attrs...)}
}

// recordAttrs returns the logger's attrs followed by the record's, the latter
// wrapped in the open groups.
func recordAttrs(attrs []slog.Attr, groups []string, record *slog.Record) []slog.Attr {
	output := make([]slog.Attr, 0, len(attrs)+record.NumAttrs())
	output = append(output, attrs...)

	record.Attrs(func(attr slog.Attr) bool {
		for i := len(groups) - 1; i >= 0; i-- {
			attr = groupAttr(groups[i], []slog.Attr{attr})
		}
		output = append(output, attr)
		return true
	})

	return output
}

func contextAttrs(ctx context.Context, fns []func(ctx context.Context) []slog.Attr) []slog.Attr {
	var attrs []slog.Attr
	for _, fn := range fns {
		attrs = append(attrs, fn(ctx)...)
	}
	return attrs
}

// attrsToMap folds attrs into nested maps, merging groups that share a key.
func attrsToMap(attrs ...slog.Attr) map[string]any {
	byKey := map[string][]slog.Value{}
	for _, attr := range attrs {
		byKey[attr.Key] = append(byKey[attr.Key], attr.Value)
	}

	output := make(map[string]any, len(byKey))
	for key, values := range byKey {
		v := mergeValues(values)
		if v.Kind() == slog.KindGroup {
			output[key] = attrsToMap(v.Group()...)
		} else {
			output[key] = v.Any()
		}
	}

	return output
}

func mergeValues(values []slog.Value) slog.Value {
	v := values[0]

	for _, next := range values[1:] {
		if v.Kind() != slog.KindGroup || next.Kind() != slog.KindGroup {
			v = next
			continue
		}

		v = slog.GroupValue(slices.Concat(v.Group(), next.Group())...)
	}

	return v
}

func removeEmptyAttrs(attrs []slog.Attr) []slog.Attr {
	output := make([]slog.Attr, 0, len(attrs))

	for _, attr := range attrs {
		if attr.Key == "" {
			continue
		}

		if attr.Value.Kind() == slog.KindGroup {
			children := removeEmptyAttrs(attr.Value.Group())
			if len(children) == 0 {
				continue
			}
			output = append(output, groupAttr(attr.Key, children))
			continue
		}

		if attr.Value.Equal(slog.Value{}) {
			continue
		}
		output = append(output, attr)
	}

	return output
}

func replaceAttrs(fn ReplaceAttrFn, groups []string, attrs ...slog.Attr) []slog.Attr {
	for i, attr := range attrs {
		value := attr.Value.Resolve()
		if value.Kind() == slog.KindGroup {
			attrs[i].Value = slog.GroupValue(replaceAttrs(fn, append(slices.Clone(groups), attr.Key), value.Group()...)...)
		} else if fn != nil {
			attrs[i] = fn(groups, attr)
		}
	}

	return attrs
}

// replaceErrors turns top level error values under the given keys into a
// group holding the error's type and message.
func replaceErrors(attrs []slog.Attr, keys ...string) []slog.Attr {
	return replaceAttrs(func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) > 0 || !slices.Contains(keys, a.Key) {
			return a
		}

		err, ok := a.Value.Any().(error)
		if !ok || err == nil {
			return a
		}

		return slog.Group(a.Key,
			slog.String("kind", reflect.TypeOf(err).String()),
			slog.String("message", err.Error()),
		)
	}, nil, attrs...)
}

func source(key string, r *slog.Record) slog.Attr {
	frames := runtime.CallersFrames([]uintptr{r.PC})
	f, _ := frames.Next()

	var args []any
	if f.Function != "" {
		args = append(args, slog.String("function", f.Function))
	}
	if f.File != "" {
		args = append(args, slog.String("file", f.File))
	}
	if f.Line != 0 {
		args = append(args, slog.Int("line", f.Line))
	}

	return slog.Group(key, args...)
}

// uniqAttrs keeps the last attr of every key at the position of its first.
func uniqAttrs(attrs []slog.Attr) []slog.Attr {
	output := make([]slog.Attr, 0, len(attrs))
	index := make(map[string]int, len(attrs))

	for _, attr := range attrs {
		if i, ok := index[attr.Key]; ok {
			output[i] = attr
			continue
		}

		index[attr.Key] = len(output)
		output = append(output, attr)
	}

	return output
}
