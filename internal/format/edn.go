package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteEDN writes a strict EDN representation.
//
// Implementation note: we intentionally target a safe subset that covers our
// CLI payloads (maps, vectors, strings, numbers, booleans, nil). Structs pass
// through a JSON round trip first so the json tags decide field naming.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}

	var sb strings.Builder
	enc := ednEncoder{pretty: pretty}
	enc.value(&sb, x, 0)
	sb.WriteByte('\n')
	_, err = io.WriteString(w, sb.String())
	return err
}

type ednEncoder struct {
	pretty bool
}

const ednIndent = 2

func (e ednEncoder) value(sb *strings.Builder, v any, level int) {
	switch t := v.(type) {
	case nil:
		sb.WriteString("nil")
	case bool:
		sb.WriteString(strconv.FormatBool(t))
	case string:
		sb.WriteString(strconv.Quote(t))
	case float64:
		// JSON numbers arrive as float64; print whole values as ints.
		if float64(int64(t)) == t {
			sb.WriteString(strconv.FormatInt(int64(t), 10))
			return
		}
		sb.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
	case []any:
		e.coll(sb, '[', ']', len(t), level, func(sb *strings.Builder, i int) {
			e.value(sb, t[i], level+1)
		})
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.coll(sb, '{', '}', len(keys), level, func(sb *strings.Builder, i int) {
			sb.WriteByte(':')
			sb.WriteString(ednKeyword(keys[i]))
			sb.WriteByte(' ')
			e.value(sb, t[keys[i]], level+1)
		})
	default:
		// Fallback: stringify.
		sb.WriteString(strconv.Quote(fmt.Sprintf("%v", v)))
	}
}

// coll renders a delimited collection, one element per line when pretty.
func (e ednEncoder) coll(sb *strings.Builder, open, close byte, n, level int, elem func(*strings.Builder, int)) {
	sb.WriteByte(open)
	if n == 0 {
		sb.WriteByte(close)
		return
	}
	for i := 0; i < n; i++ {
		if e.pretty {
			sb.WriteByte('\n')
			sb.WriteString(strings.Repeat(" ", (level+1)*ednIndent))
		} else if i > 0 {
			sb.WriteByte(' ')
		}
		elem(sb, i)
	}
	if e.pretty {
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", level*ednIndent))
	}
	sb.WriteByte(close)
}

func ednKeyword(s string) string {
	// Keep it simple: allow common JSON field name chars.
	// Replace spaces just in case.
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "-")
	return s
}
