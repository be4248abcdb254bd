package matrix

import (
	"strings"

	"github.com/zephyrtronium/calc/numeric"
)

// Format renders m as nested lists, e.g. [[1, 2], [3, 4]].
func (m *Matrix) Format(ctx numeric.Context) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.Row(i).Format(ctx))
	}
	b.WriteByte(']')
	return b.String()
}

func (m *Matrix) String() string { return m.Format(numeric.Default) }

// Format renders v as a list, e.g. [1, 2, 3].
func (v Vector) Format(ctx numeric.Context) string {
	s := make([]string, len(v))
	for i, e := range v {
		s[i] = e.Format(ctx)
	}
	return "[" + strings.Join(s, ", ") + "]"
}

func (v Vector) String() string { return v.Format(numeric.Default) }
