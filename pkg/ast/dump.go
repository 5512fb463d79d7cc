package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders n as an indented S-expression, one node per line. Ranges are
// shown when present.
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n, 0, "")

	return sb.String()
}

func dump(sb *strings.Builder, n *Node, depth int, label string) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent)
	if label != "" {
		sb.WriteString(label)
		sb.WriteString(": ")
	}

	if n == nil {
		sb.WriteString("nil\n")
		return
	}

	sb.WriteString("(")
	sb.WriteString(string(n.Kind))
	if n.HasRange() {
		fmt.Fprintf(sb, " @%d..%d", n.Range.Start, n.Range.End)
	}

	var children []func()
	for _, name := range n.FieldNames() {
		val, _ := n.Get(name)
		switch typed := val.(type) {
		case string:
			fmt.Fprintf(sb, " %s=%s", name, strconv.Quote(typed))
		case bool:
			fmt.Fprintf(sb, " %s=%t", name, typed)
		case float64:
			fmt.Fprintf(sb, " %s=%s", name, NumberRaw(typed))
		case *Node:
			children = append(children, func() { dump(sb, typed, depth+1, name) })
		case []*Node:
			children = append(children, func() {
				for idx, child := range typed {
					dump(sb, child, depth+1, fmt.Sprintf("%s[%d]", name, idx))
				}
			})
		}
	}
	for _, comment := range n.Comments {
		fmt.Fprintf(sb, " %s", comment)
	}
	sb.WriteString(")\n")

	for _, child := range children {
		child()
	}
}

// ToMap converts n into plain maps and slices suitable for JSON or YAML
// encoding.
func ToMap(n *Node) map[string]any {
	if n == nil {
		return nil
	}

	out := map[string]any{"type": string(n.Kind)}
	if n.HasRange() {
		out["start"] = n.Range.Start
		out["end"] = n.Range.End
	}

	for _, name := range n.FieldNames() {
		val, _ := n.Get(name)
		switch typed := val.(type) {
		case *Node:
			out[name] = ToMap(typed)
		case []*Node:
			list := make([]any, len(typed))
			for idx, child := range typed {
				if child != nil {
					list[idx] = ToMap(child)
				}
			}
			out[name] = list
		default:
			out[name] = typed
		}
	}

	if len(n.Comments) > 0 {
		comments := make([]any, len(n.Comments))
		for idx, comment := range n.Comments {
			comments[idx] = map[string]any{
				"text":      comment.Text(),
				"placement": comment.Placement.String(),
				"ownLine":   comment.OwnLine,
			}
		}
		out["comments"] = comments
	}

	return out
}
