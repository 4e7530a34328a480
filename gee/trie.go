package gee

import "strings"

// node 是前缀树的一个路由段。
// 例如 /p/:lang/doc 拆成 p、:lang、doc 三层；pattern 只在叶子（路由终点）上非空。
type node struct {
	pattern  string
	part     string
	children []*node
	isWild   bool // part 以 : 或 * 开头
}

func (n *node) child(part string) *node {
	for _, c := range n.children {
		if c.part == part {
			return c
		}
	}
	return nil
}

// candidates 静态段优先于通配段，保证 /healthz 不会被 /:token 抢走。
func (n *node) candidates(part string) []*node {
	out := make([]*node, 0, len(n.children))
	for _, c := range n.children {
		if !c.isWild && c.part == part {
			out = append(out, c)
		}
	}
	for _, c := range n.children {
		if c.isWild {
			out = append(out, c)
		}
	}
	return out
}

func (n *node) insert(pattern string, parts []string, height int) {
	if len(parts) == height {
		n.pattern = pattern
		return
	}
	part := parts[height]
	c := n.child(part)
	if c == nil {
		c = &node{part: part, isWild: part[0] == ':' || part[0] == '*'}
		n.children = append(n.children, c)
	}
	c.insert(pattern, parts, height+1)
}

func (n *node) search(parts []string, height int) *node {
	if len(parts) == height || strings.HasPrefix(n.part, "*") {
		if n.pattern == "" {
			return nil
		}
		return n
	}
	for _, c := range n.candidates(parts[height]) {
		if found := c.search(parts, height+1); found != nil {
			return found
		}
	}
	return nil
}
