// Copyright 2026 Moniker Authors

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client

import (
	"context"
	"strings"

	"github.com/monikerhq/moniker"
	"github.com/stockparfait/errors"
)

// TreeNode is one node of the catalog hierarchy below a moniker.
type TreeNode struct {
	Path     string // moniker path of this node
	Name     string // last segment
	Children []*TreeNode
}

// Tree walks the hierarchy below a moniker using ListChildren. depth limits
// the traversal; depth <= 0 means unlimited.
func (c *Client) Tree(ctx context.Context, s string, depth int) (*TreeNode, error) {
	addr, err := moniker.Parse(s)
	if err != nil {
		return nil, err
	}
	root := &TreeNode{Path: addr.Path(), Name: lastSegment(addr)}
	if err := c.growTree(ctx, addr, root, depth, 1); err != nil {
		return nil, errors.Annotate(err, "failed to build tree under '%s'", s)
	}
	return root, nil
}

func (c *Client) growTree(ctx context.Context, addr moniker.Address, node *TreeNode, depth, level int) error {
	if depth > 0 && level > depth {
		return nil
	}
	children, err := c.ListChildrenAddress(ctx, addr)
	if err != nil {
		return err
	}
	for _, name := range children {
		childAddr := addr.Child(name)
		child := &TreeNode{Path: childAddr.Path(), Name: name}
		node.Children = append(node.Children, child)
		if err := c.growTree(ctx, childAddr, child, depth, level+1); err != nil {
			return err
		}
	}
	return nil
}

func lastSegment(addr moniker.Address) string {
	if addr.Selector != "" {
		parts := strings.Split(addr.Selector, "/")
		return parts[len(parts)-1]
	}
	return addr.Namespace[len(addr.Namespace)-1]
}

// Print renders the subtree with box-drawing connectors, one node per line.
func (n *TreeNode) Print() string {
	var b strings.Builder
	b.WriteString(n.Name + "/")
	for i, child := range n.Children {
		child.print(&b, "", i == len(n.Children)-1)
	}
	return b.String()
}

func (n *TreeNode) print(b *strings.Builder, indent string, isLast bool) {
	connector := "├── "
	childIndent := indent + "│   "
	if isLast {
		connector = "└── "
		childIndent = indent + "    "
	}
	b.WriteString("\n" + indent + connector + n.Name)
	if len(n.Children) > 0 {
		b.WriteString("/")
	}
	for i, child := range n.Children {
		child.print(b, childIndent, i == len(n.Children)-1)
	}
}

// String implements fmt.Stringer.
func (n *TreeNode) String() string {
	return n.Print()
}
