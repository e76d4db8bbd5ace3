// Package tree implements a generic, serializable action tree: the shape of
// a game's decision structure (who acts, what they can do, where it leads),
// independent of any particular game's payoffs. A lance's (or a full Mus
// hand's) decision structure is built once and walked by every CFR
// iteration.
package tree

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gauleng/musolver-go/pkg/mus"
)

// ActionNode is either Terminal (the hand is over along this path) or
// NonTerminal (a player acts, choosing among a fixed, ordered list of
// actions that each lead to a child node). The wire format matches a
// serde-style externally tagged enum: a bare `"Terminal"` string, or
// `{"NonTerminal":[player,[[action,child],...]]}`.
type ActionNode struct {
	terminal bool
	player   int
	children []actionEdge
}

type actionEdge struct {
	action mus.Accion
	node   *ActionNode
}

// NewTerminal returns a leaf node.
func NewTerminal() *ActionNode {
	return &ActionNode{terminal: true}
}

// NewNonTerminal returns a decision node for player, with no children yet;
// use AddAction to attach them in the order they should be offered.
func NewNonTerminal(player int) *ActionNode {
	return &ActionNode{player: player}
}

// AddAction attaches child as the node reached by taking action from n.
// Returns n, so calls can be chained while building a tree top-down.
func (n *ActionNode) AddAction(action mus.Accion, child *ActionNode) *ActionNode {
	n.children = append(n.children, actionEdge{action: action, node: child})
	return n
}

// AddTerminal is a convenience for AddAction(action, NewTerminal()).
func (n *ActionNode) AddTerminal(action mus.Accion) *ActionNode {
	return n.AddAction(action, NewTerminal())
}

// AddNonTerminal is a convenience for AddAction(action, NewNonTerminal(player)),
// returning the newly created child so the caller can keep building below it.
func (n *ActionNode) AddNonTerminal(action mus.Accion, player int) *ActionNode {
	child := NewNonTerminal(player)
	n.AddAction(action, child)
	return child
}

// IsTerminal reports whether n is a leaf.
func (n *ActionNode) IsTerminal() bool { return n.terminal }

// Player returns the acting player at a non-terminal node.
func (n *ActionNode) Player() int { return n.player }

// Actions returns the legal actions at a non-terminal node, in tree order.
func (n *ActionNode) Actions() []mus.Accion {
	out := make([]mus.Accion, len(n.children))
	for i, e := range n.children {
		out[i] = e.action
	}
	return out
}

// Child returns the node reached by taking action, or nil if action is not
// legal here.
func (n *ActionNode) Child(action mus.Accion) *ActionNode {
	for _, e := range n.children {
		if e.action == action {
			return e.node
		}
	}
	return nil
}

// SearchActionNode walks path (a sequence of actions starting from root) and
// returns the node reached, or the last valid node if the path runs off the
// tree (a mismatched action stops the walk rather than failing it).
func SearchActionNode(root *ActionNode, path []mus.Accion) *ActionNode {
	node := root
	for _, a := range path {
		if node == nil || node.terminal {
			return node
		}
		child := node.Child(a)
		if child == nil {
			return node
		}
		node = child
	}
	return node
}

const terminalLiteral = `"Terminal"`

// MarshalJSON implements the externally tagged enum encoding described on
// ActionNode.
func (n *ActionNode) MarshalJSON() ([]byte, error) {
	if n.terminal {
		return []byte(terminalLiteral), nil
	}
	pairs := make([]json.RawMessage, len(n.children))
	for i, e := range n.children {
		childJSON, err := e.node.MarshalJSON()
		if err != nil {
			return nil, err
		}
		actionJSON, err := json.Marshal(e.action)
		if err != nil {
			return nil, err
		}
		pairs[i] = append(append(append([]byte("["), actionJSON...), ','), append(childJSON, ']')...)
	}
	pairsJSON, err := json.Marshal(pairs)
	if err != nil {
		return nil, err
	}
	playerJSON, err := json.Marshal(n.player)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"NonTerminal":[`)
	buf.Write(playerJSON)
	buf.WriteByte(',')
	buf.Write(pairsJSON)
	buf.WriteString(`]}`)
	return buf.Bytes(), nil
}

type nonTerminalEnvelope struct {
	NonTerminal json.RawMessage `json:"NonTerminal"`
}

// UnmarshalJSON implements the inverse of MarshalJSON.
func (n *ActionNode) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if string(trimmed) == terminalLiteral {
		n.terminal = true
		n.children = nil
		return nil
	}

	var env nonTerminalEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("tree: malformed action node: %w", err)
	}
	var tuple []json.RawMessage
	if err := json.Unmarshal(env.NonTerminal, &tuple); err != nil || len(tuple) != 2 {
		return fmt.Errorf("tree: malformed NonTerminal tuple")
	}
	if err := json.Unmarshal(tuple[0], &n.player); err != nil {
		return fmt.Errorf("tree: malformed player: %w", err)
	}
	var rawPairs []json.RawMessage
	if err := json.Unmarshal(tuple[1], &rawPairs); err != nil {
		return fmt.Errorf("tree: malformed children list: %w", err)
	}
	n.children = make([]actionEdge, len(rawPairs))
	n.terminal = false
	for i, raw := range rawPairs {
		var pair []json.RawMessage
		if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
			return fmt.Errorf("tree: malformed action/child pair")
		}
		var action mus.Accion
		if err := json.Unmarshal(pair[0], &action); err != nil {
			return fmt.Errorf("tree: malformed action label: %w", err)
		}
		child := &ActionNode{}
		if err := child.UnmarshalJSON(pair[1]); err != nil {
			return err
		}
		n.children[i] = actionEdge{action: action, node: child}
	}
	return nil
}
