package searcher

import (
	"fmt"

	"connectn/game"
)

const rootParent = -1

// node is one simulated state in the MCTS tree. Nodes live in a tree arena
// and refer to each other by index; children are aligned with the prefix of
// positions that has been expanded so far.
type node struct {
	board     game.Board
	eval      game.Evaluation
	turn      game.Tile // Tile to move at this node
	visits    int
	wins      int64 // Accumulated outcomes from the searching tile's point of view
	parent    int
	positions []game.Position
	children  []int
}

func (n *node) isTerminal() bool {
	return n.eval.Terminal
}

func (n *node) isFullyExpanded() bool {
	return len(n.children) == len(n.positions)
}

// tree owns every node of one search. Discarding the tree discards them all.
type tree struct {
	nodes []node
}

func newTree(board game.Board, turn game.Tile) *tree {
	t := &tree{}
	t.add(rootParent, board, game.Evaluate(&board), turn)
	return t
}

func (t *tree) root() *node {
	return &t.nodes[0]
}

func (t *tree) add(parent int, board game.Board, eval game.Evaluation, turn game.Tile) int {
	n := node{
		board:  board,
		eval:   eval,
		turn:   turn,
		parent: parent,
	}
	if !eval.Terminal {
		n.positions = game.ValidPositions(&n.board)
		if len(n.positions) == 0 {
			panic("non-terminal node has no legal moves")
		}
		n.children = make([]int, 0, len(n.positions))
	}
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

// expand materialises the first legal move of i that has no child yet.
func (t *tree) expand(i int) int {
	parent := &t.nodes[i]
	if parent.isTerminal() || parent.isFullyExpanded() {
		panic("cannot expand a terminal or fully expanded node")
	}
	move := game.Move{Pos: parent.positions[len(parent.children)], Tile: parent.turn}
	board := parent.board
	if !board.Place(move) {
		panic(fmt.Sprintf("generated move %s was rejected", move))
	}
	eval := game.EvaluateAfter(&board, parent.eval, move.Pos)

	child := t.add(i, board, eval, parent.turn.Enemy())
	// t.nodes may have been reallocated by add.
	t.nodes[i].children = append(t.nodes[i].children, child)
	return child
}

// bestChild returns the child of i with the highest UCT value. Ties go to
// the first child in generator order.
func (t *tree) bestChild(i int, c float64) int {
	parent := &t.nodes[i]
	if len(parent.children) == 0 {
		panic("node has no children")
	}
	policy := newUCT(c, parent.visits)

	best := -1
	var bestValue float64
	for _, ci := range parent.children {
		child := &t.nodes[ci]
		value := policy.evaluate(child.wins, child.visits)
		if best == -1 || value > bestValue {
			best = ci
			bestValue = value
		}
	}
	return best
}

// backpropagate records reward on every node from i up to the root.
func (t *tree) backpropagate(i int, reward int64) {
	for i != rootParent {
		n := &t.nodes[i]
		n.visits++
		n.wins += reward
		i = n.parent
	}
}

// child returns the child of i reached by m, if it has been expanded.
func (t *tree) child(i int, m game.Move) (int, bool) {
	n := &t.nodes[i]
	if m.Tile != n.turn {
		return 0, false
	}
	for k, ci := range n.children {
		if n.positions[k] == m.Pos {
			return ci, true
		}
	}
	return 0, false
}
