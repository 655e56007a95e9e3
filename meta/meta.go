// meta/meta.go
package meta

// ROWS defines the default number of board rows.
const ROWS = 6

// COLS defines the default number of board columns.
const COLS = 7

// DEPTH defines the default minimax search depth in plies.
const DEPTH = 7

// ITERATIONS defines the default number of MCTS iterations per move.
const ITERATIONS = 150000

// EXPLORATION defines the default UCT exploration constant.
const EXPLORATION = 1.5

// MAX_TURNS bounds a match, rejected moves included.
const MAX_TURNS = 1000

// GAMES defines the default number of games per experiment matchup.
const GAMES = 10
