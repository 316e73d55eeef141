//go:build !chesscoredebug

package board

const debugBuild = false
