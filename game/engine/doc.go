// Package engine provides the core rules of the sliding-tile merge game.
//
// The engine package implements:
//   - A square Board of power-of-two tiles stored row-major in a flat slice
//   - Sliding and merging toward any edge, at most one merge per tile per move
//   - Spawning a new tile after every move that changed the board
//   - Terminal detection once the board is full with no equal neighbours
//   - Game configuration loading and validation
//
// Core Types:
//
// Board owns the grid and the slide/spawn/terminal rules. It draws randomness
// from an injected Rand, never from a global generator. GameEngine wraps a
// Board with score, move history and messages, and GameState is its JSON view.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultGameConfig(), seed)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Slide the tiles
//	changed := gameEngine.Move("left")
//	state := gameEngine.GetState()
//
// Game Rules:
//
// A game starts with two tiles of value 2. Each move slides every tile toward
// one edge; two equal tiles that meet merge into their sum, which is added to
// the score. A move that changes the board spawns a new 2 on a random empty
// cell, and a move that changes nothing spawns nothing. The game is over when
// the board is full and no two adjacent tiles are equal.
package engine
