// Package config centralizes the fixed game rules and field geometry.
package config

import "time"

// Field geometry in pixels. The field is 5 columns by 6 rows of tiles.
const (
	TileWidth      = 101
	TileHeight     = 83
	TileHeightLast = 191 // Bottom band below the last walkable row
	FieldWidth     = 505
	FieldHeight    = 606
	Columns        = 5
	Rows           = 6
)

// Progression
const (
	MaxLevel     = 15
	InitialLives = 3
	TimerMax     = 30 // Seconds
)

// Player
const (
	PlayerWidth       = 67
	PlayerMarginLeft  = 17
	PlayerMarginRight = 17
	PlayerStartCol    = 2
	PlayerStartRow    = 5
)

// Enemies
const (
	EnemyCount       = 3
	EnemyLanes       = 3 // Lanes occupy rows 1..EnemyLanes
	EnemyWidth       = 101
	EnemySpeedBase   = 2 // Minimum speed is EnemySpeedBase + level
	EnemySpeedSpread = 3 // Maximum speed is minimum + EnemySpeedSpread
)

// Character selection
const (
	SlotRow = 5 // Row where selectable characters are shown
)

// Timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	// ReferenceFPS converts per-tick enemy speeds to per-second speeds
	// when delta scaling is enabled.
	ReferenceFPS = 60
)

// Input
const (
	InputQueueSize = 64
)
