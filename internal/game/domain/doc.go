// Package domain holds the shared game data model: the player carried across
// battles, the per-battle enemy, and the immutable item records.
//
// Player is mutated by the combat engine and the progression tracker during
// battle, and by shop or rest collaborators outside battle through the
// Adjust* and Rest helpers.
package domain
