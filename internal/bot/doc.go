// Package bot decides actions for computer-controlled seats.
//
// An Engine combines a Profile (a fixed set of strength thresholds plus
// aggression and bluff frequency) with a SkillLevel that jitters those
// thresholds on every decision. Decide always starts from the legal action
// set in the game.View, so whatever the strategy prefers is narrowed to
// something the hand will accept.
package bot
