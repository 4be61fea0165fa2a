// Package pipeline runs the stages of one ffufai run in order.
//
// A run is probe, advise, invoke. Each stage is a Step that reads and
// updates the shared model.Run. Execution stops at the first failing
// step; steps that can degrade gracefully (the probe) never fail.
package pipeline
