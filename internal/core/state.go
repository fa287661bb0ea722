package core

// GameState is the summary of a play session after a simulation tick.
type GameState struct {
	Ticks      int  // Simulation ticks played, including ticks dropped by catch-up
	Coins      int  // Coins collected in the current attempt
	CoinsTotal int  // Coins the level holds
	Deaths     int  // Restarts so far
	Won        bool // Goal reached; the world stops advancing
}

// StepResult is returned by a simulation step.
// It carries the updated state and what happened during the tick.
type StepResult struct {
	State     GameState
	Collected int  // Coins picked up this tick
	Died      bool // Player hit spikes or fell out of the level
	Won       bool // Player reached the goal this tick
}
