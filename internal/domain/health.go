package domain

// HealthBody is the fixed liveness reply the game server probes for.
const HealthBody = "Server running"
