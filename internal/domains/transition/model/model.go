package model

const (
	EntityName = "transition"

	GateKeyPrefix  = "scan"
	LockKeyPrefix  = "toggle"
	DefaultChannel = "default"
)
