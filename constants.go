// +build !release

package main

import "time"

const (
	DEBUG                   = true
	SecretsPath             = "secrets-debug.json"
	MaxDBconnectionPoolSize = 30
	EvaluationInterval      = 1 * time.Minute
)
