// +build release

package main

import "time"

const (
	DEBUG                   = false
	SecretsPath             = "secrets.json"
	MaxDBconnectionPoolSize = 30
	EvaluationInterval      = 5 * time.Minute
)
