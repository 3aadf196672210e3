package main

type contextKey string

const (
	pickedTimeContextKey = contextKey("pickedTime")
	pickedTimeSessionKey = "pickedTime"
	flashSessionKey      = "flash"
)
