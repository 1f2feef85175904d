package app

import "github.com/google/uuid"

// newGameID returns the id for a new game; tests may replace it.
var newGameID = func() string { return uuid.NewString() }
