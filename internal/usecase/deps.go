package usecase

import "time"

// テストで差し替えるための部品
type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}
