package model

import "time"

type Request struct {
	ID          int64
	Description string
	RequestorID int64
	Created     time.Time
}
