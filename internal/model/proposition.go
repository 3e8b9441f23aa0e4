package model

import "time"

type Proposition struct {
	PropositionID   string
	PropositionText string
	SearchQueries   []string
	IsArchived      bool
	CreatedAt       time.Time
}
