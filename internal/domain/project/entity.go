package project

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID           uuid.UUID
	Title        string
	Description  string
	CreatorID    uuid.UUID
	AssignedToID *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p Project) IsAssignedTo(internID uuid.UUID) bool {
	return p.AssignedToID != nil && *p.AssignedToID == internID
}

func (p Project) Assigned() bool {
	return p.AssignedToID != nil
}
