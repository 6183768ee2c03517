package app

import (
	"github.com/google/uuid"

	"facegen-baseline/internal/adapters"
	"facegen-baseline/internal/ports"
)

type Service struct {
	LoadOrderSource ports.LoadOrderSourcePort
	NewRunID        func() string
}

func NewService() Service {
	return Service{
		LoadOrderSource: adapters.NewLoadOrderFileAdapter(),
		NewRunID:        uuid.NewString,
	}
}
