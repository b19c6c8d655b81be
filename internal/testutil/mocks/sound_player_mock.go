package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/colorflash/internal/models"
)

// MockSoundPlayer is a mock implementation of game.SoundPlayer
type MockSoundPlayer struct {
	mock.Mock
}

func (m *MockSoundPlayer) Play(cue models.Cue) {
	m.Called(cue)
}
