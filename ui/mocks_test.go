package ui

import (
	"context"
	"image"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockFrameSource implements player.FrameSource for testing
type MockFrameSource struct {
	mock.Mock
}

func (m *MockFrameSource) FirstFrame(ctx context.Context, path string) (image.Image, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(image.Image), args.Error(1)
}

func (m *MockFrameSource) Duration(ctx context.Context, path string) (time.Duration, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(time.Duration), args.Error(1)
}

// MockPoster implements Poster for testing
type MockPoster struct {
	mock.Mock
}

func (m *MockPoster) Apply(ctx context.Context, videoPath string) (string, error) {
	args := m.Called(ctx, videoPath)
	return args.String(0), args.Error(1)
}
