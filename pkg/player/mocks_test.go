package player

import (
	"context"
	"image"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockFrameSource implements FrameSource for testing
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

// framesFor expects Select-style calls for path and answers them with img and d.
func framesFor(path string, img image.Image, d time.Duration) *MockFrameSource {
	m := &MockFrameSource{}
	m.On("FirstFrame", mock.Anything, path).Return(img, nil)
	m.On("Duration", mock.Anything, path).Return(d, nil)
	return m
}
