package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/leadpilot/internal/entity"
)

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ImageResponse), args.Error(1)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evt Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

// MockMailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendContent(to string, c entity.GeneratedContent) error {
	args := m.Called(to, c)
	return args.Error(0)
}

// textFor matches text requests whose schema is s.
func textFor(s *Schema) any {
	return mock.MatchedBy(func(req TextRequest) bool { return req.Schema == s })
}

// blockUntil makes a mocked call report that it started, then hold until release.
func blockUntil(started chan<- struct{}, release <-chan struct{}) func(mock.Arguments) {
	return func(mock.Arguments) {
		close(started)
		<-release
	}
}
