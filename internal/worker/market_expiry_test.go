package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockExpirer struct {
	mock.Mock
}

func (m *MockExpirer) ExpireListings(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestMarketExpiryJob(t *testing.T) {
	m := new(MockExpirer)
	m.On("ExpireListings", mock.Anything).Return(3, nil).Once()
	m.On("ExpireListings", mock.Anything).Return(0, errors.New("db down")).Once()

	job := NewMarketExpiryJob(m)
	assert.NoError(t, job.Process(context.Background()))
	assert.Error(t, job.Process(context.Background()))
	m.AssertExpectations(t)
}
