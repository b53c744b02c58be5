package sweeper_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/chirag640/national-health-record-system-backend-sub001/internal/logging"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/mocks"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/sweeper"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func newSweeper(t *testing.T) (*sweeper.Sweeper, *mocks.MockSessionRepository, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	sessions := mocks.NewMockSessionRepository(ctrl)
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	return sweeper.New(sessions, log), sessions, ctrl
}

func TestSweep(t *testing.T) {
	s, sessions, ctrl := newSweeper(t)
	defer ctrl.Finish()

	sessions.EXPECT().DeleteExpired(gomock.Any()).Return(int64(12), nil)

	s.Sweep(context.Background())
}

func TestSweep_ErrorDoesNotPanic(t *testing.T) {
	s, sessions, ctrl := newSweeper(t)
	defer ctrl.Finish()

	sessions.EXPECT().DeleteExpired(gomock.Any()).Return(int64(0), assert.AnError)

	s.Sweep(context.Background())
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s, _, ctrl := newSweeper(t)
	defer ctrl.Finish()

	assert.Error(t, s.Start("not a schedule"))
}

func TestStartAndStop(t *testing.T) {
	s, _, ctrl := newSweeper(t)
	defer ctrl.Finish()

	assert.NoError(t, s.Start("@hourly"))
	s.Stop()
}
