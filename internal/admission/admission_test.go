package admission

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattjoyce/procpool/internal/admission/mocks"
	"github.com/mattjoyce/procpool/internal/census"
	"github.com/mattjoyce/procpool/internal/config"
	"github.com/mattjoyce/procpool/internal/reaper"
)

func NewTestSlogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), &buf
}

func poolConfig(maxConcurrent int) config.PoolConfig {
	cfg := config.DefaultPool()
	cfg.BaseCommand = "worker"
	cfg.MaxConcurrent = maxConcurrent
	return cfg
}

func records(n int) []census.Record {
	out := make([]census.Record, n)
	for i := range out {
		out[i] = census.Record{PID: 1000 + i, StartTime: time.Now(), CommandLine: "worker"}
	}
	return out
}

func TestSlotAvailableThreshold(t *testing.T) {
	tests := []struct {
		name          string
		maxConcurrent int
		running       int
		want          bool
	}{
		{"empty pool", 1, 0, true},
		{"one below ceiling", 3, 2, true},
		{"at ceiling", 3, 3, false},
		{"above ceiling", 2, 5, false},
		{"ceiling of one with one running", 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockCensus := mocks.NewMockCensus(ctrl)
			mockReaper := mocks.NewMockReaper(ctrl)
			slogger, _ := NewTestSlogger()

			mockCensus.EXPECT().Census(gomock.Any()).Return(records(tt.running), nil)
			mockReaper.EXPECT().Reap(gomock.Any(), 3*time.Second).Return(reaper.NotExpired).Times(tt.running)

			c := New(mockCensus, mockReaper, poolConfig(tt.maxConcurrent), slogger)
			assert.Equal(t, tt.want, c.SlotAvailable(context.Background()))
		})
	}
}

func TestCheckReapsEveryRecordBeforeAnswering(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCensus := mocks.NewMockCensus(ctrl)
	mockReaper := mocks.NewMockReaper(ctrl)
	slogger, _ := NewTestSlogger()

	recs := records(3)
	gomock.InOrder(
		mockCensus.EXPECT().Census(gomock.Any()).Return(recs, nil),
		mockReaper.EXPECT().Reap(recs[0], 3*time.Second).Return(reaper.Killed),
		mockReaper.EXPECT().Reap(recs[1], 3*time.Second).Return(reaper.NotExpired),
		mockReaper.EXPECT().Reap(recs[2], 3*time.Second).Return(reaper.KillFailed),
	)

	c := New(mockCensus, mockReaper, poolConfig(5), slogger)
	res := c.Check(context.Background())

	assert.Equal(t, Result{Records: recs, Running: 3, Killed: 1, KillFailed: 1, Available: true}, res)
}

func TestCheckReapsEvenWhenSlotIsFree(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCensus := mocks.NewMockCensus(ctrl)
	mockReaper := mocks.NewMockReaper(ctrl)
	slogger, _ := NewTestSlogger()

	recs := records(1)
	mockCensus.EXPECT().Census(gomock.Any()).Return(recs, nil)
	mockReaper.EXPECT().Reap(recs[0], gomock.Any()).Return(reaper.Killed)

	c := New(mockCensus, mockReaper, poolConfig(10), slogger)
	assert.True(t, c.SlotAvailable(context.Background()))
}

func TestKilledProcessesStillCountUntilNextCensus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCensus := mocks.NewMockCensus(ctrl)
	mockReaper := mocks.NewMockReaper(ctrl)
	slogger, _ := NewTestSlogger()

	recs := records(2)
	gomock.InOrder(
		mockCensus.EXPECT().Census(gomock.Any()).Return(recs, nil),
		mockReaper.EXPECT().Reap(gomock.Any(), gomock.Any()).Return(reaper.Killed).Times(2),
		mockCensus.EXPECT().Census(gomock.Any()).Return(nil, nil),
	)

	c := New(mockCensus, mockReaper, poolConfig(2), slogger)
	assert.False(t, c.SlotAvailable(context.Background()))
	assert.True(t, c.SlotAvailable(context.Background()))
}

func TestFailedKillDoesNotAbortCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCensus := mocks.NewMockCensus(ctrl)
	mockReaper := mocks.NewMockReaper(ctrl)
	slogger, _ := NewTestSlogger()

	recs := records(2)
	mockCensus.EXPECT().Census(gomock.Any()).Return(recs, nil)
	mockReaper.EXPECT().Reap(recs[0], gomock.Any()).Return(reaper.KillFailed)
	mockReaper.EXPECT().Reap(recs[1], gomock.Any()).Return(reaper.KillFailed)

	c := New(mockCensus, mockReaper, poolConfig(3), slogger)
	res := c.Check(context.Background())

	assert.True(t, res.Available)
	assert.Equal(t, 2, res.KillFailed)
}

func TestCensusErrorCountsAsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCensus := mocks.NewMockCensus(ctrl)
	mockReaper := mocks.NewMockReaper(ctrl)
	slogger, logBuf := NewTestSlogger()

	mockCensus.EXPECT().Census(gomock.Any()).Return(nil, errors.New("ps: not found"))

	c := New(mockCensus, mockReaper, poolConfig(1), slogger)
	assert.True(t, c.SlotAvailable(context.Background()))
	assert.Contains(t, logBuf.String(), "process census failed")
	assert.Contains(t, logBuf.String(), "ps: not found")
	assert.Contains(t, logBuf.String(), `"level":"WARN"`)
	assert.Contains(t, logBuf.String(), "max_concurrent and max_process_age are not enforced")
}

func TestNewWithNilLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCensus := mocks.NewMockCensus(ctrl)
	mockCensus.EXPECT().Census(gomock.Any()).Return(nil, nil)

	c := New(mockCensus, mocks.NewMockReaper(ctrl), poolConfig(1), nil)
	assert.True(t, c.SlotAvailable(context.Background()))
}

func TestCheckWithRealReaper(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, time.March, 5, 14, 0, 0, 0, time.UTC)
	mockCensus := mocks.NewMockCensus(ctrl)
	slogger, logBuf := NewTestSlogger()

	mockCensus.EXPECT().Census(gomock.Any()).Return([]census.Record{
		{PID: 11, StartTime: now.Add(-time.Second)},
		{PID: 12, StartTime: now.Add(-time.Minute)},
	}, nil)

	var killed []int
	r := reaper.New(reaper.TerminatorFunc(func(pid int) bool {
		killed = append(killed, pid)
		return true
	}), slogger, reaper.WithClock(func() time.Time { return now }))

	c := New(mockCensus, r, poolConfig(2), slogger)
	res := c.Check(context.Background())

	assert.False(t, res.Available)
	assert.Equal(t, []int{12}, killed)
	assert.Contains(t, logBuf.String(), "process over time and was killed")
}

// Start times parsed from ps carry whole seconds only; a clock between ticks
// must not push a process over its budget early.
func TestCheckWithParsedStartTime(t *testing.T) {
	rec, err := census.ParseLine("4410 Tue Mar  5 14:00:00 2024 worker --job 1")
	require.NoError(t, err)

	tests := []struct {
		name       string
		elapsed    time.Duration
		wantKilled []int
	}{
		{name: "fraction past budget is not expired", elapsed: 3900 * time.Millisecond},
		{name: "whole second past budget is killed", elapsed: 4200 * time.Millisecond, wantKilled: []int{4410}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockCensus := mocks.NewMockCensus(ctrl)
			mockCensus.EXPECT().Census(gomock.Any()).Return([]census.Record{rec}, nil)
			slogger, _ := NewTestSlogger()

			var killed []int
			now := rec.StartTime.Add(tt.elapsed)
			r := reaper.New(reaper.TerminatorFunc(func(pid int) bool {
				killed = append(killed, pid)
				return true
			}), slogger, reaper.WithClock(func() time.Time { return now }))

			c := New(mockCensus, r, poolConfig(2), slogger)
			res := c.Check(context.Background())

			assert.Equal(t, tt.wantKilled, killed)
			assert.Equal(t, len(tt.wantKilled), res.Killed)
			assert.Equal(t, []census.Record{rec}, res.Records)
		})
	}
}
