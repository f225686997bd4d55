package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailySpec(t *testing.T) {
	spec, err := buildDailySpec("00:05")
	require.NoError(t, err)
	assert.Equal(t, "0 5 0 * * *", spec)

	spec, err = buildDailySpec("23:59")
	require.NoError(t, err)
	assert.Equal(t, "0 59 23 * * *", spec)

	_, err = buildDailySpec("noon")
	assert.Error(t, err)
}

func TestSchedulerRegistersJobs(t *testing.T) {
	s := NewSchedulerService(time.UTC)

	daily, err := s.ScheduleDaily("06:30", func() {})
	require.NoError(t, err)
	hourly, err := s.ScheduleInterval(time.Hour, func() {})
	require.NoError(t, err)

	_, err = s.ScheduleInterval(0, func() {})
	assert.Error(t, err)
	_, err = s.ScheduleDaily("6:99", func() {})
	assert.Error(t, err)

	s.Start()
	defer s.Stop()

	next := s.Next(daily)
	require.False(t, next.IsZero())
	assert.Equal(t, 6, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.False(t, s.Next(hourly).IsZero())
}

func TestSchedulerRunsIntervalJob(t *testing.T) {
	s := NewSchedulerService(time.UTC)
	ran := make(chan struct{}, 1)
	_, err := s.ScheduleInterval(time.Second, func() {
		select {
		case ran <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("interval job did not run")
	}
}
