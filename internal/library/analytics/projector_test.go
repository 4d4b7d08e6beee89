// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafmark/leafmark/internal/library/analytics"
	"github.com/leafmark/leafmark/internal/library/session"
)

var testNow = time.Date(2024, time.February, 2, 10, 30, 0, 0, time.UTC)

// day builds a UTC midnight in February 2024.
func day(d int) time.Time {
	return time.Date(2024, time.February, d, 0, 0, 0, 0, time.UTC)
}

// entry builds a log entry for a February day.
func entry(d, pages, seconds int) *session.Entry {
	return &session.Entry{ReadOn: day(d), PagesRead: pages, DurationSeconds: seconds}
}

/*
TestAnalyze_MeasuredSpeed verifies the core pace math: 10 pages over 600
seconds reads at exactly 1 page per minute.
*/
func TestAnalyze_MeasuredSpeed(t *testing.T) {
	log := []*session.Entry{entry(1, 10, 600)}

	analysis := analytics.Analyze(log, 300, 50, nil, 0, testNow)

	assert.Equal(t, 1, analysis.SessionCount)
	assert.Equal(t, 10, analysis.TotalPagesRead)
	assert.InDelta(t, 1.0, analysis.PagesPerMinute, 1e-9)
	assert.InDelta(t, 10.0, analysis.AvgPagesPerDay, 1e-9)
	assert.InDelta(t, 10.0, analysis.AvgMinutesPerSession, 1e-9)
	assert.InDelta(t, 100.0, analysis.EfficiencyScore, 1e-9)
	assert.InDelta(t, 100.0, analysis.ConsistencyScore, 1e-9)
}

/*
TestAnalyze_PredictedFinish verifies the linear projection: 250 pages left
at 10 pages/day lands 25 days out.
*/
func TestAnalyze_PredictedFinish(t *testing.T) {
	log := []*session.Entry{entry(1, 10, 600)}

	analysis := analytics.Analyze(log, 300, 50, nil, 0, testNow)

	require.NotNil(t, analysis.PredictedFinishDate)
	assert.Equal(t, day(2).AddDate(0, 0, 25), *analysis.PredictedFinishDate)
	assert.Nil(t, analysis.DaysAheadOrBehind)
}

/*
TestAnalyze_AheadOrBehind verifies the schedule delta sign: a prediction
before the plan's end date is positive (ahead), after it negative (behind).
*/
func TestAnalyze_AheadOrBehind(t *testing.T) {
	// 100 pages left at 20/day predicts finish 5 days out (Feb 7).
	log := []*session.Entry{entry(1, 20, 0)}

	planEnd := day(10)
	analysis := analytics.Analyze(log, 120, 20, &planEnd, 0, testNow)

	require.NotNil(t, analysis.DaysAheadOrBehind)
	assert.Equal(t, 3, *analysis.DaysAheadOrBehind)

	tightEnd := day(4)
	analysis = analytics.Analyze(log, 120, 20, &tightEnd, 0, testNow)

	require.NotNil(t, analysis.DaysAheadOrBehind)
	assert.Equal(t, -3, *analysis.DaysAheadOrBehind)
}

/*
TestAnalyze_EmptyLog verifies the fallback projection: the reader's
historical speed stands in, the finish is projected at the naive default
pace, and both scores stay at zero consistency.
*/
func TestAnalyze_EmptyLog(t *testing.T) {
	analysis := analytics.Analyze(nil, 300, 100, nil, 0.8, testNow)

	assert.Equal(t, 0, analysis.SessionCount)
	assert.InDelta(t, 0.8, analysis.PagesPerMinute, 1e-9)
	assert.InDelta(t, 0.0, analysis.ConsistencyScore, 1e-9)
	assert.InDelta(t, 80.0, analysis.EfficiencyScore, 1e-9)

	// 200 pages at the 20/day fallback pace: 10 days out.
	require.NotNil(t, analysis.PredictedFinishDate)
	assert.Equal(t, day(2).AddDate(0, 0, 10), *analysis.PredictedFinishDate)
}

/*
TestAnalyze_EmptyLogNoSpeed verifies that an empty log with no historical
speed yields a zero-speed, zero-score projection.
*/
func TestAnalyze_EmptyLogNoSpeed(t *testing.T) {
	analysis := analytics.Analyze(nil, 300, 100, nil, 0, testNow)

	assert.Zero(t, analysis.PagesPerMinute)
	assert.Zero(t, analysis.EfficiencyScore)
	require.NotNil(t, analysis.PredictedFinishDate)
}

/*
TestAnalyze_FinishedBook verifies that a finished book gets no finish
projection.
*/
func TestAnalyze_FinishedBook(t *testing.T) {
	log := []*session.Entry{entry(1, 300, 3000)}

	analysis := analytics.Analyze(log, 300, 300, nil, 0, testNow)

	assert.Nil(t, analysis.PredictedFinishDate)
	assert.Nil(t, analysis.DaysAheadOrBehind)
}

/*
TestAnalyze_UntimedLog verifies that sessions without tracked duration
produce zero speed but still carry page-based metrics.
*/
func TestAnalyze_UntimedLog(t *testing.T) {
	log := []*session.Entry{entry(1, 15, 0), entry(2, 25, 0)}

	analysis := analytics.Analyze(log, 300, 40, nil, 0, testNow)

	assert.Zero(t, analysis.PagesPerMinute)
	assert.Zero(t, analysis.EfficiencyScore)
	assert.InDelta(t, 20.0, analysis.AvgPagesPerDay, 1e-9)
}

/*
TestAnalyze_EfficiencyCap verifies the 150% efficiency ceiling against an
outlier sprint.
*/
func TestAnalyze_EfficiencyCap(t *testing.T) {
	// 100 pages in 10 minutes: 10 ppm, uncapped would be 1000%.
	log := []*session.Entry{entry(1, 100, 600)}

	analysis := analytics.Analyze(log, 300, 100, nil, 0, testNow)

	assert.InDelta(t, analytics.MaxEfficiencyScore, analysis.EfficiencyScore, 1e-9)
}

/*
TestAnalyze_ConsistencyGaps verifies that skipped days in the log range
lower the consistency score.
*/
func TestAnalyze_ConsistencyGaps(t *testing.T) {
	// 2 sessions across a 10-day inclusive span: 20%.
	log := []*session.Entry{entry(1, 10, 0), entry(10, 10, 0)}

	analysis := analytics.Analyze(log, 300, 20, nil, 0, testNow)

	assert.InDelta(t, 20.0, analysis.ConsistencyScore, 1e-9)
}

/*
TestAnalyze_SingleDayAccumulation verifies that a one-day log spans one
inclusive day and never divides by zero.
*/
func TestAnalyze_SingleDayAccumulation(t *testing.T) {
	log := []*session.Entry{entry(5, 30, 1800)}

	analysis := analytics.Analyze(log, 300, 30, nil, 0, testNow)

	assert.InDelta(t, 30.0, analysis.AvgPagesPerDay, 1e-9)
	assert.InDelta(t, 100.0, analysis.ConsistencyScore, 1e-9)
}
