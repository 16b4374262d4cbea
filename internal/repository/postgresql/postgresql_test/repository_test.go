package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shift-report/shift-report-backend-go/internal/domain/location"
	"github.com/shift-report/shift-report-backend-go/internal/domain/personnel"
	"github.com/shift-report/shift-report-backend-go/internal/domain/shift"
	"github.com/shift-report/shift-report-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	ctx := context.Background()

	setup, ok, err := NewTestDatabase(ctx)
	if !ok {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, err)
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)
	return setup
}

var recordedBase = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func newReport(t *testing.T, seq int, kind shift.ReportType, personalID, date, clock string) shift.Report {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)

	d, err := time.Parse(shift.DateLayout, date)
	require.NoError(t, err)
	c, err := shift.ParseClockTime(clock)
	require.NoError(t, err)

	commander := "Yael Mor"
	r := shift.Report{
		ID:            id.String(),
		ReportType:    kind,
		PersonalID:    personalID,
		ReporterName:  "Person " + personalID,
		UnitCommander: &commander,
		EventDate:     &d,
		EventTime:     &c,
		RecordedAt:    recordedBase.Add(time.Duration(seq) * time.Minute),
	}
	if kind == shift.ReportTypeEntry {
		loc := "Gate 4"
		r.WorkLocation = &loc
	} else {
		n := 2
		r.ReportsCount = &n
	}
	return r
}

func TestShiftReportRepository_CreateAndGet(t *testing.T) {
	setup := setupDB(t)
	ctx := context.Background()
	repo := postgresql.NewShiftReportRepository(setup.DB)

	entry := newReport(t, 1, shift.ReportTypeEntry, "100", "2024-03-10", "22:15")
	_, err := repo.Create(ctx, entry)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ReportType, got.ReportType)
	assert.Equal(t, "2024-03-10", got.EventDate.Format(shift.DateLayout))
	assert.Equal(t, "22:15", got.EventTime.String())
	assert.Equal(t, "Gate 4", *got.WorkLocation)
	assert.Nil(t, got.ReportsCount)
	assert.True(t, entry.RecordedAt.Equal(got.RecordedAt))

	missing, err := uuid.NewV7()
	require.NoError(t, err)
	_, err = repo.GetByID(ctx, missing.String())
	assert.ErrorIs(t, err, shift.ErrReportNotFound)
}

func TestShiftReportRepository_ListForWindow(t *testing.T) {
	setup := setupDB(t)
	ctx := context.Background()
	repo := postgresql.NewShiftReportRepository(setup.DB)

	reports := []shift.Report{
		newReport(t, 1, shift.ReportTypeEntry, "100", "2024-03-09", "08:00"), // before the window
		newReport(t, 2, shift.ReportTypeExit, "100", "2024-03-09", "16:00"),
		newReport(t, 3, shift.ReportTypeEntry, "100", "2024-03-16", "22:00"),
		newReport(t, 4, shift.ReportTypeExit, "100", "2024-03-17", "06:00"), // after the window, still needed
		newReport(t, 5, shift.ReportTypeEntry, "200", "2024-03-11", "08:00"),
		newReport(t, 6, shift.ReportTypeExit, "300", "2024-03-11", "09:00"), // no entry in window
	}
	for _, r := range reports {
		_, err := repo.Create(ctx, r)
		require.NoError(t, err)
	}

	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	got, err := repo.ListForWindow(ctx, start, end, nil)
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{reports[2].ID, reports[3].ID, reports[4].ID}, ids)

	person := "200"
	got, err = repo.ListForWindow(ctx, start, end, &person)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, reports[4].ID, got[0].ID)
}

func TestShiftReportRepository_ListAndDeleteAll(t *testing.T) {
	setup := setupDB(t)
	ctx := context.Background()
	repo := postgresql.NewShiftReportRepository(setup.DB)

	for i, r := range []shift.Report{
		newReport(t, 1, shift.ReportTypeEntry, "100", "2024-03-10", "08:00"),
		newReport(t, 2, shift.ReportTypeExit, "100", "2024-03-10", "16:00"),
		newReport(t, 3, shift.ReportTypeEntry, "200", "2024-03-12", "08:00"),
	} {
		_, err := repo.Create(ctx, r)
		require.NoError(t, err, "report %d", i)
	}

	exit := shift.ReportTypeExit
	got, err := repo.List(ctx, shift.ReportFilter{ReportType: &exit})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	from := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	got, err = repo.List(ctx, shift.ReportFilter{StartDate: &from})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "200", got[0].PersonalID)

	deleted, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}

func TestLocationPingRepository(t *testing.T) {
	setup := setupDB(t)
	ctx := context.Background()
	repo := postgresql.NewLocationPingRepository(setup.DB)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	_, err := repo.Upsert(ctx, location.Ping{PersonalID: "100", ReporterName: "Dana", CurrentLocation: "Gate", OnShift: true, ReportedAt: now.Add(-48 * time.Hour)})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, location.Ping{PersonalID: "200", ReporterName: "Noa", CurrentLocation: "Tower", OnShift: true, ReportedAt: now.Add(-time.Hour)})
	require.NoError(t, err)

	updated, err := repo.Upsert(ctx, location.Ping{PersonalID: "100", ReporterName: "Dana", CurrentLocation: "Home", OnShift: false, ReportedAt: now.Add(-30 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, "Home", updated.CurrentLocation)

	pings, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, pings, 2)
	assert.Equal(t, "200", pings[0].PersonalID)

	pruned, err := repo.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	_, err = repo.GetByPersonalID(ctx, "100")
	assert.True(t, errors.Is(err, location.ErrPingNotFound))

	deleted, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestPersonnelRepository_ImportInTransaction(t *testing.T) {
	setup := setupDB(t)
	ctx := context.Background()
	repo := postgresql.NewPersonnelRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, p := range []personnel.Person{
			{PersonalID: "1", FullName: "Yael Mor", IsCommander: true, Active: true},
			{PersonalID: "100", FullName: "Dana Levi", Active: true},
			{PersonalID: "200", FullName: "Noa Bar", Active: true},
		} {
			if err := repo.Upsert(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	deactivated, err := repo.DeactivateMissing(ctx, []string{"1", "100"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deactivated)

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	commanders, err := repo.ListCommanders(ctx)
	require.NoError(t, err)
	require.Len(t, commanders, 1)
	assert.Equal(t, "Yael Mor", commanders[0].FullName)

	person, err := repo.GetByPersonalID(ctx, "200")
	require.NoError(t, err)
	assert.False(t, person.Active)

	_, err = repo.GetByPersonalID(ctx, "404")
	assert.ErrorIs(t, err, personnel.ErrPersonNotFound)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	setup := setupDB(t)
	ctx := context.Background()
	repo := postgresql.NewPersonnelRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := repo.Upsert(ctx, personnel.Person{PersonalID: "1", FullName: "Temp", Active: true}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repo.GetByPersonalID(ctx, "1")
	assert.ErrorIs(t, err, personnel.ErrPersonNotFound)
}
