package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campushq/attendance-backend-go/internal/domain/attendance"
	"github.com/campushq/attendance-backend-go/internal/domain/campus"
	"github.com/campushq/attendance-backend-go/internal/domain/user"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	campusRepo     campus.CampusRepository
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	campusRepo campus.CampusRepository,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		campusRepo:     campusRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_punches", 1*time.Hour, j.AutoCloseStalePunches)
	scheduler.AddJob("mark_absent_workers", 1*time.Hour, j.MarkAbsentWorkers)
}

// AutoCloseStalePunches punches out records left open past their day so
// worked hours stop accruing into the next morning.
func (j *AttendanceJobs) AutoCloseStalePunches(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting auto-close stale punches job")

	today := time.Now().UTC().Truncate(24 * time.Hour)
	stale, err := j.attendanceRepo.ListOpenBefore(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list open records: %w", err)
	}

	if len(stale) == 0 {
		slog.Info("Cron: No stale punches found")
		return nil
	}

	closedCount := 0
	for _, rec := range stale {
		// Close at the end of the record's own day.
		endOfDay := rec.Day.Add(24*time.Hour - time.Second)

		if rec.Status == attendance.StatusOnDuty {
			if err := rec.EndDuty(endOfDay); err != nil {
				slog.Error("Cron: Failed to end duty on stale record",
					"attendance_id", rec.ID,
					"worker_id", rec.WorkerID,
					"error", err)
				continue
			}
		}

		if err := rec.ClosePunch(endOfDay); err != nil {
			continue
		}

		remarks := "Auto-closed: no punch-out was recorded for this day."
		rec.Remarks = &remarks

		if err := j.attendanceRepo.Update(ctx, rec); err != nil {
			slog.Error("Cron: Failed to auto-close attendance",
				"attendance_id", rec.ID,
				"worker_id", rec.WorkerID,
				"error", err)
			continue
		}

		closedCount++
	}

	slog.Info("Cron: Auto-closed stale punches", "count", closedCount)
	return nil
}

// MarkAbsentWorkers writes an absent record for every active worker who
// had neither a punch nor an on-leave record yesterday. Leave approval
// writes its records ahead of time, so approved workers are never
// touched here.
func (j *AttendanceJobs) MarkAbsentWorkers(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting mark absent workers job")

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)

	campuses, err := j.campusRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list campuses: %w", err)
	}

	totalAbsent := 0

	for _, c := range campuses {
		workers, err := j.userRepo.ListByCampus(ctx, c.ID)
		if err != nil {
			slog.Error("Cron: Failed to list workers", "campus_id", c.ID, "error", err)
			continue
		}

		var absences []attendance.Attendance

		for _, w := range workers {
			hasRecord, err := j.attendanceRepo.HasRecordForDay(ctx, w.ID, yesterday)
			if err != nil || hasRecord {
				continue
			}

			absences = append(absences, attendance.Attendance{
				WorkerID:   w.ID,
				WorkerName: w.FullName,
				CampusID:   c.ID,
				Day:        yesterday,
				Status:     attendance.StatusAbsent,
			})
		}

		if len(absences) > 0 {
			if err := j.attendanceRepo.BulkCreate(ctx, absences); err != nil {
				slog.Error("Cron: Failed to bulk create absences", "campus_id", c.ID, "error", err)
				continue
			}
			totalAbsent += len(absences)
		}
	}

	slog.Info("Cron: Marked absent workers", "count", totalAbsent)
	return nil
}
